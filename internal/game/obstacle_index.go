package game

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/Garsondee/arena-league/internal/geom"
)

const (
	indexHalfBox     = 350.0 // half-size of the per-agent query box
	indexRebuildDist = 100.0 // movement since last rebuild that forces a refresh
	minRectLength    = 0.01  // rtreego rejects zero-length rect sides
)

// indexedObstacle adapts an obstacle for the R-tree and remembers its
// configuration order.
type indexedObstacle struct {
	order int
	obs   geom.Obstacle
	rect  rtreego.Rect
}

func (io *indexedObstacle) Bounds() rtreego.Rect { return io.rect }

// ObstacleSet is the immutable full obstacle list of an arena plus a 2D
// R-tree over obstacle bounds. Queries return obstacles in configuration
// order so every consumer iterates deterministically.
type ObstacleSet struct {
	all  []geom.Obstacle
	tree *rtreego.Rtree
}

// NewObstacleSet indexes obs. The slice is copied.
func NewObstacleSet(obs []geom.Obstacle) *ObstacleSet {
	all := make([]geom.Obstacle, len(obs))
	copy(all, obs)
	spatials := make([]rtreego.Spatial, 0, len(all))
	for i, o := range all {
		spatials = append(spatials, &indexedObstacle{order: i, obs: o, rect: toRTreeRect(o.Bounds())})
	}
	return &ObstacleSet{
		all:  all,
		tree: rtreego.NewTree(2, 4, 16, spatials...),
	}
}

// All returns the full configuration-ordered obstacle list.
func (s *ObstacleSet) All() []geom.Obstacle {
	if s == nil {
		return nil
	}
	return s.all
}

// Len returns the obstacle count.
func (s *ObstacleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.all)
}

// Query returns every obstacle whose bounds intersect box.
func (s *ObstacleSet) Query(box geom.AABB) []geom.Obstacle {
	if s == nil || len(s.all) == 0 {
		return nil
	}
	hits := s.tree.SearchIntersect(toRTreeRect(box))
	if len(hits) == 0 {
		return nil
	}
	found := make([]*indexedObstacle, 0, len(hits))
	for _, h := range hits {
		found = append(found, h.(*indexedObstacle))
	}
	sort.Slice(found, func(i, j int) bool { return found[i].order < found[j].order })
	out := make([]geom.Obstacle, len(found))
	for i, f := range found {
		out[i] = f.obs
	}
	return out
}

// Near returns obstacles that may touch a circle at pos. It is exact for
// collision purposes because the box covers the whole circle.
func (s *ObstacleSet) Near(pos geom.Vec2, radius float64) []geom.Obstacle {
	return s.Query(geom.BoxAround(pos, radius+1))
}

func toRTreeRect(b geom.AABB) rtreego.Rect {
	w := b.Width()
	h := b.Height()
	if w < minRectLength {
		w = minRectLength
	}
	if h < minRectLength {
		h = minRectLength
	}
	r, err := rtreego.NewRect(rtreego.Point{b.Min.X, b.Min.Y}, []float64{w, h})
	if err != nil {
		// Lengths are clamped positive above so this cannot happen.
		panic(err)
	}
	return r
}

// obstacleCache is an agent's local obstacle subset. It is rebuilt from the
// full set when the agent has moved far enough from the last rebuild point,
// so it may briefly omit obstacles near the edge of the query box.
type obstacleCache struct {
	built  bool
	center geom.Vec2
	local  []geom.Obstacle
}

// refresh rebuilds the cache if needed and reports whether it did.
func (c *obstacleCache) refresh(set *ObstacleSet, pos geom.Vec2) bool {
	if c.built && pos.Dist(c.center) <= indexRebuildDist {
		return false
	}
	c.local = set.Query(geom.BoxAround(pos, indexHalfBox))
	c.center = pos
	c.built = true
	return true
}
