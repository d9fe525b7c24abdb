package geom

import "math"

// Kind names an obstacle variant.
type Kind int

const (
	KindCircle Kind = iota
	KindRect
	KindRotatedRect
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	case KindRotatedRect:
		return "rotated_rect"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Obstacle is static arena geometry. Every variant answers the same questions
// so callers never switch on the concrete type.
type Obstacle interface {
	// Penetration tests a circle against the obstacle. push is the resolving
	// normal scaled by the overlap depth.
	Penetration(pos Vec2, radius float64) (hit bool, push Vec2)
	// IntersectsSegment reports whether a->b crosses the obstacle.
	IntersectsSegment(a, b Vec2) bool
	// ClosestPoint returns the obstacle point nearest to p.
	ClosestPoint(p Vec2) Vec2
	Bounds() AABB
	Kind() Kind
}

// --- Circle ---

// Circle is a round pillar.
type Circle struct {
	Center Vec2
	Radius float64
}

func (c Circle) Kind() Kind { return KindCircle }

func (c Circle) Bounds() AABB { return BoxAround(c.Center, c.Radius) }

func (c Circle) Penetration(pos Vec2, radius float64) (bool, Vec2) {
	d := pos.Sub(c.Center)
	dist := d.Len()
	minDist := c.Radius + radius
	if dist >= minDist {
		return false, Vec2{}
	}
	dir := Vec2{1, 0}
	if dist > 0 {
		dir = d.Scale(1 / dist)
	}
	return true, dir.Scale(minDist - dist)
}

func (c Circle) IntersectsSegment(a, b Vec2) bool {
	return SegmentIntersectsCircle(a, b, c.Center, c.Radius)
}

func (c Circle) ClosestPoint(p Vec2) Vec2 {
	d := p.Sub(c.Center)
	if d.Len() <= c.Radius {
		return p
	}
	return c.Center.Add(d.Normalize().Scale(c.Radius))
}

// --- Rect ---

// Rect is an axis-aligned box with its top-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Kind() Kind { return KindRect }

func (r Rect) Bounds() AABB {
	return AABB{Min: Vec2{r.X, r.Y}, Max: Vec2{r.X + r.W, r.Y + r.H}}
}

func (r Rect) rotated() RotatedRect {
	return RotatedRect{
		Center: Vec2{r.X + r.W/2, r.Y + r.H/2},
		HalfW:  r.W / 2,
		HalfH:  r.H / 2,
	}
}

func (r Rect) Penetration(pos Vec2, radius float64) (bool, Vec2) {
	return r.rotated().Penetration(pos, radius)
}

func (r Rect) IntersectsSegment(a, b Vec2) bool {
	return SegmentIntersectsRotatedRect(a, b, r.rotated())
}

func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{clamp(p.X, r.X, r.X+r.W), clamp(p.Y, r.Y, r.Y+r.H)}
}

// --- RotatedRect ---

func (r RotatedRect) Kind() Kind { return KindRotatedRect }

func (r RotatedRect) Bounds() AABB {
	c := r.Corners()
	return boundsOf(c[:])
}

func (r RotatedRect) Penetration(pos Vec2, radius float64) (bool, Vec2) {
	hit, n, overlap := CircleVsRotatedRect(pos, radius, r)
	if !hit {
		return false, Vec2{}
	}
	return true, n.Scale(overlap)
}

func (r RotatedRect) IntersectsSegment(a, b Vec2) bool {
	return SegmentIntersectsRotatedRect(a, b, r)
}

func (r RotatedRect) ClosestPoint(p Vec2) Vec2 {
	return closestPointRotatedRect(p, r)
}

// --- Polygon ---

// Polygon is a closed vertex loop. Convex loops resolve cleanly; concave ones
// (L shapes) still work because resolution picks the deepest single edge.
type Polygon struct {
	Points []Vec2
}

func (p Polygon) Kind() Kind { return KindPolygon }

func (p Polygon) Bounds() AABB { return boundsOf(p.Points) }

func (p Polygon) Penetration(pos Vec2, radius float64) (bool, Vec2) {
	return CircleVsPolygon(pos, radius, p.Points)
}

func (p Polygon) IntersectsSegment(a, b Vec2) bool {
	return SegmentIntersectsPolygon(a, b, p.Points)
}

// ClosestPoint returns the nearest point on the polygon boundary.
func (p Polygon) ClosestPoint(q Vec2) Vec2 {
	best := q
	bestD := math.Inf(1)
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cp := ClosestPointOnSegment(q, a, b)
		if d := cp.Sub(q).LenSq(); d < bestD {
			bestD = d
			best = cp
		}
	}
	return best
}
