package game

import (
	"math"

	"github.com/Garsondee/arena-league/internal/geom"
)

// losOffset is the perpendicular spacing of the side rays. The outer pair sits
// at 1.5x this distance so thin gaps between obstacles do not leak sight.
const losOffset = 12.0

// IsBlocked reports whether any obstacle crosses the segment start->end.
func IsBlocked(start, end geom.Vec2, obstacles []geom.Obstacle) bool {
	for _, o := range obstacles {
		b := o.Bounds()
		if !rayIntersectsAABB(start.X, start.Y, end.X, end.Y, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y) {
			continue
		}
		if o.IntersectsSegment(start, end) {
			return true
		}
	}
	return false
}

// HasLineOfSight casts a centre ray plus two pairs of parallel side rays
// (at 12 and 18 units). Sight fails if any ray is blocked. A zero-length
// query is always visible.
func HasLineOfSight(start, end geom.Vec2, obstacles []geom.Obstacle) bool {
	d := end.Sub(start)
	l := d.Len()
	if l == 0 {
		return true
	}
	if IsBlocked(start, end, obstacles) {
		return false
	}
	perp := geom.V(-d.Y/l, d.X/l)
	for _, off := range [...]float64{losOffset, -losOffset, losOffset * 1.5, -losOffset * 1.5} {
		shift := perp.Scale(off)
		if IsBlocked(start.Add(shift), end.Add(shift), obstacles) {
			return false
		}
	}
	return true
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := 0.0
	tMax := 1.0

	// X slab
	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	if tMin < 0 {
		tMin = 0
	}
	return tMin, true
}

// rayIntersectsAABB is the broad-phase reject used before exact segment tests.
func rayIntersectsAABB(ox, oy, ex, ey, minX, minY, maxX, maxY float64) bool {
	_, hit := rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY)
	return hit
}
