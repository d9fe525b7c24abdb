package geom

import "math"

// SegmentIntersectsCircle reports whether the segment p0->p1 touches the
// circle. It solves the quadratic for the parametrised segment and accepts a
// root in [0, 1]. A zero-length segment is treated as a point test.
func SegmentIntersectsCircle(p0, p1, center Vec2, radius float64) bool {
	d := p1.Sub(p0)
	f := p0.Sub(center)
	a := d.Dot(d)
	if a < 1e-12 {
		return f.LenSq() <= radius*radius
	}
	b := 2 * f.Dot(d)
	c := f.Dot(f) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return false
	}
	disc = math.Sqrt(disc)
	t1 := (-b - disc) / (2 * a)
	t2 := (-b + disc) / (2 * a)
	return (t1 >= 0 && t1 <= 1) || (t2 >= 0 && t2 <= 1)
}

// SegmentsIntersect reports whether p1->p2 crosses p3->p4. Parallel segments
// never intersect.
func SegmentsIntersect(p1, p2, p3, p4 Vec2) bool {
	d := (p2.X-p1.X)*(p4.Y-p3.Y) - (p2.Y-p1.Y)*(p4.X-p3.X)
	if d == 0 {
		return false
	}
	u := ((p3.X-p1.X)*(p4.Y-p3.Y) - (p3.Y-p1.Y)*(p4.X-p3.X)) / d
	v := ((p3.X-p1.X)*(p2.Y-p1.Y) - (p3.Y-p1.Y)*(p2.X-p1.X)) / d
	return u >= 0 && u <= 1 && v >= 0 && v <= 1
}

// ClosestPointOnSegment projects p onto the segment a->b, clamped to its ends.
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	edge := b.Sub(a)
	l2 := edge.LenSq()
	if l2 == 0 {
		return a
	}
	t := clamp(p.Sub(a).Dot(edge)/l2, 0, 1)
	return a.Add(edge.Scale(t))
}

// RotatedRect is a rectangle of half extents HalfW x HalfH centred on Center
// and rotated by AngleDeg degrees.
//
// Corner derivation rotates by -AngleDeg while the world->local projection in
// CircleVsRotatedRect rotates by +AngleDeg. Both describe the same box; keep
// them paired or collision normals invert.
type RotatedRect struct {
	Center       Vec2
	HalfW, HalfH float64
	AngleDeg     float64
}

// NewRotatedRect builds a RotatedRect from a full width/height.
func NewRotatedRect(center Vec2, w, h, angleDeg float64) RotatedRect {
	return RotatedRect{Center: center, HalfW: w / 2, HalfH: h / 2, AngleDeg: angleDeg}
}

// Corners returns the four world-space corners in winding order.
func (r RotatedRect) Corners() [4]Vec2 {
	s, c := math.Sincos(-r.AngleDeg * math.Pi / 180)
	local := [4]Vec2{
		{-r.HalfW, -r.HalfH},
		{r.HalfW, -r.HalfH},
		{r.HalfW, r.HalfH},
		{-r.HalfW, r.HalfH},
	}
	var out [4]Vec2
	for i, d := range local {
		out[i] = Vec2{
			X: r.Center.X + d.X*c - d.Y*s,
			Y: r.Center.Y + d.X*s + d.Y*c,
		}
	}
	return out
}

// toLocal projects a world point into the rectangle frame.
func (r RotatedRect) toLocal(p Vec2) (lx, ly, cosA, sinA float64) {
	tx := p.X - r.Center.X
	ty := p.Y - r.Center.Y
	sinA, cosA = math.Sincos(r.AngleDeg * math.Pi / 180)
	lx = tx*cosA - ty*sinA
	ly = tx*sinA + ty*cosA
	return lx, ly, cosA, sinA
}

// toWorld rotates a local direction back into world space.
func toWorld(n Vec2, cosA, sinA float64) Vec2 {
	return Vec2{
		X: n.X*cosA + n.Y*sinA,
		Y: -n.X*sinA + n.Y*cosA,
	}
}

// CircleVsRotatedRect tests a circle against a rotated rectangle. On overlap
// it returns the world-space push-out normal and the penetration depth. A
// centre exactly on the box surface or inside it yields the canonical local
// normal (1, 0).
func CircleVsRotatedRect(pos Vec2, radius float64, r RotatedRect) (bool, Vec2, float64) {
	lx, ly, cosA, sinA := r.toLocal(pos)
	cx := clamp(lx, -r.HalfW, r.HalfW)
	cy := clamp(ly, -r.HalfH, r.HalfH)
	dx := lx - cx
	dy := ly - cy
	distSq := dx*dx + dy*dy
	if distSq >= radius*radius {
		return false, Vec2{}, 0
	}
	dist := math.Sqrt(distSq)
	var normal Vec2
	var overlap float64
	if dist == 0 {
		normal = Vec2{1, 0}
		overlap = radius
	} else {
		normal = Vec2{dx / dist, dy / dist}
		overlap = radius - dist
	}
	return true, toWorld(normal, cosA, sinA), overlap
}

// closestPointRotatedRect returns the point of the rectangle (boundary or
// interior) nearest to p.
func closestPointRotatedRect(p Vec2, r RotatedRect) Vec2 {
	lx, ly, cosA, sinA := r.toLocal(p)
	local := Vec2{clamp(lx, -r.HalfW, r.HalfW), clamp(ly, -r.HalfH, r.HalfH)}
	return r.Center.Add(toWorld(local, cosA, sinA))
}

// SegmentIntersectsRotatedRect tests p1->p2 against the four rectangle edges.
func SegmentIntersectsRotatedRect(p1, p2 Vec2, r RotatedRect) bool {
	c := r.Corners()
	for i := 0; i < 4; i++ {
		if SegmentsIntersect(p1, p2, c[i], c[(i+1)%4]) {
			return true
		}
	}
	return false
}

// CircleVsPolygon tests a circle against every polygon edge. The edge with
// the largest overlap supplies the push vector (normal * overlap); edges are
// not averaged. Zero-length edges are skipped.
func CircleVsPolygon(pos Vec2, radius float64, verts []Vec2) (bool, Vec2) {
	hit := false
	best := Vec2{}
	maxOverlap := math.Inf(-1)
	n := len(verts)
	for i := 0; i < n; i++ {
		p1 := verts[i]
		p2 := verts[(i+1)%n]
		edge := p2.Sub(p1)
		if edge.LenSq() == 0 {
			continue
		}
		closest := ClosestPointOnSegment(pos, p1, p2)
		diff := pos.Sub(closest)
		distSq := diff.LenSq()
		if distSq >= radius*radius {
			continue
		}
		dist := math.Sqrt(distSq)
		var normal Vec2
		var overlap float64
		if dist == 0 {
			normal = edge.Perp().Normalize()
			overlap = radius
		} else {
			normal = diff.Scale(1 / dist)
			overlap = radius - dist
		}
		if overlap > maxOverlap {
			maxOverlap = overlap
			best = normal.Scale(overlap)
			hit = true
		}
	}
	return hit, best
}

// SegmentIntersectsPolygon tests p1->p2 against each polygon edge and returns
// on the first crossing.
func SegmentIntersectsPolygon(p1, p2 Vec2, verts []Vec2) bool {
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		if a.Equal(b) {
			continue
		}
		if SegmentsIntersect(p1, p2, a, b) {
			return true
		}
	}
	return false
}
