package game

const collisionIterations = 4

// resolveCollisions separates a from other live agents and from obstacles.
// Agent overlap is split evenly between both bodies; obstacle overlap moves
// only a and cancels the velocity component driving it into the surface.
// Stops early once an iteration finds nothing to fix.
func (e *Engine) resolveCollisions(a *Agent, agents []*Agent) {
	for i := 0; i < collisionIterations; i++ {
		clean := true

		for _, o := range agents {
			if o == a || !o.alive {
				continue
			}
			diff := a.pos.Sub(o.pos)
			dist := diff.Len()
			minDist := a.radius + o.radius
			if dist >= minDist {
				continue
			}
			clean = false
			n := diff.Normalize()
			half := (minDist - dist) * 0.5
			a.pos = a.pos.Add(n.Scale(half))
			o.pos = e.arena.clamp(o.pos.Sub(n.Scale(half)), 0)
		}

		for _, obs := range e.arena.Obstacles.Near(a.pos, a.radius) {
			hit, push := obs.Penetration(a.pos, a.radius)
			if !hit {
				continue
			}
			clean = false
			a.pos = a.pos.Add(push)
			n := push.Normalize()
			if vn := a.vel.Dot(n); vn < 0 {
				a.vel = a.vel.Sub(n.Scale(vn))
			}
		}

		if clamped := e.arena.clamp(a.pos, 0); !clamped.Equal(a.pos) {
			a.pos = clamped
			clean = false
		}

		if clean {
			return
		}
	}
}

// separation returns the smallest gap between any two live agents, negative
// when they overlap. Used by invariant checks.
func separation(agents []*Agent) float64 {
	best := 1e18
	for i, a := range agents {
		if !a.alive {
			continue
		}
		for _, b := range agents[i+1:] {
			if !b.alive {
				continue
			}
			if gap := a.pos.Dist(b.pos) - a.radius - b.radius; gap < best {
				best = gap
			}
		}
	}
	return best
}
