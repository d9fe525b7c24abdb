package game

import (
	"fmt"
	"math"

	"github.com/Garsondee/arena-league/internal/geom"
)

// --- Steering constants ---

const (
	friction = 0.9

	sensorRange  = 800.0
	rescanMin    = 6 // ticks between target scans
	rescanJitter = 4 // scan interval is rescanMin + [0, rescanJitter)

	stuckMoveThreshold = 0.5  // movement per tick below which the agent counts as stuck
	stuckReleaseDist   = 50.0 // distance from the stuck origin that clears the timer
	stuckTimerCap      = 100.0
	escapeTrigger      = 8.0
	escapeTicks        = 20
	escapeTicksSevere  = 40
	escapeNudgeMid     = 50.0 // stuck level at which escape also nudges velocity
	escapeNudgeHigh    = 80.0
	wanderStuckTicks   = 30.0
	wanderAttempts     = 20
	wanderMargin       = 50.0

	patrolMargin    = 50.0
	patrolReachDist = 50.0

	meleeBiasCloseIn   = 0.6   // above this the agent wants to stand on top of its target
	disarmedKeepAway   = 600.0 // strafe distance while disarmed and facing an armed enemy
	strafeStep         = 50.0
	strafeFlipCooldown = 14
	retreatStep        = 30.0
	flankSide          = 60.0
	flankForward       = 20.0

	lookAhead      = 50.0
	fanLandingDist = 15.0
	smallEscape    = 15.0
	probeStep      = 10.0
	probeRadius    = 15.0
	pointMargin    = 10.0 // isPointFree rejects points this close to the arena edge
)

var fanAngles = [...]float64{45, 90, 135}

// updateStuck tracks low-movement ticks and arms the escape maneuver.
func (e *Engine) updateStuck(a *Agent) {
	st := &a.stuck
	moved := a.pos.Dist(a.lastPos)
	a.lastPos = a.pos

	if moved < stuckMoveThreshold {
		if st.escapeTimer > 0 {
			st.timer = math.Min(st.timer+0.5, stuckTimerCap)
		} else {
			st.timer++
		}
		if !st.hasOrigin {
			st.origin = a.pos
			st.hasOrigin = true
		}
	} else if st.hasOrigin && a.pos.Dist(st.origin) > stuckReleaseDist {
		if st.reported {
			e.log.Add(e.tick, a.label(), a.team.String(), "move", "unstuck",
				fmt.Sprintf("cleared after %.0f", st.timer), st.timer)
		}
		st.timer = 0
		st.hasOrigin = false
		st.reported = false
		a.wanderTarget = nil
	}

	if st.timer <= escapeTrigger {
		return
	}
	if !st.reported {
		st.reported = true
		e.log.Add(e.tick, a.label(), a.team.String(), "move", "stuck",
			fmt.Sprintf("at (%.0f,%.0f)", a.pos.X, a.pos.Y), st.timer)
	}
	if st.escapeTimer <= 0 {
		st.escapeTimer = escapeTicks
		if st.timer > escapeNudgeMid {
			st.escapeTimer = escapeTicksSevere
		}
		st.escapeDir = e.escapeDirection(a)
		// One nudge per arming.
		switch {
		case st.timer > escapeNudgeHigh:
			a.vel = a.vel.Add(st.escapeDir.Scale(3.0))
		case st.timer > escapeNudgeMid:
			a.vel = a.vel.Add(st.escapeDir.Scale(1.5))
		}
		e.log.Add(e.tick, a.label(), a.team.String(), "move", "escape",
			fmt.Sprintf("dir (%.2f,%.2f) for %d", st.escapeDir.X, st.escapeDir.Y, st.escapeTimer), st.timer)
	}
}

// escapeDirection is the outward normal from the nearest obstacle surface,
// or (1,0) when there is none. Obstacles the centre sits inside are skipped.
func (e *Engine) escapeDirection(a *Agent) geom.Vec2 {
	best := math.Inf(1)
	var away geom.Vec2
	for _, o := range e.arena.Obstacles.All() {
		v := a.pos.Sub(o.ClosestPoint(a.pos))
		if d := v.Len(); d > 1e-6 && d < best {
			best = d
			away = v
		}
	}
	if away.IsZero() {
		return geom.V(1, 0)
	}
	return away.Normalize()
}

// acquireTarget drops invalid memory and rescans on the jittered timer.
// A scan replaces the remembered target with the nearest visible enemy, or none.
func (e *Engine) acquireTarget(a *Agent, agents []*Agent) {
	if t := a.target; t != nil && (!t.alive || a.pos.Dist(t.pos) > sensorRange) {
		e.log.Add(e.tick, a.label(), a.team.String(), "target", "lost", t.label(), 0)
		a.target = nil
	}

	a.scanTimer--
	if a.scanTimer > 0 {
		return
	}
	a.scanTimer = rescanMin + e.rng.Intn(rescanJitter)

	var best *Agent
	bestD := math.Inf(1)
	for _, o := range agents {
		if o == a || !o.alive || o.team == a.team {
			continue
		}
		d := a.pos.Dist(o.pos)
		if d > sensorRange || d >= bestD {
			continue
		}
		if !e.canSee(a.pos, o.pos) {
			continue
		}
		best, bestD = o, d
	}
	if best == a.target {
		return
	}
	if old := a.target; old != nil && best == nil {
		e.log.Add(e.tick, a.label(), a.team.String(), "target", "lost", old.label(), 0)
	}
	a.target = best
	if best != nil {
		e.log.Add(e.tick, a.label(), a.team.String(), "target", "acquired",
			fmt.Sprintf("%s at %.0f", best.label(), bestD), bestD)
	}
}

// canSee runs the full line-of-sight test against every obstacle whose
// bounds touch the sight corridor.
func (e *Engine) canSee(from, to geom.Vec2) bool {
	box := geom.AABB{
		Min: geom.V(math.Min(from.X, to.X), math.Min(from.Y, to.Y)),
		Max: geom.V(math.Max(from.X, to.X), math.Max(from.Y, to.Y)),
	}.Expand(losOffset * 1.5)
	return HasLineOfSight(from, to, e.arena.Obstacles.Query(box))
}

// chooseMoveTarget picks where the agent wants to go this tick. ok is false
// when the agent has nowhere to be.
func (e *Engine) chooseMoveTarget(a *Agent, local []geom.Obstacle) (geom.Vec2, bool) {
	if a.stuck.timer > wanderStuckTicks {
		if a.wanderTarget == nil || int(a.stuck.timer)%int(wanderStuckTicks) == 0 {
			w := e.sampleWander(a)
			a.wanderTarget = &w
		}
		return *a.wanderTarget, true
	}
	a.wanderTarget = nil

	if a.weapon == WeaponGrounded {
		return e.weaponApproach(a, local), true
	}

	if t := a.target; t != nil {
		return e.engage(a, t, local), true
	}

	if a.patrolTarget == nil || a.pos.Dist(*a.patrolTarget) < patrolReachDist {
		p := geom.V(
			patrolMargin+e.rng.Float64()*(e.arena.Width-2*patrolMargin),
			patrolMargin+e.rng.Float64()*(e.arena.Height-2*patrolMargin),
		)
		a.patrolTarget = &p
	}
	return *a.patrolTarget, true
}

// sampleWander draws random free points against the full obstacle set and
// falls back to the current position.
func (e *Engine) sampleWander(a *Agent) geom.Vec2 {
	for i := 0; i < wanderAttempts; i++ {
		p := geom.V(
			wanderMargin+e.rng.Float64()*(e.arena.Width-2*wanderMargin),
			wanderMargin+e.rng.Float64()*(e.arena.Height-2*wanderMargin),
		)
		if e.isPointFree(p, e.arena.Obstacles.Near(p, a.radius), a.radius) {
			return p
		}
	}
	return a.pos
}

// weaponApproach heads straight for a visible grounded weapon, otherwise
// for a free flank point beside it.
func (e *Engine) weaponApproach(a *Agent, local []geom.Obstacle) geom.Vec2 {
	wp := a.weaponPos
	if HasLineOfSight(a.pos, wp, local) {
		return wp
	}
	fwd := wp.Sub(a.pos).Normalize()
	side := fwd.Perp()
	for _, s := range [...]float64{flankSide, -flankSide} {
		p := wp.Add(side.Scale(s)).Add(fwd.Scale(flankForward))
		if e.isPointFree(p, local, a.radius) && !IsBlocked(a.pos, p, local) {
			return p
		}
	}
	return wp
}

// engage approaches the target or strafes around it at the preferred range.
func (e *Engine) engage(a, t *Agent, local []geom.Obstacle) geom.Vec2 {
	vec := t.pos.Sub(a.pos)
	dist := vec.Len()
	desired := a.stats.Aggression
	if a.stats.MeleeBias > meleeBiasCloseIn {
		desired = 0
	}
	if dist > desired {
		return t.pos
	}

	if a.strafe.cooldown <= 0 && e.rng.Float64() < a.stats.StrafeRate {
		a.strafe.dir = -a.strafe.dir
		a.strafe.cooldown = strafeFlipCooldown
	}

	norm := vec.Normalize()
	perp := norm.Perp()
	if a.stuck.escapeTimer > 0 {
		perp = vec.Neg().Scale(0.2).Normalize()
	}
	keep := desired
	if !a.HasWeapon() && t.HasWeapon() {
		keep = disarmedKeepAway
	}
	distFactor := clampf((dist-keep)*0.01, -1, 1)
	candidate := func(side float64) geom.Vec2 {
		return a.pos.Add(perp.Scale(side * strafeStep)).Add(norm.Scale(distFactor * strafeStep))
	}

	strafePos := candidate(a.strafe.dir)
	if e.reachable(a, strafePos, local) {
		return strafePos
	}
	mirrored := candidate(-a.strafe.dir)
	if e.reachable(a, mirrored, local) {
		a.strafe.dir = -a.strafe.dir
		a.strafe.cooldown = strafeFlipCooldown
		return mirrored
	}
	retreat := a.pos.Sub(norm.Scale(retreatStep))
	if e.reachable(a, retreat, local) {
		return retreat
	}
	if a.wanderTarget == nil {
		w := e.sampleWander(a)
		a.wanderTarget = &w
	}
	return *a.wanderTarget
}

func (e *Engine) reachable(a *Agent, p geom.Vec2, local []geom.Obstacle) bool {
	return e.isPointFree(p, local, a.radius) && !IsBlocked(a.pos, p, local)
}

// isPointFree reports whether a circle of radius at p is inside the arena
// margin and clear of every given obstacle.
func (e *Engine) isPointFree(p geom.Vec2, obstacles []geom.Obstacle, radius float64) bool {
	if p.X < pointMargin || p.X > e.arena.Width-pointMargin ||
		p.Y < pointMargin || p.Y > e.arena.Height-pointMargin {
		return false
	}
	for _, o := range obstacles {
		if hit, _ := o.Penetration(p, radius); hit {
			return false
		}
	}
	return true
}

func probeBlocked(p geom.Vec2, obstacles []geom.Obstacle) bool {
	for _, o := range obstacles {
		if hit, _ := o.Penetration(p, probeRadius); hit {
			return true
		}
	}
	return false
}

// steerDirection turns the move target into a unit direction, detouring
// around obstacles. A zero result means "brake".
func (e *Engine) steerDirection(a *Agent, dest geom.Vec2, ok bool, local []geom.Obstacle) geom.Vec2 {
	var desired geom.Vec2
	switch {
	case a.stuck.escapeTimer > 0:
		desired = a.stuck.escapeDir
	case ok:
		d := dest.Sub(a.pos)
		if d.Len() > 1e-6 {
			desired = d.Normalize()
		}
	}
	if desired.IsZero() {
		return desired
	}

	if a.stuck.escapeTimer <= 0 && IsBlocked(a.pos, a.pos.Add(desired.Scale(lookAhead)), local) {
		desired = e.fanSweep(a, desired, local)
	}
	return slide(a.pos, desired, local)
}

// fanSweep tries rotated headings in widening pairs, preferred side first.
func (e *Engine) fanSweep(a *Agent, desired geom.Vec2, local []geom.Obstacle) geom.Vec2 {
	for _, mag := range fanAngles {
		for _, ang := range [...]float64{a.avoidBias * mag, -a.avoidBias * mag} {
			test := desired.Rotate(ang)
			if IsBlocked(a.pos, a.pos.Add(test.Scale(lookAhead)), local) {
				continue
			}
			if !e.isPointFree(a.pos.Add(test.Scale(fanLandingDist)), local, a.radius) {
				continue
			}
			if ang > 0 {
				a.avoidBias = 1
			} else {
				a.avoidBias = -1
			}
			return test
		}
	}
	// Every heading is blocked: back off, and side-step if there is room.
	desired = desired.Neg()
	side := a.pos.Add(desired.Perp().Scale(smallEscape))
	if e.isPointFree(side, local, a.radius) {
		desired = side.Sub(a.pos).Normalize()
	}
	return desired
}

// slide probes one short step ahead and slides along X or Y when that
// step is hard-blocked, with a damped perpendicular jitter as last resort.
func slide(pos, desired geom.Vec2, local []geom.Obstacle) geom.Vec2 {
	if !probeBlocked(pos.Add(desired.Scale(probeStep)), local) {
		return desired
	}
	if sx := geom.V(desired.X, 0); math.Abs(sx.X) > 1e-6 && !probeBlocked(pos.Add(sx.Scale(probeStep)), local) {
		return sx.Normalize()
	}
	if sy := geom.V(0, desired.Y); math.Abs(sy.Y) > 1e-6 && !probeBlocked(pos.Add(sy.Scale(probeStep)), local) {
		return sy.Normalize()
	}
	jitter := desired.Perp().Normalize().Scale(0.5)
	if !probeBlocked(pos.Add(jitter.Scale(probeStep)), local) {
		return jitter
	}
	return geom.Vec2{}
}

func clampf(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
