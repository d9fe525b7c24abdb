package game

import (
	"fmt"
	"math"

	"github.com/Garsondee/arena-league/internal/geom"
)

const (
	weaponSpeed       = 10.0
	weaponProbeRadius = 5.0
	weaponWallMargin  = 20.0 // landing clamp when the weapon leaves the arena
	weaponHitLength   = 50.0 // oriented hitbox along the flight direction
	weaponHitWidth    = 16.0
	pickupRange       = 60.0
)

// updateWeapon advances a flying weapon or lets its owner pick it up.
// Flight continues after the owner dies; pickup needs a live owner.
func (e *Engine) updateWeapon(a *Agent, agents []*Agent, kills KillRecorder) {
	switch a.weapon {
	case WeaponFlying:
		e.flyWeapon(a, agents, kills)
	case WeaponGrounded:
		if a.alive && a.pos.Dist(a.weaponPos) < pickupRange {
			a.weapon = WeaponInHand
			e.log.Add(e.tick, a.label(), a.team.String(), "weapon", "pickup",
				fmt.Sprintf("at (%.0f,%.0f)", a.weaponPos.X, a.weaponPos.Y), 0)
		}
	}
}

func (e *Engine) flyWeapon(a *Agent, agents []*Agent, kills KillRecorder) {
	prev := a.weaponPos
	next := prev.Add(a.weaponDir.Scale(weaponSpeed))

	box := geom.AABB{
		Min: geom.V(math.Min(prev.X, next.X), math.Min(prev.Y, next.Y)),
		Max: geom.V(math.Max(prev.X, next.X), math.Max(prev.Y, next.Y)),
	}.Expand(weaponProbeRadius)
	for _, obs := range e.arena.Obstacles.Query(box) {
		hitSeg := obs.IntersectsSegment(prev, next)
		hitProbe, _ := obs.Penetration(next, weaponProbeRadius)
		if !hitSeg && !hitProbe {
			continue
		}
		// Land one step back so the weapon never rests inside geometry.
		a.weaponPos = prev
		a.weapon = WeaponGrounded
		e.emit(EffectImpact, next, a.team)
		e.log.Add(e.tick, a.label(), a.team.String(), "weapon", "impact",
			fmt.Sprintf("%s at (%.0f,%.0f)", obs.Kind(), prev.X, prev.Y), 0)
		return
	}

	a.weaponPos = next
	if !e.arena.inBounds(next) {
		a.weaponPos = e.arena.clamp(next, weaponWallMargin)
		a.weapon = WeaponGrounded
		e.log.Add(e.tick, a.label(), a.team.String(), "weapon", "landed",
			fmt.Sprintf("out of bounds, at (%.0f,%.0f)", a.weaponPos.X, a.weaponPos.Y), 0)
		return
	}

	hitbox := geom.NewRotatedRect(next, weaponHitLength, weaponHitWidth, -a.weaponDir.Angle()*180/math.Pi)
	for _, o := range agents {
		if !o.alive || o.team == a.team {
			continue
		}
		if hit, _, _ := geom.CircleVsRotatedRect(o.pos, o.radius, hitbox); !hit {
			continue
		}
		killed := o.takeDamage(a.stats.ThrowDamage)
		a.weapon = WeaponGrounded
		e.emit(EffectHit, next, o.team)
		e.log.Add(e.tick, a.label(), a.team.String(), "weapon", "hit",
			fmt.Sprintf("%s hp %d", o.label(), o.hp), float64(a.stats.ThrowDamage))
		if killed {
			e.recordKill(a, o, KillSniped, kills)
		}
		return
	}
}
