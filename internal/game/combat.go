package game

import (
	"fmt"
	"math"

	"github.com/Garsondee/arena-league/internal/geom"
)

// --- Combat constants ---

const (
	meleeRange         = 70.0
	meleeCooldownTicks = 30
	swingTicks         = 15  // swing animation length
	throwLeadTicks     = 15  // how far ahead the thrower leads a moving target
	throwJitterScale   = 0.5 // radians of spread at accuracy 0
	headingSmoothing   = 0.2
	headingMinSpeed    = 0.1
)

// updateCombat faces and attacks the remembered target, or lets the heading
// drift toward the direction of travel when there is none.
func (e *Engine) updateCombat(a *Agent, agents []*Agent, kills KillRecorder) {
	t := a.target
	if t == nil || !t.alive {
		if a.vel.Len() > headingMinSpeed {
			diff := geom.WrapAngle(a.vel.Angle() - a.heading)
			a.heading = geom.WrapAngle(a.heading + diff*headingSmoothing)
		}
		return
	}

	vec := t.pos.Sub(a.pos)
	dist := vec.Len()
	a.heading = vec.Angle()
	armed := a.HasWeapon()
	if armed && dist < meleeRange && a.cooldown <= 0 {
		e.melee(a, t, kills)
		return
	}

	// Drawn whenever a target is held and no melee landed this tick.
	roll := e.rng.Float64()
	if !armed || a.cooldown > 0 || roll <= a.stats.MeleeBias || dist >= sensorRange {
		return
	}
	if !e.canSee(a.pos, t.pos) {
		return
	}
	e.throw(a, t)
}

func (e *Engine) melee(a, t *Agent, kills KillRecorder) {
	a.cooldown = meleeCooldownTicks
	a.swingTimer = swingTicks
	killed := t.takeDamage(a.stats.MeleeDamage)
	e.emit(EffectMelee, t.pos, t.team)
	e.log.Add(e.tick, a.label(), a.team.String(), "combat", "melee",
		fmt.Sprintf("%s hp %d", t.label(), t.hp), float64(a.stats.MeleeDamage))
	if killed {
		e.recordKill(a, t, KillStabbed, kills)
	}
}

func (e *Engine) throw(a, t *Agent) {
	lead := t.pos.Add(t.vel.Scale(throwLeadTicks))
	aim := lead.Sub(a.pos).Angle()
	spread := (1 - a.stats.Accuracy) * throwJitterScale
	aim += (e.rng.Float64()*2 - 1) * spread

	a.weapon = WeaponFlying
	a.weaponPos = a.pos
	a.weaponDir = geom.FromAngle(aim)
	a.cooldown = a.stats.Cooldown
	e.log.Add(e.tick, a.label(), a.team.String(), "combat", "throw",
		fmt.Sprintf("at %s, %.0f deg", t.label(), aim*180/math.Pi), aim)
}

func (e *Engine) recordKill(attacker, victim *Agent, method KillMethod, kills KillRecorder) {
	ev := KillEvent{Attacker: attacker.name, Victim: victim.name, Method: method}
	kills.RecordKill(ev)
	e.emit(EffectDeath, victim.pos, victim.team)
	e.log.Add(e.tick, attacker.label(), attacker.team.String(), "combat", "kill", ev.String(), 0)
}
