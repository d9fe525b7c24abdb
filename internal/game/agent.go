package game

import (
	"fmt"

	"github.com/Garsondee/arena-league/internal/geom"
)

const (
	agentRadius = 25.0 // hurtbox and body radius, constant for an agent's lifetime
)

// Team identifies the side an agent fights for. Teams are indexed in roster order.
type Team int

var teamNames = [...]string{"green", "red", "blue", "yellow", "orange", "white"}

func (t Team) String() string {
	if t >= 0 && int(t) < len(teamNames) {
		return teamNames[t]
	}
	return fmt.Sprintf("team%d", int(t))
}

// Stats are the immutable combat stats of an agent, read once at construction.
type Stats struct {
	Name        string
	HP          int
	Speed       float64 // acceleration per tick
	MeleeDamage int
	ThrowDamage int
	Cooldown    int     // ticks between throws
	Aggression  float64 // preferred engagement distance
	StrafeRate  float64 // per-tick chance to flip strafe side, 0-1
	Accuracy    float64 // 0-1, 1 = no throw jitter
	MeleeBias   float64 // 0-1, higher = fewer throws and closer engagement
}

// WeaponState is the three-way weapon union. WeaponNone is only reachable
// transiently while the weapon changes hands.
type WeaponState int

const (
	WeaponInHand WeaponState = iota
	WeaponFlying
	WeaponGrounded
	WeaponNone
)

func (ws WeaponState) String() string {
	switch ws {
	case WeaponInHand:
		return "in_hand"
	case WeaponFlying:
		return "flying"
	case WeaponGrounded:
		return "grounded"
	default:
		return "none"
	}
}

// stuckState groups the stuck/escape hysteresis timers.
type stuckState struct {
	timer       float64
	reported    bool
	origin      geom.Vec2
	hasOrigin   bool
	escapeTimer int
	escapeDir   geom.Vec2
}

// strafeState is the side-step memory used while holding engagement distance.
type strafeState struct {
	dir      float64 // +1 or -1
	cooldown int
}

// Agent is an autonomous combatant. Death is a flag: dead agents stay in the
// slice for presentation and never re-enter decision logic.
type Agent struct {
	id     int
	name   string
	team   Team
	stats  Stats
	radius float64

	pos     geom.Vec2
	vel     geom.Vec2
	lastPos geom.Vec2
	heading float64 // radians

	hp    int
	maxHP int
	alive bool

	weapon    WeaponState
	weaponPos geom.Vec2
	weaponDir geom.Vec2

	cooldown   int
	swingTimer int

	// AI memory
	stuck        stuckState
	strafe       strafeState
	wanderTarget *geom.Vec2
	patrolTarget *geom.Vec2
	target       *Agent
	scanTimer    int
	avoidBias    float64 // +1 tries positive fan angles first, -1 negative
	index        obstacleCache
}

// NewAgent creates an armed, full-health agent at pos.
func NewAgent(id int, stats Stats, team Team, pos geom.Vec2) *Agent {
	return &Agent{
		id:        id,
		name:      stats.Name,
		team:      team,
		stats:     stats,
		radius:    agentRadius,
		pos:       pos,
		lastPos:   pos,
		hp:        stats.HP,
		maxHP:     stats.HP,
		alive:     true,
		weapon:    WeaponInHand,
		strafe:    strafeState{dir: 1},
		avoidBias: 1,
	}
}

func (a *Agent) ID() int { return a.id }
func (a *Agent) Name() string { return a.name }
func (a *Agent) Team() Team { return a.team }
func (a *Agent) Stats() Stats { return a.stats }
func (a *Agent) Radius() float64 { return a.radius }
func (a *Agent) Pos() geom.Vec2 { return a.pos }
func (a *Agent) Vel() geom.Vec2 { return a.vel }
func (a *Agent) Heading() float64 { return a.heading }
func (a *Agent) HP() int { return a.hp }
func (a *Agent) MaxHP() int { return a.maxHP }
func (a *Agent) Alive() bool { return a.alive }
func (a *Agent) SwingTimer() int { return a.swingTimer }
func (a *Agent) WeaponState() WeaponState { return a.weapon }
func (a *Agent) HasWeapon() bool { return a.weapon == WeaponInHand }

// Weapon returns the weapon world position and direction. Only meaningful
// while the weapon is flying or grounded.
func (a *Agent) Weapon() (pos, dir geom.Vec2) {
	return a.weaponPos, a.weaponDir
}

// Target returns the currently remembered enemy, or nil.
func (a *Agent) Target() *Agent { return a.target }

// StuckTimer exposes the stuck counter for reports and overlays.
func (a *Agent) StuckTimer() float64 { return a.stuck.timer }

// Escaping reports whether a forced escape maneuver is active.
func (a *Agent) Escaping() bool { return a.stuck.escapeTimer > 0 }

// HPFraction returns hp/maxHP clamped to [0, 1].
func (a *Agent) HPFraction() float64 {
	if a.maxHP <= 0 {
		return 0
	}
	f := float64(a.hp) / float64(a.maxHP)
	if f < 0 {
		return 0
	}
	return f
}

// takeDamage applies dmg and reports whether this hit killed the agent. The
// alive flag flips at most once.
func (a *Agent) takeDamage(dmg int) bool {
	if !a.alive {
		return false
	}
	if dmg > 0 {
		a.hp -= dmg
	}
	if a.hp <= 0 {
		a.alive = false
		return true
	}
	return false
}

func (a *Agent) label() string { return a.name }
