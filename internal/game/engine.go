package game

import (
	"fmt"
	"math/rand"

	"github.com/Garsondee/arena-league/internal/geom"
)

// Arena is the bounded playfield plus its static obstacles.
type Arena struct {
	Width     float64
	Height    float64
	Obstacles *ObstacleSet
}

// NewArena indexes obs for a w x h playfield.
func NewArena(w, h float64, obs []geom.Obstacle) Arena {
	return Arena{Width: w, Height: h, Obstacles: NewObstacleSet(obs)}
}

func (ar Arena) inBounds(p geom.Vec2) bool {
	return p.X >= 0 && p.X <= ar.Width && p.Y >= 0 && p.Y <= ar.Height
}

func (ar Arena) clamp(p geom.Vec2, margin float64) geom.Vec2 {
	return p.Clamp(margin, margin, ar.Width-margin, ar.Height-margin)
}

// EffectKind classifies a transient presentation event.
type EffectKind int

const (
	EffectImpact EffectKind = iota // thrown weapon hit an obstacle
	EffectHit                      // thrown weapon hit an agent
	EffectMelee                    // melee strike landed
	EffectDeath
)

func (k EffectKind) String() string {
	switch k {
	case EffectImpact:
		return "impact"
	case EffectHit:
		return "hit"
	case EffectMelee:
		return "melee"
	case EffectDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Effect is emitted by the simulation for the presentation layer to spawn
// particles or sounds. The engine never consumes its own effects.
type Effect struct {
	Kind EffectKind
	Pos  geom.Vec2
	Team Team
}

// Engine advances agents one tick at a time. It owns the only random source
// of the simulation; with a fixed seed and the same inputs a run is
// reproducible on one build. Not safe for concurrent use.
type Engine struct {
	arena   Arena
	rng     *rand.Rand
	tick    int
	effects []Effect
	log     *SimLog
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSeed seeds the engine random source.
func WithSeed(seed int64) EngineOption {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithSimLog routes structured events to l.
func WithSimLog(l *SimLog) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates an engine for arena.
func NewEngine(arena Arena, opts ...EngineOption) *Engine {
	e := &Engine{
		arena: arena,
		rng:   rand.New(rand.NewSource(1)), // #nosec G404 -- gameplay randomness
		log:   NewSimLog(false),
	}
	if e.arena.Obstacles == nil {
		e.arena.Obstacles = NewObstacleSet(nil)
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Arena returns the engine playfield.
func (e *Engine) Arena() Arena { return e.arena }

// Tick returns the number of completed Advance calls.
func (e *Engine) Tick() int { return e.tick }

// SimLog returns the structured event log.
func (e *Engine) SimLog() *SimLog { return e.log }

// Effects returns the effects emitted during the last Advance. The slice is
// replaced on the next Advance.
func (e *Engine) Effects() []Effect { return e.effects }

// Advance runs one simulation tick. Agents are processed in slice order:
// each live agent steers, fights and resolves collisions, then its weapon
// (if airborne or grounded) is updated. Later agents observe the already
// updated state of earlier ones. Kill events go to kills, which may be nil.
func (e *Engine) Advance(agents []*Agent, kills KillRecorder) {
	if kills == nil {
		kills = discardKills{}
	}
	e.tick++
	e.effects = nil
	for _, a := range agents {
		if a.alive {
			e.updateAgent(a, agents, kills)
		}
		e.updateWeapon(a, agents, kills)
	}
}

// updateAgent is the per-tick decision pipeline for one live agent.
func (e *Engine) updateAgent(a *Agent, agents []*Agent, kills KillRecorder) {
	if a.index.refresh(e.arena.Obstacles, a.pos) {
		e.log.AddVerbose(e.tick, a.label(), a.team.String(), "index", "rebuild",
			fmt.Sprintf("%d obstacles near (%.0f,%.0f)", len(a.index.local), a.pos.X, a.pos.Y),
			float64(len(a.index.local)))
	}
	local := a.index.local

	e.updateStuck(a)
	e.acquireTarget(a, agents)

	dest, ok := e.chooseMoveTarget(a, local)
	dir := e.steerDirection(a, dest, ok, local)
	if dir.Len() < 1e-3 {
		a.vel = a.vel.Scale(0.5)
	} else {
		a.vel = a.vel.Add(dir.Scale(a.stats.Speed))
	}

	e.updateCombat(a, agents, kills)

	a.vel = a.vel.Scale(friction)
	a.pos = a.pos.Add(a.vel)
	e.resolveCollisions(a, agents)

	if a.cooldown > 0 {
		a.cooldown--
	}
	if a.swingTimer > 0 {
		a.swingTimer--
	}
	if a.strafe.cooldown > 0 {
		a.strafe.cooldown--
	}
	if a.stuck.escapeTimer > 0 {
		a.stuck.escapeTimer--
	}

	e.log.AddVerbose(e.tick, a.label(), a.team.String(), "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", a.pos.X, a.pos.Y), a.vel.Len())
}

func (e *Engine) emit(kind EffectKind, pos geom.Vec2, team Team) {
	e.effects = append(e.effects, Effect{Kind: kind, Pos: pos, Team: team})
}
