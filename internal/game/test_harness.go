package game

import (
	"fmt"

	"github.com/Garsondee/arena-league/internal/geom"
)

// TestSim is a headless simulation harness used by tests and the batch
// reporter. It builds an arena and roster from options and drives the
// engine with deterministic seeding and structured logging.
type TestSim struct {
	Width     float64
	Height    float64
	obstacles []geom.Obstacle
	Agents    []*Agent
	Kills     *KillFeed
	SimLog    *SimLog
	Engine    *Engine
	seed      int64

	nextID int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // arena size, obstacles, seed, verbose: applied first
	simOptAgent                      // add agents: applied after the arena is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithArenaSize sets the playfield dimensions.
func WithArenaSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Width = w
		ts.Height = h
	}}
}

// WithObstacle adds any obstacle.
func WithObstacle(o geom.Obstacle) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.obstacles = append(ts.obstacles, o)
	}}
}

// WithCircle adds a round pillar.
func WithCircle(x, y, r float64) SimOption {
	return WithObstacle(geom.Circle{Center: geom.V(x, y), Radius: r})
}

// WithRect adds an axis-aligned box with top-left corner (x, y).
func WithRect(x, y, w, h float64) SimOption {
	return WithObstacle(geom.Rect{X: x, Y: y, W: w, H: h})
}

// WithRotatedRect adds a w x h box centred on (x, y) rotated by angle degrees.
func WithRotatedRect(x, y, w, h, angle float64) SimOption {
	return WithObstacle(geom.NewRotatedRect(geom.V(x, y), w, h, angle))
}

// WithPolygon adds a closed vertex loop.
func WithPolygon(pts ...geom.Vec2) SimOption {
	return WithObstacle(geom.Polygon{Points: pts})
}

// WithSimSeed sets the engine seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithAgent adds an agent with the given stats on team at (x, y).
func WithAgent(stats Stats, team Team, x, y float64) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		ts.Agents = append(ts.Agents, NewAgent(ts.nextID, stats, team, geom.V(x, y)))
		ts.nextID++
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (arena size, obstacles, seed, verbose)
//  2. Engine
//  3. Agents
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Width:  900,
		Height: 1200,
		SimLog: NewSimLog(false),
		Kills:  &KillFeed{},
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Engine = NewEngine(NewArena(ts.Width, ts.Height, ts.obstacles),
		WithSeed(ts.seed), WithSimLog(ts.SimLog))
	for _, o := range opts {
		if o.kind == simOptAgent {
			o.fn(ts)
		}
	}
	return ts
}

// AllByTeam returns all agents for a given team.
func (ts *TestSim) AllByTeam(team Team) []*Agent {
	var out []*Agent
	for _, a := range ts.Agents {
		if a.team == team {
			out = append(out, a)
		}
	}
	return out
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Engine.Advance(ts.Agents, ts.Kills)
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Engine.Advance(ts.Agents, ts.Kills)
		if predicate(ts) {
			return ts.Engine.Tick()
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Engine.Tick()
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick   int
	Agents []AgentSnapshot
}

// AgentSnapshot is a lightweight copy of an agent's state at a tick.
type AgentSnapshot struct {
	ID     int
	Name   string
	Team   Team
	Pos    geom.Vec2
	HP     int
	Alive  bool
	Weapon WeaponState
	Target string
}

func (s AgentSnapshot) String() string {
	return fmt.Sprintf("%s(%s) hp=%d pos=(%.0f,%.0f) weapon=%s target=%s",
		s.Name, s.Team, s.HP, s.Pos.X, s.Pos.Y, s.Weapon, s.Target)
}

// Snapshot returns the current state of all agents.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Tick: ts.Engine.Tick()}
	for _, a := range ts.Agents {
		target := "--"
		if a.target != nil {
			target = a.target.name
		}
		snap.Agents = append(snap.Agents, AgentSnapshot{
			ID:     a.id,
			Name:   a.name,
			Team:   a.team,
			Pos:    a.pos,
			HP:     a.hp,
			Alive:  a.alive,
			Weapon: a.weapon,
			Target: target,
		})
	}
	return snap
}
