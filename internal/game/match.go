package game

// Match bundles an engine with its roster, kill feed and team titles.
type Match struct {
	engine *Engine
	agents []*Agent
	feed   *KillFeed
	titles []string
}

// NewMatch wires agents to e. titles[i] names Team(i).
func NewMatch(e *Engine, agents []*Agent, titles []string) *Match {
	return &Match{engine: e, agents: agents, feed: &KillFeed{}, titles: titles}
}

// Step advances one tick unless the match is already decided.
func (m *Match) Step() {
	if m.Over() {
		return
	}
	m.engine.Advance(m.agents, m.feed)
}

func (m *Match) Engine() *Engine { return m.engine }
func (m *Match) Agents() []*Agent { return m.agents }
func (m *Match) Feed() *KillFeed { return m.feed }
func (m *Match) Tick() int { return m.engine.Tick() }

// Title returns the display name of t.
func (m *Match) Title(t Team) string {
	if int(t) >= 0 && int(t) < len(m.titles) {
		return m.titles[t]
	}
	return t.String()
}

// AliveCount returns how many agents of t are alive.
func (m *Match) AliveCount(t Team) int {
	n := 0
	for _, a := range m.agents {
		if a.alive && a.team == t {
			n++
		}
	}
	return n
}

// Winner returns the last team standing. ok is false while two or more
// teams still have live agents, and also when nobody is left.
func (m *Match) Winner() (Team, bool) {
	var winner Team
	found := false
	for _, a := range m.agents {
		if !a.alive {
			continue
		}
		if found && a.team != winner {
			return 0, false
		}
		winner, found = a.team, true
	}
	return winner, found
}

// Over reports whether at most one team remains.
func (m *Match) Over() bool {
	if _, ok := m.Winner(); ok {
		return true
	}
	for _, a := range m.agents {
		if a.alive {
			return false
		}
	}
	return true
}
