package arena

import (
	"github.com/pkg/errors"

	"github.com/Garsondee/arena-league/internal/game"
	"github.com/Garsondee/arena-league/internal/geom"
)

const spawnEdge = 150.0 // distance of the first and last spawn rows from the arena edge

// Obstacles converts every obstacle entry. The config must be valid.
func (c *Config) Obstacles() ([]geom.Obstacle, error) {
	out := make([]geom.Obstacle, 0, len(c.Arena.Obstacles))
	for i, o := range c.Arena.Obstacles {
		obs, err := o.Obstacle()
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %d", i)
		}
		out = append(out, obs)
	}
	return out, nil
}

// NewArena builds the engine arena.
func (c *Config) NewArena() (game.Arena, error) {
	obs, err := c.Obstacles()
	if err != nil {
		return game.Arena{}, err
	}
	return game.NewArena(c.Arena.Width, c.Arena.Height, obs), nil
}

// Titles returns team titles in team order.
func (c *Config) Titles() []string {
	out := make([]string, len(c.Teams))
	for i, t := range c.Teams {
		out[i] = t.Title
	}
	return out
}

// SpawnPoint returns where member i of n in team k of teams starts. Each
// team gets a row evenly spaced across the width; the first team spawns near
// the top edge and the last near the bottom.
func (c *Config) SpawnPoint(k, teams, i, n int) geom.Vec2 {
	x := c.Arena.Width / float64(n+1) * float64(i+1)
	y := spawnEdge
	if teams > 1 {
		y = spawnEdge + float64(k)*(c.Arena.Height-2*spawnEdge)/float64(teams-1)
	}
	return geom.V(x, y)
}

// Agents creates the roster for every team in spawn order.
func (c *Config) Agents() ([]*game.Agent, error) {
	var agents []*game.Agent
	id := 0
	for k, t := range c.Teams {
		for i, name := range t.Members {
			b, ok := c.Bot(name)
			if !ok {
				return nil, errors.Errorf("team %q: unknown bot %q", t.Title, name)
			}
			agents = append(agents, game.NewAgent(id, b.Stats(), game.Team(k), c.SpawnPoint(k, len(c.Teams), i, len(t.Members))))
			id++
		}
	}
	return agents, nil
}

// BuildMatch creates a fresh match from the config.
func (c *Config) BuildMatch(opts ...game.EngineOption) (*game.Match, error) {
	ar, err := c.NewArena()
	if err != nil {
		return nil, err
	}
	agents, err := c.Agents()
	if err != nil {
		return nil, err
	}
	return game.NewMatch(game.NewEngine(ar, opts...), agents, c.Titles()), nil
}
