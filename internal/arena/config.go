// Package arena loads arena layouts, bot rosters and matchups from YAML and
// turns them into ready-to-run matches.
package arena

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/arena-league/internal/game"
	"github.com/Garsondee/arena-league/internal/geom"
)

//go:embed default.yaml
var defaultYAML []byte

// Config is the full match configuration.
type Config struct {
	Arena  ArenaSpec  `yaml:"arena"`
	Roster []BotSpec  `yaml:"roster"`
	Teams  []TeamSpec `yaml:"teams"`
}

// ArenaSpec describes the playfield.
type ArenaSpec struct {
	Name      string         `yaml:"name"`
	Image     string         `yaml:"image"`
	Width     float64        `yaml:"width"`
	Height    float64        `yaml:"height"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
}

// ObstacleSpec is one obstacle entry. Which fields apply depends on Kind:
//
//	rect          x, y (top-left), w, h
//	rotated_rect  x, y (centre), w, h, angle (degrees)
//	circle        x, y (centre), r
//	polygon       points
type ObstacleSpec struct {
	Kind   string      `yaml:"kind"`
	X      float64     `yaml:"x"`
	Y      float64     `yaml:"y"`
	W      float64     `yaml:"w"`
	H      float64     `yaml:"h"`
	R      float64     `yaml:"r"`
	Angle  float64     `yaml:"angle"`
	Points [][]float64 `yaml:"points"`
}

// BotSpec is one roster entry.
type BotSpec struct {
	Name       string  `yaml:"name"`
	Image      string  `yaml:"image"`
	HP         int     `yaml:"hp"`
	Speed      float64 `yaml:"speed"`
	MeleeDmg   int     `yaml:"melee_dmg"`
	ThrowDmg   int     `yaml:"throw_dmg"`
	Cooldown   int     `yaml:"cooldown"`
	Aggression float64 `yaml:"aggression"`
	StrafeRate float64 `yaml:"strafe_rate"`
	Accuracy   float64 `yaml:"accuracy"`
	MeleeBias  float64 `yaml:"melee_bias"`
}

// TeamSpec names a side and lists its roster members.
type TeamSpec struct {
	Title   string   `yaml:"title"`
	Members []string `yaml:"members"`
}

// Default returns the embedded warehouse configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(errors.Wrap(err, "embedded default config"))
	}
	return cfg
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return errors.Errorf("arena size %gx%g must be positive", c.Arena.Width, c.Arena.Height)
	}
	for i, o := range c.Arena.Obstacles {
		if _, err := o.Obstacle(); err != nil {
			return errors.Wrapf(err, "obstacle %d", i)
		}
	}

	byName := make(map[string]bool, len(c.Roster))
	for i, b := range c.Roster {
		if err := b.validate(); err != nil {
			return errors.Wrapf(err, "roster entry %d", i)
		}
		if byName[b.Name] {
			return errors.Errorf("roster entry %d: duplicate name %q", i, b.Name)
		}
		byName[b.Name] = true
	}

	if len(c.Teams) < 2 {
		return errors.Errorf("need at least 2 teams, got %d", len(c.Teams))
	}
	for i, t := range c.Teams {
		if strings.TrimSpace(t.Title) == "" {
			return errors.Errorf("team %d: empty title", i)
		}
		if len(t.Members) == 0 {
			return errors.Errorf("team %q has no members", t.Title)
		}
		for _, m := range t.Members {
			if !byName[m] {
				return errors.Errorf("team %q: %q is not in the roster", t.Title, m)
			}
		}
	}
	return nil
}

func (b BotSpec) validate() error {
	switch {
	case strings.TrimSpace(b.Name) == "":
		return errors.New("empty name")
	case b.HP <= 0:
		return errors.Errorf("%s: hp %d must be positive", b.Name, b.HP)
	case b.Speed <= 0:
		return errors.Errorf("%s: speed %g must be positive", b.Name, b.Speed)
	case b.Cooldown < 0:
		return errors.Errorf("%s: cooldown %d is negative", b.Name, b.Cooldown)
	case b.MeleeDmg < 0 || b.ThrowDmg < 0:
		return errors.Errorf("%s: damage is negative", b.Name)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"accuracy", b.Accuracy}, {"strafe_rate", b.StrafeRate}, {"melee_bias", b.MeleeBias}} {
		if f.v < 0 || f.v > 1 {
			return errors.Errorf("%s: %s %g outside [0,1]", b.Name, f.name, f.v)
		}
	}
	return nil
}

// accelScale turns a roster speed into per-tick acceleration.
const accelScale = 0.6

// Stats converts the entry into engine stats.
func (b BotSpec) Stats() game.Stats {
	return game.Stats{
		Name:        b.Name,
		HP:          b.HP,
		Speed:       b.Speed * accelScale,
		MeleeDamage: b.MeleeDmg,
		ThrowDamage: b.ThrowDmg,
		Cooldown:    b.Cooldown,
		Aggression:  b.Aggression,
		StrafeRate:  b.StrafeRate,
		Accuracy:    b.Accuracy,
		MeleeBias:   b.MeleeBias,
	}
}

// Obstacle converts the entry into an engine obstacle.
func (o ObstacleSpec) Obstacle() (geom.Obstacle, error) {
	switch o.Kind {
	case geom.KindRect.String():
		if o.W <= 0 || o.H <= 0 {
			return nil, errors.Errorf("rect size %gx%g must be positive", o.W, o.H)
		}
		return geom.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}, nil
	case geom.KindRotatedRect.String():
		if o.W <= 0 || o.H <= 0 {
			return nil, errors.Errorf("rotated_rect size %gx%g must be positive", o.W, o.H)
		}
		return geom.NewRotatedRect(geom.V(o.X, o.Y), o.W, o.H, o.Angle), nil
	case geom.KindCircle.String():
		if o.R <= 0 {
			return nil, errors.Errorf("circle radius %g must be positive", o.R)
		}
		return geom.Circle{Center: geom.V(o.X, o.Y), Radius: o.R}, nil
	case geom.KindPolygon.String():
		if len(o.Points) < 3 {
			return nil, errors.Errorf("polygon needs at least 3 points, got %d", len(o.Points))
		}
		pts := make([]geom.Vec2, len(o.Points))
		for i, p := range o.Points {
			if len(p) != 2 {
				return nil, errors.Errorf("polygon point %d has %d coordinates", i, len(p))
			}
			pts[i] = geom.V(p[0], p[1])
		}
		return geom.Polygon{Points: pts}, nil
	default:
		return nil, errors.Errorf("unknown obstacle kind %q", o.Kind)
	}
}

// Bot returns the roster entry called name.
func (c *Config) Bot(name string) (BotSpec, bool) {
	for _, b := range c.Roster {
		if b.Name == name {
			return b, true
		}
	}
	return BotSpec{}, false
}
