package viewer

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/arena-league/internal/game"
	"github.com/Garsondee/arena-league/internal/geom"
)

const (
	particleLife  = 30
	particleDrag  = 0.9
	maxParticles  = 600
	burstImpact   = 6
	burstHit      = 10
	burstDeath    = 24
	particleSpeed = 3.0
)

type particle struct {
	pos  geom.Vec2
	vel  geom.Vec2
	life int
	col  color.RGBA
}

// Particles turns engine effects into short-lived sparks. Its random source
// is separate from the engine so drawing never perturbs a seeded run.
type Particles struct {
	rng  *rand.Rand
	live []particle
}

// NewParticles creates an empty particle system.
func NewParticles(seed int64) *Particles {
	return &Particles{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- cosmetic only
}

// Spawn emits a burst for each effect.
func (p *Particles) Spawn(effects []game.Effect) {
	for _, e := range effects {
		n := burstImpact
		switch e.Kind {
		case game.EffectHit, game.EffectMelee:
			n = burstHit
		case game.EffectDeath:
			n = burstDeath
		}
		col := effectColor(e)
		for i := 0; i < n && len(p.live) < maxParticles; i++ {
			ang := p.rng.Float64() * 2 * math.Pi
			speed := particleSpeed * (0.3 + 0.7*p.rng.Float64())
			p.live = append(p.live, particle{
				pos:  e.Pos,
				vel:  geom.FromAngle(ang).Scale(speed),
				life: particleLife/2 + p.rng.Intn(particleLife/2),
				col:  col,
			})
		}
	}
}

// Update ages every particle and drops the expired ones.
func (p *Particles) Update() {
	kept := p.live[:0]
	for _, q := range p.live {
		q.life--
		if q.life <= 0 {
			continue
		}
		q.pos = q.pos.Add(q.vel)
		q.vel = q.vel.Scale(particleDrag)
		kept = append(kept, q)
	}
	p.live = kept
}

// Len returns the number of live particles.
func (p *Particles) Len() int { return len(p.live) }

// Clear drops every particle.
func (p *Particles) Clear() { p.live = p.live[:0] }

// Draw renders particles in world coordinates.
func (p *Particles) Draw(dst *ebiten.Image) {
	for _, q := range p.live {
		vector.FillCircle(dst, float32(q.pos.X), float32(q.pos.Y), 2, fade(q.col, float64(q.life)/particleLife), false)
	}
}

// fade scales a colour towards transparent, keeping it premultiplied.
func fade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: uint8(float64(c.A) * f)}
}
