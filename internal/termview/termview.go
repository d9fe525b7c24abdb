// Package termview draws a running match on a character grid with tcell.
package termview

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/arena-league/internal/arena"
	"github.com/Garsondee/arena-league/internal/game"
	"github.com/Garsondee/arena-league/internal/geom"
	"github.com/Garsondee/arena-league/internal/palette"
)

const (
	statusRows    = 2
	frameInterval = 16 * time.Millisecond
	feedLines     = 3
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	weaponStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	deadStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

func teamStyle(t game.Team) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.FromImageColor(palette.Team(t))).Bold(true)
}

// Renderer owns the screen and the match it shows.
type Renderer struct {
	screen tcell.Screen
	cfg    *arena.Config
	seed   int64
	match  *game.Match
	paused bool

	cols, rows int
	walls      []bool // cols*rows obstacle mask for the current size
}

// New wraps an initialised screen.
func New(screen tcell.Screen, cfg *arena.Config, seed int64) (*Renderer, error) {
	r := &Renderer{screen: screen, cfg: cfg}
	if err := r.restart(seed); err != nil {
		return nil, err
	}
	r.resize()
	return r, nil
}

// Match returns the running match.
func (r *Renderer) Match() *game.Match { return r.match }

func (r *Renderer) restart(seed int64) error {
	m, err := r.cfg.BuildMatch(game.WithSeed(seed))
	if err != nil {
		return err
	}
	r.seed, r.match = seed, m
	return nil
}

func (r *Renderer) resize() {
	w, h := r.screen.Size()
	r.cols, r.rows = w, h-statusRows-feedLines
	if r.rows < 1 || r.cols < 1 {
		r.walls = nil
		return
	}
	r.walls = make([]bool, r.cols*r.rows)
	obs := r.match.Engine().Arena().Obstacles
	cw, ch := r.cfg.Arena.Width/float64(r.cols), r.cfg.Arena.Height/float64(r.rows)
	probe := 0.25 * min(cw, ch)
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			c := geom.V((float64(x)+0.5)*cw, (float64(y)+0.5)*ch)
			for _, o := range obs.Near(c, probe) {
				if hit, _ := o.Penetration(c, probe); hit {
					r.walls[y*r.cols+x] = true
					break
				}
			}
		}
	}
}

// cell maps an arena point to a grid cell; ok is false off-grid.
func (r *Renderer) cell(p geom.Vec2) (x, y int, ok bool) {
	if r.cols < 1 || r.rows < 1 {
		return 0, 0, false
	}
	x = int(p.X / r.cfg.Arena.Width * float64(r.cols))
	y = int(p.Y / r.cfg.Arena.Height * float64(r.rows))
	x = min(max(x, 0), r.cols-1)
	y = min(max(y, 0), r.rows-1)
	return x, y, true
}

func (r *Renderer) putString(x, y int, s string, style tcell.Style) {
	for i, ch := range s {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// Draw renders one frame.
func (r *Renderer) Draw() {
	r.screen.Clear()
	for i, wall := range r.walls {
		if wall {
			r.screen.SetContent(i%r.cols, i/r.cols, '█', nil, wallStyle)
		}
	}

	agents := r.match.Agents()
	for _, a := range agents {
		if ws := a.WeaponState(); ws == game.WeaponFlying || ws == game.WeaponGrounded {
			wp, _ := a.Weapon()
			if x, y, ok := r.cell(wp); ok {
				r.screen.SetContent(x, y, '/', nil, weaponStyle)
			}
		}
	}
	// Dead first so the living draw on top.
	for _, a := range agents {
		if x, y, ok := r.cell(a.Pos()); ok && !a.Alive() {
			r.screen.SetContent(x, y, 'x', nil, deadStyle)
		}
	}
	for _, a := range agents {
		if x, y, ok := r.cell(a.Pos()); ok && a.Alive() {
			r.screen.SetContent(x, y, []rune(a.Name())[0], nil, teamStyle(a.Team()))
		}
	}

	top := max(r.rows, 0)
	events := r.match.Feed().Last(feedLines)
	for i, ev := range events {
		r.putString(0, top+i, ev.String(), tcell.StyleDefault)
	}
	r.putString(0, top+feedLines, r.status(), statusStyle)
	r.putString(0, top+feedLines+1, "space pause  r restart  q quit", tcell.StyleDefault)
	r.screen.Show()
}

func (r *Renderer) status() string {
	s := fmt.Sprintf("T=%d seed=%d", r.match.Tick(), r.seed)
	for k := range r.cfg.Teams {
		t := game.Team(k)
		s += fmt.Sprintf("  %s %d", r.match.Title(t), r.match.AliveCount(t))
	}
	if w, ok := r.match.Winner(); ok && r.match.Over() {
		s += fmt.Sprintf("  %s WINS", r.match.Title(w))
	}
	if r.paused {
		s += "  PAUSED"
	}
	return s
}

// HandleEvent applies one input event. It returns false when the user quits.
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			r.paused = !r.paused
		case 'r':
			if err := r.restart(r.seed + 1); err == nil {
				r.resize()
			}
		}
	case *tcell.EventResize:
		r.resize()
		r.screen.Sync()
	}
	return true
}

// Step advances the match unless paused.
func (r *Renderer) Step() {
	if !r.paused {
		r.match.Step()
	}
}

// Run drives the screen until the user quits or the match is long over.
func (r *Renderer) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !r.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			r.Step()
			r.Draw()
		}
	}
}
