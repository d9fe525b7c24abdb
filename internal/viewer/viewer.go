// Package viewer renders a running match in an ebiten window.
package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/arena-league/internal/arena"
	"github.com/Garsondee/arena-league/internal/game"
	"github.com/Garsondee/arena-league/internal/geom"
	"github.com/Garsondee/arena-league/internal/palette"
)

const (
	borderWidth  = 16
	maxPlayfield = 860.0 // largest on-screen side of the arena, in pixels
	hpBarWidth   = 30
	hpBarHeight  = 4
	headingLen   = 1.4 // heading tick length as a multiple of radius
)

var simSpeeds = []float64{0, 0.5, 1, 2, 4}

// Game implements ebiten.Game for one configured matchup. R restarts with
// the next seed so every restart is itself reproducible.
type Game struct {
	cfg       *arena.Config
	seed      int64
	match     *game.Match
	feed      *Feed
	particles *Particles
	seenKills int
	announced bool

	scale      float64
	gameWidth  int
	gameHeight int
	width      int
	height     int
	worldBuf   *ebiten.Image

	debug     bool
	simSpeed  float64
	tickAccum float64
	status    string
	prevKeys  map[ebiten.Key]bool
}

// New builds a viewer for cfg starting at seed.
func New(cfg *arena.Config, seed int64) (*Game, error) {
	scale := math.Min(maxPlayfield/cfg.Arena.Width, maxPlayfield/cfg.Arena.Height)
	g := &Game{
		cfg:        cfg,
		seed:       seed,
		feed:       NewFeed(),
		particles:  NewParticles(seed),
		scale:      scale,
		gameWidth:  int(cfg.Arena.Width * scale),
		gameHeight: int(cfg.Arena.Height * scale),
		simSpeed:   1,
		prevKeys:   make(map[ebiten.Key]bool),
	}
	g.width = borderWidth + g.gameWidth + borderWidth + feedPanelWidth
	g.height = borderWidth + g.gameHeight + borderWidth
	g.worldBuf = ebiten.NewImage(int(cfg.Arena.Width), int(cfg.Arena.Height))
	if err := g.restart(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// Size returns the window size the viewer lays out to.
func (g *Game) Size() (int, int) { return g.width, g.height }

// Match returns the running match.
func (g *Game) Match() *game.Match { return g.match }

func (g *Game) restart(seed int64) error {
	m, err := g.cfg.BuildMatch(game.WithSeed(seed))
	if err != nil {
		return err
	}
	g.seed = seed
	g.match = m
	g.seenKills = 0
	g.announced = false
	g.tickAccum = 0
	g.feed.Reset()
	g.particles.Clear()
	g.feed.Add(0, -1, fmt.Sprintf("%s  seed %d", g.matchup(), seed))
	return nil
}

func (g *Game) matchup() string {
	titles := g.cfg.Titles()
	s := ""
	for i, t := range titles {
		if i > 0 {
			s += " vs "
		}
		s += t
	}
	return s
}

// step advances the match one tick and forwards its kills and effects.
func (g *Game) step() {
	g.match.Step()
	g.particles.Spawn(g.match.Engine().Effects())

	events := g.match.Feed().Events()
	for _, ev := range events[g.seenKills:] {
		team := game.Team(-1)
		for _, a := range g.match.Agents() {
			if a.Name() == ev.Attacker {
				team = a.Team()
				break
			}
		}
		g.feed.Add(g.match.Tick(), team, ev.String())
	}
	g.seenKills = len(events)

	if g.match.Over() && !g.announced {
		g.announced = true
		if w, ok := g.match.Winner(); ok {
			g.feed.Add(g.match.Tick(), w, fmt.Sprintf("%s WINS", g.match.Title(w)))
		} else {
			g.feed.Add(g.match.Tick(), -1, "DRAW")
		}
	}
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	g.particles.Update()
	if g.simSpeed <= 0 || g.match.Over() {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1 {
		g.tickAccum--
		g.step()
	}
	return nil
}

// pressed reports a key-down edge and records the key for the next frame.
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() error {
	cur := map[ebiten.Key]bool{}
	defer func() { g.prevKeys = cur }()

	if g.pressed(cur, ebiten.KeyD) {
		g.debug = !g.debug
	}
	if g.pressed(cur, ebiten.KeySpace) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.pressed(cur, ebiten.KeyComma) {
		g.simSpeed = slower(g.simSpeed)
	}
	if g.pressed(cur, ebiten.KeyPeriod) {
		g.simSpeed = faster(g.simSpeed)
	}
	if g.pressed(cur, ebiten.KeyC) {
		if err := clipboard.WriteAll(g.feed.Text()); err != nil {
			g.status = "clipboard: " + err.Error()
		} else {
			g.status = "kill feed copied"
		}
	}
	if g.pressed(cur, ebiten.KeyR) {
		return g.restart(g.seed + 1)
	}
	if g.pressed(cur, ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func slower(s float64) float64 {
	for i := len(simSpeeds) - 1; i > 0; i-- {
		if simSpeeds[i] <= s {
			return simSpeeds[i-1]
		}
	}
	return simSpeeds[0]
}

func faster(s float64) float64 {
	for _, v := range simSpeeds {
		if v > s {
			return v
		}
	}
	return simSpeeds[len(simSpeeds)-1]
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(frameColor)

	g.worldBuf.Fill(groundColor)
	g.drawObstacles(g.worldBuf)
	g.drawAgents(g.worldBuf)
	g.particles.Draw(g.worldBuf)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Scale(g.scale, g.scale)
	blit.GeoM.Translate(borderWidth, borderWidth)
	screen.DrawImage(g.worldBuf, &blit)

	vector.StrokeRect(screen, borderWidth-1, borderWidth-1, float32(g.gameWidth+2), float32(g.gameHeight+2), 2, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	g.drawLabels(screen)
	g.feed.Draw(screen, borderWidth+g.gameWidth+borderWidth, g.height)
	g.drawHUD(screen)
}

func (g *Game) drawObstacles(dst *ebiten.Image) {
	for _, o := range g.match.Engine().Arena().Obstacles.All() {
		col := kindColor(o.Kind())
		switch ob := o.(type) {
		case geom.Circle:
			vector.FillCircle(dst, float32(ob.Center.X), float32(ob.Center.Y), float32(ob.Radius), col, true)
		case geom.Rect:
			vector.FillRect(dst, float32(ob.X), float32(ob.Y), float32(ob.W), float32(ob.H), col, false)
		case geom.RotatedRect:
			c := ob.Corners()
			fillPolygon(dst, c[:], col)
		case geom.Polygon:
			fillPolygon(dst, ob.Points, col)
		}
		if g.debug {
			b := o.Bounds()
			vector.StrokeRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Width()), float32(b.Height()), 1, outlineColor, false)
		}
	}
}

func fillPolygon(dst *ebiten.Image, pts []geom.Vec2, col color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(col)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)
}

func (g *Game) drawAgents(dst *ebiten.Image) {
	for _, a := range g.match.Agents() {
		if ws := a.WeaponState(); ws == game.WeaponFlying || ws == game.WeaponGrounded {
			wp, wd := a.Weapon()
			tip := wp.Add(wd.Scale(8))
			vector.StrokeLine(dst, float32(wp.X), float32(wp.Y), float32(tip.X), float32(tip.Y), 3, weaponColor, true)
		}
	}

	for _, a := range g.match.Agents() {
		p := a.Pos()
		x, y, r := float32(p.X), float32(p.Y), float32(a.Radius())
		col := palette.Team(a.Team())
		if !a.Alive() {
			vector.StrokeCircle(dst, x, y, r, 2, fade(col, 0.4), true)
			continue
		}
		vector.FillCircle(dst, x, y, r, col, true)

		tip := p.Add(geom.FromAngle(a.Heading()).Scale(a.Radius() * headingLen))
		swing := float32(1.5)
		if a.SwingTimer() > 0 {
			swing = 4
		}
		vector.StrokeLine(dst, x, y, float32(tip.X), float32(tip.Y), swing, color.White, true)

		bx, by := x-hpBarWidth/2, y-r-8
		vector.FillRect(dst, bx, by, hpBarWidth, hpBarHeight, hpBackColor, false)
		vector.FillRect(dst, bx, by, float32(hpBarWidth*a.HPFraction()), hpBarHeight, col, false)

		if !g.debug {
			continue
		}
		if t := a.Target(); t != nil {
			tp := t.Pos()
			vector.StrokeLine(dst, x, y, float32(tp.X), float32(tp.Y), 1, targetColor, false)
		}
		if a.Escaping() || a.StuckTimer() > 0 {
			vector.StrokeCircle(dst, x, y, r+4, 2, stuckColor, false)
		}
	}
}

// drawLabels prints names in screen space so the debug font stays legible.
func (g *Game) drawLabels(screen *ebiten.Image) {
	for _, a := range g.match.Agents() {
		if !a.Alive() {
			continue
		}
		p := a.Pos()
		sx := borderWidth + int(p.X*g.scale) - len(a.Name())*3
		sy := borderWidth + int((p.Y+a.Radius())*g.scale) + 2
		ebitenutil.DebugPrintAt(screen, a.Name(), sx, sy)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	speed := fmt.Sprintf("%gx", g.simSpeed)
	if g.simSpeed == 0 {
		speed = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("T=%d seed=%d %s", g.match.Tick(), g.seed, speed),
	}
	for k := range g.cfg.Teams {
		t := game.Team(k)
		lines = append(lines, fmt.Sprintf("%s: %d alive", g.match.Title(t), g.match.AliveCount(t)))
	}
	lines = append(lines, "SPACE pause  ,/. speed  D debug  R restart  C copy")
	if g.status != "" {
		lines = append(lines, g.status)
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, borderWidth+6, borderWidth+4+i*14)
	}

	if w, ok := g.match.Winner(); ok && g.match.Over() {
		msg := fmt.Sprintf("%s WINS", g.match.Title(w))
		ebitenutil.DebugPrintAt(screen, msg, borderWidth+g.gameWidth/2-len(msg)*3, borderWidth+g.gameHeight/2)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
