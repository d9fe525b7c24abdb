package termview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/arena-league/internal/arena"
)

func newSimRenderer(t *testing.T, w, h int) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	r, err := New(s, arena.Default(), 1)
	if err != nil {
		t.Fatal(err)
	}
	return r, s
}

func rowText(s tcell.Screen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func TestDraw_WallsAndAgents(t *testing.T) {
	r, s := newSimRenderer(t, 90, 65)
	r.Draw()

	// The crate at x 230..342, y 260..312 maps to columns 23..34, row 13..15.
	if ch, _, _, _ := s.GetContent(28, 14); ch != '█' {
		t.Fatalf("expected wall glyph inside crate, got %q", ch)
	}
	// Cartman spawns at (180,150): column 18, row 7.
	if ch, _, _, _ := s.GetContent(18, 7); ch != 'C' {
		t.Fatalf("expected Cartman at spawn cell, got %q", ch)
	}
	status := rowText(s, r.rows+feedLines, 90)
	if !strings.Contains(status, "Fat 4") || !strings.Contains(status, "Fast 4") {
		t.Fatalf("status line missing alive counts: %q", status)
	}
}

func TestHandleEvent_Keys(t *testing.T) {
	r, _ := newSimRenderer(t, 90, 65)

	if !r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) || !r.paused {
		t.Fatal("space should pause")
	}
	r.Step()
	if r.match.Tick() != 0 {
		t.Fatal("paused renderer advanced the match")
	}
	r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	r.Step()
	if r.match.Tick() != 1 {
		t.Fatalf("expected tick 1, got %d", r.match.Tick())
	}

	r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if r.seed != 2 || r.match.Tick() != 0 {
		t.Fatalf("restart: seed=%d tick=%d", r.seed, r.match.Tick())
	}

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		if r.HandleEvent(ev) {
			t.Fatalf("%v should quit", ev.Name())
		}
	}
}

func TestResize_TinyScreen(t *testing.T) {
	r, _ := newSimRenderer(t, 10, 4)
	if r.walls != nil {
		t.Fatal("no grid should fit a 4-row screen")
	}
	r.Draw()
}
