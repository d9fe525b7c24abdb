package viewer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/arena-league/internal/game"
	"github.com/Garsondee/arena-league/internal/palette"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 14
	feedHighlight  = 3 // newest entries drawn on a highlighted row
)

// FeedEntry is a single line in the on-screen feed.
type FeedEntry struct {
	Tick    int
	Team    game.Team
	Message string
}

// Feed is a fixed-size ring buffer of kill and status lines.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends a line, overwriting the oldest once full.
func (f *Feed) Add(tick int, team game.Team, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Team: team, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *Feed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+feedMaxEntries)%feedMaxEntries]
	}
	return out
}

// Reset empties the feed.
func (f *Feed) Reset() {
	f.head, f.count = 0, 0
}

// Text renders the feed as plain lines for the clipboard.
func (f *Feed) Text() string {
	var sb strings.Builder
	for _, e := range f.Recent() {
		fmt.Fprintf(&sb, "%5d %s\n", e.Tick, e.Message)
	}
	return sb.String()
}

// Draw renders the feed panel with its left edge at panelX.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)
	vector.FillRect(screen, px, 0, feedPanelWidth, 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "KILL FEED", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, palette.Team(e.Team), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y-1)
		y += feedLineHeight
	}
}
