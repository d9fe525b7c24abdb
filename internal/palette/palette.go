// Package palette holds the team colours shared by every presentation layer.
package palette

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/Garsondee/arena-league/internal/game"
)

var teams = []color.RGBA{
	colornames.Limegreen,
	colornames.Crimson,
	colornames.Royalblue,
	colornames.Gold,
	colornames.Darkorange,
	colornames.Whitesmoke,
}

// Team returns the colour of t, cycling past the palette. Negative teams
// (system lines) are gray.
func Team(t game.Team) color.RGBA {
	if t < 0 {
		return colornames.Gray
	}
	return teams[int(t)%len(teams)]
}
