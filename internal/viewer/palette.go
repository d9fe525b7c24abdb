package viewer

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/Garsondee/arena-league/internal/game"
	"github.com/Garsondee/arena-league/internal/geom"
	"github.com/Garsondee/arena-league/internal/palette"
)

var (
	groundColor   = color.RGBA{R: 38, G: 36, B: 34, A: 255}
	frameColor    = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	obstacleColor = colornames.Dimgray
	outlineColor  = colornames.Yellow
	hpBackColor   = color.RGBA{R: 60, G: 10, B: 10, A: 220}
	weaponColor   = colornames.Silver
	targetColor   = color.RGBA{R: 255, G: 255, B: 255, A: 70}
	stuckColor    = colornames.Magenta
)

func effectColor(e game.Effect) color.RGBA {
	switch e.Kind {
	case game.EffectImpact:
		return colornames.Burlywood
	case game.EffectHit, game.EffectMelee:
		return colornames.Red
	default:
		return palette.Team(e.Team)
	}
}

func kindColor(k geom.Kind) color.RGBA {
	switch k {
	case geom.KindCircle:
		return colornames.Slategray
	case geom.KindPolygon:
		return colornames.Darkslategray
	default:
		return obstacleColor
	}
}
