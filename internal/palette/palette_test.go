package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/arena-league/internal/game"
)

func TestTeam(t *testing.T) {
	assert.Equal(t, colornames.Limegreen, Team(0))
	assert.Equal(t, colornames.Crimson, Team(1))
	assert.Equal(t, Team(0), Team(game.Team(len(teams))), "palette wraps")
	assert.Equal(t, colornames.Gray, Team(-1))
}
