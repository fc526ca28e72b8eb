package game

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPath(t *testing.T) {
	g := testutil.NewTestGame("p1", "p2")
	g.Path[0].Tokens[1].Awake = false

	out := RenderPath(g, RenderOptions{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// header, grid rows, blank line, one line per tile
	require.Len(t, lines, 1+g.GridSize.H+1+core.PathLength)
	assert.NotContains(t, out, "\033[")

	// Tile 1 sits at (0,0), tile 2 at (1,0).
	assert.True(t, strings.HasPrefix(lines[1], " 0  01  02 "), lines[1])

	tileLines := lines[2+g.GridSize.H:]
	assert.Equal(t, " 0 start  0 B r", tileLines[0])
	assert.Equal(t, "10 ground 5 ·", tileLines[10])
	assert.Equal(t, " 6 water  3 ·", tileLines[6])
}

func TestRenderPath_Color(t *testing.T) {
	g := testutil.NewTestGame("p1")

	out := RenderPath(g, RenderOptions{Color: true})

	assert.Contains(t, out, common.TileColors[core.TileWater])
	assert.Contains(t, out, common.Colorize(core.ColorBlue, "B"))
}
