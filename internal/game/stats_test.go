package game

import (
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/rules"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandings(t *testing.T) {
	g := testutil.NewTestGame("p1", "p2", "p3")
	testutil.ClearPath(g)
	g.Path.AddToken(core.LastTile, testutil.Token(core.ColorGreen, "p3"))
	g.Path.AddToken(10, testutil.Token(core.ColorBlue, "p1"))
	g.Players[1].Points = 11
	rules.RefreshPathPoints(g)

	rows := Standings(g)
	require.Len(t, rows, 3)

	// p3: 6+13, p1: 6+5, p2: 11+0. p1 and p2 tie and keep join order.
	assert.Equal(t, []string{"p3", "p1", "p2"}, []string{rows[0].PlayerID, rows[1].PlayerID, rows[2].PlayerID})
	assert.Equal(t, 19, rows[0].Total)
	assert.Equal(t, 1, rows[0].FinishTokens)
	assert.Equal(t, 11, rows[1].Total)
	assert.Equal(t, 11, rows[2].Total)
	assert.True(t, rows[1].ToMove)
	assert.False(t, rows[0].ToMove)
}
