package rules

import (
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability(t *testing.T) {
	t.Run("end turn always available", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		g.Turn.Rolls = core.MaxRolls
		assert.NoError(t, CheckAvailability(core.ActionEndTurn, g))
	})

	t.Run("third roll rejected", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		g.Turn.Rolls = 1
		assert.NoError(t, CheckAvailability(core.ActionRollDice, g))

		g.Turn.Rolls = 2
		err := CheckAvailability(core.ActionRollDice, g)
		require.Error(t, err)
		assert.Equal(t, "dices cannot be rolled more than two times", err.Error())
		assert.ErrorIs(t, err, core.ErrUnavailable)
	})

	t.Run("needs an unplayed die", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		testutil.SetDice(g, core.ActionSleep, core.ActionWater)
		assert.NoError(t, CheckAvailability(core.ActionSleep, g))

		err := CheckAvailability(core.ActionBoot, g)
		require.Error(t, err)
		assert.Equal(t, "boot action is not available", err.Error())

		g.Dices[0].Played = true
		assert.Error(t, CheckAvailability(core.ActionSleep, g))
	})

	t.Run("repeat counts toward the cap", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		testutil.SetDice(g, core.ActionWater, core.ActionRepeat, core.ActionWater)
		g.Dices[0].Played = true
		g.Dices[1].Played = true
		g.Dices[1].RepeatValue = core.ActionWater

		err := CheckAvailability(core.ActionWater, g)
		require.Error(t, err)
		assert.Equal(t, "water action has already been played twice", err.Error())
	})
}

func TestCheckTurn(t *testing.T) {
	g := testutil.NewTestGame("p1", "p2")
	assert.NoError(t, CheckTurn(g, "p1"))

	err := CheckTurn(g, "p2")
	require.Error(t, err)
	assert.Equal(t, "invalid turn", err.Error())
	assert.ErrorIs(t, err, core.ErrNotYourTurn)
}

func TestAvailableActions(t *testing.T) {
	lmc := NewLegalMoveCalculator()
	g := testutil.NewTestGame("p1", "p2")

	assert.Equal(t, []core.Action{core.ActionEndTurn, core.ActionRollDice}, lmc.AvailableActions(g, "p1"))
	assert.Empty(t, lmc.AvailableActions(g, "p2"))

	testutil.SetDice(g, core.ActionPoints, core.ActionBoot)
	g.Turn.Rolls = 2
	assert.Equal(t, []core.Action{core.ActionEndTurn, core.ActionPoints, core.ActionBoot}, lmc.AvailableActions(g, "p1"))
}

func TestCheckEndOfTurn(t *testing.T) {
	wc := NewWinConditionChecker(testutil.NopLogger())

	tests := []struct {
		name   string
		setup  func(g *core.Game)
		expect bool
	}{
		{
			name:   "unrolled dice are not playable",
			setup:  func(g *core.Game) {},
			expect: true,
		},
		{
			name: "unplayed die under cap",
			setup: func(g *core.Game) {
				testutil.SetDice(g, core.ActionSleep, core.ActionWater)
				g.Dices[0].Played = true
			},
			expect: false,
		},
		{
			name: "all dice played",
			setup: func(g *core.Game) {
				testutil.SetDice(g, core.ActionSleep, core.ActionWater, core.ActionBoot, core.ActionPoints)
				for i := range g.Dices {
					g.Dices[i].Played = true
				}
			},
			expect: true,
		},
		{
			name: "remaining die action capped",
			setup: func(g *core.Game) {
				testutil.SetDice(g, core.ActionSleep, core.ActionSleep, core.ActionSleep)
				g.Dices[0].Played = true
				g.Dices[1].Played = true
				g.Turn.Actions[core.ActionSleep] = 2
			},
			expect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NewTestGame("p1", "p2")
			tt.setup(g)
			assert.Equal(t, tt.expect, wc.CheckEndOfTurn(g))
		})
	}
}

func finishTokens(g *core.Game, counts map[string]int, order ...string) {
	for _, id := range order {
		p, _ := g.Player(id)
		for i := 0; i < counts[id]; i++ {
			g.Path.AddToken(core.LastTile, testutil.Token(p.Color, id))
		}
	}
}

func TestCheckGameOver(t *testing.T) {
	wc := NewWinConditionChecker(testutil.NopLogger())

	t.Run("empty finish", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		assert.False(t, wc.CheckGameOver(g))
	})

	t.Run("two players, four home ends with six in finish", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		finishTokens(g, map[string]int{"p1": 2, "p2": 4}, "p1", "p2")
		require.Len(t, g.Path.Finish().Tokens, 6)
		assert.True(t, wc.CheckGameOver(g))
	})

	t.Run("two players, three each", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		finishTokens(g, map[string]int{"p1": 3, "p2": 3}, "p1", "p2")
		assert.False(t, wc.CheckGameOver(g))
	})

	t.Run("three players need a full finish", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2", "p3")
		finishTokens(g, map[string]int{"p1": 4, "p2": 2, "p3": 1}, "p1", "p2", "p3")
		assert.False(t, wc.CheckGameOver(g), "7 tokens do not end a 3 player game")

		finishTokens(g, map[string]int{"p3": 1}, "p3")
		assert.True(t, wc.CheckGameOver(g))
	})
}

func TestWinner(t *testing.T) {
	wc := NewWinConditionChecker(testutil.NopLogger())

	tests := []struct {
		name     string
		totals   []int
		expected string
		points   int
	}{
		{"single max", []int{10, 10, 12}, "p3", 12},
		{"tie keeps first seen", []int{10, 12, 12}, "p2", 12},
		{"all equal", []int{7, 7, 7}, "p1", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NewTestGame("p1", "p2", "p3")
			for i, total := range tt.totals {
				g.Players[i].Points = total
			}
			w := wc.Winner(g)
			assert.Equal(t, tt.expected, w.PlayerID)
			assert.Equal(t, tt.points, w.Points)
		})
	}

	t.Run("path points count", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		g.Players[1].PathPoints = 1
		assert.Equal(t, "p2", wc.Winner(g).PlayerID)
	})
}

func TestPathPoints(t *testing.T) {
	g := testutil.NewTestGame("p1", "p2")
	testutil.ClearPath(g)
	require.Equal(t, 5, g.Path[10].Value)

	red := g.Players[0].Color
	g.Path.AddToken(10, testutil.Token(red, "p1"))
	g.Path.AddToken(10, testutil.Token(red, "p1"))
	g.Path.AddToken(core.LastTile, testutil.Token(red, "p1"))

	assert.Equal(t, 2*5+13, PathPoints(&g.Path, "p1"))
	assert.Equal(t, 0, PathPoints(&g.Path, "p2"))

	t.Run("finish slots by arrival", func(t *testing.T) {
		blue := g.Players[1].Color
		g.Path.AddToken(core.LastTile, testutil.Token(blue, "p2"))
		g.Path.AddToken(core.LastTile, testutil.Token(blue, "p2"))
		assert.Equal(t, 12+11, PathPoints(&g.Path, "p2"))
	})

	t.Run("refresh", func(t *testing.T) {
		RefreshPathPoints(g)
		assert.Equal(t, 23, g.Players[0].PathPoints)
		assert.Equal(t, 23, g.Players[1].PathPoints)
	})
}

func TestFinishSlotPoints_NonIncreasing(t *testing.T) {
	for i := 1; i < len(FinishSlotPoints); i++ {
		assert.LessOrEqual(t, FinishSlotPoints[i], FinishSlotPoints[i-1])
	}
}
