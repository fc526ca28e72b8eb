package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTurn(t *testing.T) {
	turn := NewTurn("p1")
	assert.Equal(t, "p1", turn.PlayerID)
	assert.Equal(t, 0, turn.Rolls)
	require.Len(t, turn.Actions, len(DiceActions))
	for _, a := range DiceActions {
		assert.Equal(t, 0, turn.Actions[a])
	}
}

func TestGame_Clone(t *testing.T) {
	g := &Game{
		ID:      "g",
		Path:    emptyPath(),
		Colors:  []Color{ColorRed},
		Players: []Player{{ID: "p1", Points: 6}},
		Turn:    NewTurn("p1"),
		Winner:  &Winner{PlayerID: "p1", Points: 6},
	}
	g.Path[0].Tokens = []Token{{Color: ColorBlue, PlayerID: "p1", Awake: true}}

	c := g.Clone()
	c.Path[0].Tokens[0].Awake = false
	c.Path.AddToken(1, Token{Color: ColorBlue})
	c.Players[0].Points = 0
	c.Colors[0] = ColorGreen
	c.Turn.Actions[ActionBoot] = 2
	c.Winner.Points = 99
	c.Dices[0].Played = true

	assert.True(t, g.Path[0].Tokens[0].Awake)
	assert.Empty(t, g.Path[1].Tokens)
	assert.Equal(t, 6, g.Players[0].Points)
	assert.Equal(t, ColorRed, g.Colors[0])
	assert.Equal(t, 0, g.Turn.Actions[ActionBoot])
	assert.Equal(t, 6, g.Winner.Points)
	assert.False(t, g.Dices[0].Played)
}

func TestGame_Players(t *testing.T) {
	g := &Game{Players: []Player{{ID: "a", Connected: true}, {ID: "b"}}}

	p, ok := g.Player("b")
	require.True(t, ok)
	p.Points = 3
	assert.Equal(t, 3, g.Players[1].Points, "Player returns a pointer into the slice")

	_, ok = g.Player("zzz")
	assert.False(t, ok)
	assert.Equal(t, 1, g.PlayerIndex("b"))
	assert.Equal(t, -1, g.PlayerIndex("zzz"))

	assert.False(t, g.AllConnected())
	g.Players[1].Connected = true
	assert.True(t, g.AllConnected())
}

func TestActionPlayedCount(t *testing.T) {
	dices := [DiceCount]Dice{
		{Value: ActionWater, Played: true},
		{Value: ActionWater},
		{Value: ActionRepeat, Played: true, RepeatValue: ActionWater},
		{Value: ActionBoot, Played: true},
	}

	assert.Equal(t, 2, ActionPlayedCount(ActionWater, dices))
	assert.Equal(t, 1, ActionPlayedCount(ActionBoot, dices))
	assert.Equal(t, 1, ActionPlayedCount(ActionRepeat, dices))
	assert.Equal(t, 1, DiceToPlay(ActionWater, dices))
	assert.Equal(t, -1, DiceToPlay(ActionBoot, dices))
	assert.True(t, ShowsAction(ActionBoot, dices))
	assert.False(t, ShowsAction(ActionPoints, dices))
}

func TestAction_Classification(t *testing.T) {
	assert.True(t, ActionRollDice.IsKnown())
	assert.False(t, Action("fly").IsKnown())
	assert.False(t, ActionEndTurn.IsDiceAction())
	assert.True(t, ActionRepeat.IsDiceAction())
	assert.False(t, ActionRepeat.IsRepeatable())
	assert.True(t, ActionGrapple.IsRepeatable())
}
