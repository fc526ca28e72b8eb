package command

import (
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_ActionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		action  core.Action
		wantErr string
	}{
		{"roll", `{"action":"rollDice","dices":[0]}`, core.ActionRollDice, ""},
		{"end turn", `{"action":"endTurn"}`, core.ActionEndTurn, ""},
		{"unknown", `{"action":"fly"}`, "", "invalid action fly"},
		{"missing", `{"dices":[0]}`, "", "invalid action "},
		{"not a string", `{"action":3}`, "", "invalid action 3"},
		{"malformed", `{"action":`, "", "invalid command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.ErrorIs(t, err, core.ErrSchema)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.action, env.Action)
		})
	}
}

func parse(t *testing.T, input string) (Command, error) {
	t.Helper()
	env, err := Decode([]byte(input))
	require.NoError(t, err)
	return env.Parse()
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Command
	}{
		{"roll", `{"action":"rollDice","dices":[0,3]}`, RollDice{Dices: []int{0, 3}}},
		{"end turn ignores extras", `{"action":"endTurn","foo":1}`, EndTurn{}},
		{"points", `{"action":"points","targetPlayer":"p2"}`, Points{TargetPlayer: "p2"}},
		{"sleep", `{"action":"sleep","targetTile":13,"targetTokenIndex":3}`, Sleep{TokenTarget{13, 3}}},
		{"water", `{"action":"water","targetTile":0,"targetTokenIndex":0}`, Water{TokenTarget{0, 0}}},
		{"grapple", `{"action":"grapple","targetTile":5,"targetTokenIndex":1}`, Grapple{TokenTarget{5, 1}}},
		{"boot", `{"action":"boot","targetTile":4,"tokenIndexList":[1,0]}`, Boot{TargetTile: 4, TokenIndexList: []int{1, 0}}},
		{
			"repeat",
			`{"action":"repeat","targetAction":"sleep","targetActionOptions":{"targetTile":2,"targetTokenIndex":1}}`,
			Repeat{TargetAction: core.ActionSleep, Target: Sleep{TokenTarget{2, 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parse(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"roll without dices", `{"action":"rollDice"}`},
		{"roll empty list", `{"action":"rollDice","dices":[]}`},
		{"roll die out of range", `{"action":"rollDice","dices":[4]}`},
		{"roll negative die", `{"action":"rollDice","dices":[-1]}`},
		{"roll string die", `{"action":"rollDice","dices":["0"]}`},
		{"points numeric target", `{"action":"points","targetPlayer":1}`},
		{"sleep missing token", `{"action":"sleep","targetTile":2}`},
		{"water tile on finish", `{"action":"water","targetTile":14,"targetTokenIndex":0}`},
		{"grapple fractional tile", `{"action":"grapple","targetTile":2.5,"targetTokenIndex":0}`},
		{"grapple token out of range", `{"action":"grapple","targetTile":2,"targetTokenIndex":4}`},
		{"boot list not array", `{"action":"boot","targetTile":2,"tokenIndexList":1}`},
		{"repeat options not object", `{"action":"repeat","targetAction":"sleep","targetActionOptions":[]}`},
		{"repeat bad nested options", `{"action":"repeat","targetAction":"sleep","targetActionOptions":{"targetTile":20,"targetTokenIndex":0}}`},
		{"repeat of repeat", `{"action":"repeat","targetAction":"repeat","targetActionOptions":{}}`},
		{"repeat of end turn", `{"action":"repeat","targetAction":"endTurn","targetActionOptions":{}}`},
		{"repeat of unknown", `{"action":"repeat","targetAction":"fly","targetActionOptions":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			_, err = env.Parse()
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrSchema)
			assert.Equal(t, "invalid options for action "+string(env.Action), err.Error())
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	commands := []Command{
		RollDice{Dices: []int{1, 2}},
		EndTurn{},
		Points{TargetPlayer: "abc"},
		Grapple{TokenTarget{7, 2}},
		Boot{TargetTile: 3, TokenIndexList: []int{0, 1, 2}},
		Repeat{TargetAction: core.ActionWater, Target: Water{TokenTarget{9, 0}}},
	}

	for _, cmd := range commands {
		t.Run(string(cmd.Action()), func(t *testing.T) {
			data, err := Encode(cmd)
			require.NoError(t, err)

			decoded, err := parse(t, string(data))
			require.NoError(t, err)
			assert.Equal(t, cmd, decoded)
		})
	}
}

func TestChat(t *testing.T) {
	text, ok := Chat([]byte(`{"chat":"hello"}`))
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	_, ok = Chat([]byte(`{"action":"endTurn"}`))
	assert.False(t, ok)
	_, ok = Chat([]byte(`{"chat":1}`))
	assert.False(t, ok)
	_, ok = Chat([]byte(`nope`))
	assert.False(t, ok)
}
