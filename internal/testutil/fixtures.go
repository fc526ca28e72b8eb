package testutil

import (
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// Fixture path layout. Water sits on tiles 6, 9 and 12.
var fixtureCoords = [core.PathLength]core.Coordinate{
	{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1},
	{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 1}, {X: 3, Y: 0},
	{X: 4, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}, {X: 6, Y: 2},
	{X: 7, Y: 2}, {X: 8, Y: 2},
}

var fixtureValues = [core.CoreTiles]int{2, 2, 3, 3, 4, 4, 5, 5, 6, 6}

// Water tile indexes of FixturePath.
const (
	FirstWaterTile  = 6
	SecondWaterTile = 9
	ThirdWaterTile  = 12
)

// FixturePath returns a fixed, token free path.
func FixturePath() core.Path {
	var path core.Path
	for i, c := range fixtureCoords {
		switch {
		case i < core.FirstCoreTile:
			path[i] = core.NewTile(c.X, c.Y, 0, core.TileStart)
		case i <= core.LastCoreTile:
			tileType := core.TileGround
			if i == FirstWaterTile || i == SecondWaterTile || i == ThirdWaterTile {
				tileType = core.TileWater
			}
			path[i] = core.NewTile(c.X, c.Y, fixtureValues[i-core.FirstCoreTile], tileType)
		default:
			path[i] = core.NewTile(c.X, c.Y, 0, core.TileFinish)
		}
	}
	path[core.LastTile-1].Length = 0
	return path
}

// NewTestGame returns a started game seating playerIDs in order, every player
// connected with start tokens placed and the first player to move.
func NewTestGame(playerIDs ...string) *core.Game {
	g := &core.Game{
		ID:        "test-game",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Path:      FixturePath(),
		Colors:    append([]core.Color{}, core.AllColors...),
		Status:    core.StatusStarted,
	}
	g.GridSize = g.Path.GridSize()

	for _, id := range playerIDs {
		color := g.Colors[0]
		g.Colors = g.Colors[1:]
		g.Players = append(g.Players, core.Player{
			ID:        id,
			Points:    core.StartingPoints,
			Color:     color,
			Connected: true,
		})
		g.Path.PlaceStartTokens(color, id)
	}

	first := ""
	if len(playerIDs) > 0 {
		first = playerIDs[0]
	}
	g.Turn = core.NewTurn(first)
	return g
}

// SetDice gives the dice the listed faces, each rolled once and unplayed.
// Dice past the listed values stay unrolled.
func SetDice(g *core.Game, values ...core.Action) {
	g.ResetDices()
	for i, v := range values {
		g.Dices[i] = core.Dice{Value: v, Rolls: 1}
	}
}

// Token returns an awake token.
func Token(color core.Color, playerID string) core.Token {
	return core.Token{Color: color, PlayerID: playerID, Awake: true}
}

// ClearPath removes every token from the path.
func ClearPath(g *core.Game) {
	for i := range g.Path {
		g.Path[i].Tokens = []core.Token{}
	}
}
