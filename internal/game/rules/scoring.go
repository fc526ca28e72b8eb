package rules

import "github.com/mitchelldurbincs/kingdomrun/internal/game/core"

// FinishSlotPoints is the score of a token by its arrival slot in the finish tile.
var FinishSlotPoints = [core.FinishMaxTokens]int{13, 12, 11, 10, 10, 9, 8, 7}

// PathPoints scores playerID's tokens: tile value per token before the
// finish, arrival slot bonus inside it.
func PathPoints(path *core.Path, playerID string) int {
	points := 0
	for i := 0; i < core.LastTile; i++ {
		points += path[i].CountFor(playerID) * path[i].Value
	}
	for slot, tok := range path.Finish().Tokens {
		if tok.PlayerID == playerID && slot < len(FinishSlotPoints) {
			points += FinishSlotPoints[slot]
		}
	}
	return points
}

// RefreshPathPoints recomputes PathPoints for every player.
func RefreshPathPoints(g *core.Game) {
	for i := range g.Players {
		g.Players[i].PathPoints = PathPoints(&g.Path, g.Players[i].ID)
	}
}
