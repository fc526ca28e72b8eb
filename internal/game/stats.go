package game

import (
	"slices"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// Standing is one row of the scoreboard.
type Standing struct {
	PlayerID     string
	Color        core.Color
	Points       int
	PathPoints   int
	Total        int
	FinishTokens int
	ToMove       bool
}

// Standings ranks players by total score. Equal totals keep join order, so
// the first row of a finished game is its winner.
func Standings(g *core.Game) []Standing {
	finish := g.Path.Finish()
	rows := make([]Standing, 0, len(g.Players))
	for _, p := range g.Players {
		rows = append(rows, Standing{
			PlayerID:     p.ID,
			Color:        p.Color,
			Points:       p.Points,
			PathPoints:   p.PathPoints,
			Total:        p.Total(),
			FinishTokens: finish.CountFor(p.ID),
			ToMove:       g.Status == core.StatusStarted && g.Turn.PlayerID == p.ID,
		})
	}

	slices.SortStableFunc(rows, func(a, b Standing) int { return b.Total - a.Total })
	return rows
}
