package rules

import (
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles end of turn, game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckEndOfTurn reports whether the active player has nothing left to play:
// every die is played, or no unplayed die shows an action still under its cap.
// Unrolled dice never count as playable.
func (wc *WinConditionChecker) CheckEndOfTurn(g *core.Game) bool {
	played := 0
	playable := 0
	for _, d := range g.Dices {
		if d.Played {
			played++
			continue
		}
		if d.Value.IsDiceAction() && g.Turn.Actions[d.Value] < core.MaxActionPlays {
			playable++
		}
	}

	ended := played == core.DiceCount || playable == 0
	wc.logger.Debug().
		Str("game_id", g.ID).
		Int("played_dices", played).
		Int("playable_dices", playable).
		Bool("end_of_turn", ended).
		Msg("End of turn check complete")
	return ended
}

// CheckGameOver determines if the race is over.
// With more than two players the finish tile must be full. With two or fewer,
// one player must have brought all four tokens home.
func (wc *WinConditionChecker) CheckGameOver(g *core.Game) bool {
	finish := g.Path.Finish()
	if finish.IsEmpty() {
		return false
	}

	if len(g.Players) > 2 {
		return len(finish.Tokens) == core.FinishMaxTokens
	}

	perPlayer := make(map[string]int, len(g.Players))
	best := 0
	for _, tok := range finish.Tokens {
		perPlayer[tok.PlayerID]++
		best = max(best, perPlayer[tok.PlayerID])
	}
	return best == core.MaxTokens
}

// Winner picks the player with the highest points plus path points.
// Ties keep the player that joined first. PathPoints must be current.
func (wc *WinConditionChecker) Winner(g *core.Game) core.Winner {
	if len(g.Players) == 0 {
		return core.Winner{}
	}

	winner := core.Winner{PlayerID: g.Players[0].ID, Points: g.Players[0].Total()}
	for _, p := range g.Players[1:] {
		if p.Total() > winner.Points {
			winner = core.Winner{PlayerID: p.ID, Points: p.Total()}
		}
	}

	wc.logger.Info().
		Str("game_id", g.ID).
		Str("winner_player_id", winner.PlayerID).
		Int("points", winner.Points).
		Msg("Winner determined")
	return winner
}
