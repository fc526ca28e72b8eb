package rules

import "github.com/mitchelldurbincs/kingdomrun/internal/game/core"

// CheckAvailability reports whether action can be played given the turn and dice state.
// endTurn is always available.
func CheckAvailability(action core.Action, g *core.Game) error {
	switch action {
	case core.ActionEndTurn:
		return nil
	case core.ActionRollDice:
		if g.Turn.Rolls >= core.MaxRolls {
			return core.NewCommandError(core.KindAvailability, "dices cannot be rolled more than two times")
		}
		return nil
	}

	if core.ActionPlayedCount(action, g.Dices) >= core.MaxActionPlays {
		return core.NewCommandError(core.KindAvailability, "%s action has already been played twice", action)
	}
	if core.DiceToPlay(action, g.Dices) == -1 {
		return core.NewCommandError(core.KindAvailability, "%s action is not available", action)
	}
	return nil
}

// CheckTurn reports whether it is playerID's turn.
func CheckTurn(g *core.Game, playerID string) error {
	if g.Turn.PlayerID != playerID {
		return core.NewCommandError(core.KindTurn, "invalid turn")
	}
	return nil
}

// LegalMoveCalculator lists the actions a player may attempt
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// AvailableActions returns the actions that pass the availability check for
// playerID, in core.AllActions order. It is empty when it is not the player's turn.
// Options are not considered: an available action may still be rejected by its handler.
func (lmc *LegalMoveCalculator) AvailableActions(g *core.Game, playerID string) []core.Action {
	if CheckTurn(g, playerID) != nil {
		return nil
	}

	var available []core.Action
	for _, action := range core.AllActions {
		if CheckAvailability(action, g) == nil {
			available = append(available, action)
		}
	}
	return available
}
