package states

import "github.com/mitchelldurbincs/kingdomrun/internal/game/core"

// AllowedTransitions returns the statuses a game in status s may move to.
// An open game that loses every player is removed rather than transitioned.
func AllowedTransitions(s core.Status) []core.Status {
	switch s {
	case core.StatusOpen:
		return []core.Status{core.StatusStarted}
	case core.StatusStarted:
		return []core.Status{core.StatusPaused, core.StatusFinished}
	case core.StatusPaused:
		return []core.Status{core.StatusStarted}
	default:
		return []core.Status{}
	}
}

// CanTransition checks if a transition between the two statuses is allowed
func CanTransition(from, to core.Status) bool {
	for _, s := range AllowedTransitions(from) {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition leaves s
func IsTerminal(s core.Status) bool {
	return len(AllowedTransitions(s)) == 0
}

// CanReceiveCommands returns true if players may act in status s
func CanReceiveCommands(s core.Status) bool {
	return s == core.StatusStarted
}

// CanAddPlayers returns true if players can join in status s
func CanAddPlayers(s core.Status) bool {
	return s == core.StatusOpen
}

// CheckAcceptsCommands rejects commands sent to a game that is not running.
func CheckAcceptsCommands(g *core.Game) error {
	switch g.Status {
	case core.StatusStarted:
		return nil
	case core.StatusPaused:
		return core.NewCommandError(core.KindState, "game %s is paused.", g.ID)
	case core.StatusOpen:
		return core.NewCommandError(core.KindState, "game %s has not started.", g.ID)
	case core.StatusFinished:
		return core.NewCommandError(core.KindState, "game %s is finished.", g.ID)
	default:
		return core.NewCommandError(core.KindState, "game %s has unknown status %s.", g.ID, g.Status)
	}
}
