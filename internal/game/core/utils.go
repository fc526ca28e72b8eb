package core

// ActionPlayedCount counts how often action was consumed this turn, either by
// a played die showing it or by a repeat die resolved against it.
func ActionPlayedCount(action Action, dices [DiceCount]Dice) int {
	n := 0
	for _, d := range dices {
		if (d.Played && d.Value == action) || (d.Value == ActionRepeat && d.RepeatValue == action) {
			n++
		}
	}
	return n
}

// DiceToPlay returns the index of the first unplayed die showing action, or -1.
func DiceToPlay(action Action, dices [DiceCount]Dice) int {
	for i, d := range dices {
		if d.Value == action && !d.Played {
			return i
		}
	}
	return -1
}

// ShowsAction reports whether any die currently shows action.
func ShowsAction(action Action, dices [DiceCount]Dice) bool {
	for _, d := range dices {
		if d.Value == action {
			return true
		}
	}
	return false
}
