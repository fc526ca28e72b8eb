package processor

import (
	"github.com/mitchelldurbincs/kingdomrun/internal/game/command"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// Step is a post-effect run after a successful handler, in list order.
type Step func(g *core.Game, cmd command.Command)

var (
	defaultSteps = []Step{MarkDiceAsPlayed, IncrementAction}
	repeatSteps  = []Step{UpdateDiceRepeatValue, MarkDiceAsPlayed, IncrementAction}
)

// StepsFor returns the post-effects of action. rollDice and endTurn have none.
func StepsFor(action core.Action) []Step {
	switch action {
	case core.ActionRollDice, core.ActionEndTurn:
		return nil
	case core.ActionRepeat:
		return repeatSteps
	default:
		return defaultSteps
	}
}

// MarkDiceAsPlayed marks the first unplayed die showing the command's action.
func MarkDiceAsPlayed(g *core.Game, cmd command.Command) {
	if idx := core.DiceToPlay(cmd.Action(), g.Dices); idx != -1 {
		g.Dices[idx].Played = true
	}
}

// IncrementAction counts one more play of the command's action this turn.
func IncrementAction(g *core.Game, cmd command.Command) {
	if g.Turn.Actions == nil {
		g.Turn.Actions = make(map[core.Action]int)
	}
	g.Turn.Actions[cmd.Action()]++
}

// UpdateDiceRepeatValue records the repeated action on the first unplayed
// repeat die that has not been resolved yet.
func UpdateDiceRepeatValue(g *core.Game, cmd command.Command) {
	c, ok := cmd.(command.Repeat)
	if !ok {
		return
	}
	for i := range g.Dices {
		d := &g.Dices[i]
		if d.Value == core.ActionRepeat && !d.Played && d.RepeatValue == "" {
			d.RepeatValue = c.TargetAction
			return
		}
	}
}
