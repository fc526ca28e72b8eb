// Package command holds the typed player commands, the per-action option
// schemas and the wire codec.
package command

import "github.com/mitchelldurbincs/kingdomrun/internal/game/core"

// Command is one player action with its typed options.
// The set of implementations is closed; executors switch over them exhaustively.
type Command interface {
	Action() core.Action
	options() map[string]any
}

// RollDice re-rolls the dice at the given indexes.
type RollDice struct {
	Dices []int
}

// EndTurn gives the turn away.
type EndTurn struct{}

// Points takes points from another player.
type Points struct {
	TargetPlayer string
}

// TokenTarget addresses a single token on the path.
type TokenTarget struct {
	TargetTile       int
	TargetTokenIndex int
}

// Sleep toggles a token between awake and asleep.
type Sleep struct {
	TokenTarget
}

// Water moves a token onto or off water.
type Water struct {
	TokenTarget
}

// Grapple pulls a token up to the next occupied tile.
type Grapple struct {
	TokenTarget
}

// Boot kicks tokens off a tile onto the tiles ahead.
type Boot struct {
	TargetTile     int
	TokenIndexList []int
}

// Repeat plays TargetAction again without consuming its die.
type Repeat struct {
	TargetAction core.Action
	Target       Command
}

func (RollDice) Action() core.Action { return core.ActionRollDice }
func (EndTurn) Action() core.Action  { return core.ActionEndTurn }
func (Points) Action() core.Action   { return core.ActionPoints }
func (Sleep) Action() core.Action    { return core.ActionSleep }
func (Water) Action() core.Action    { return core.ActionWater }
func (Grapple) Action() core.Action  { return core.ActionGrapple }
func (Boot) Action() core.Action     { return core.ActionBoot }
func (Repeat) Action() core.Action   { return core.ActionRepeat }

func (c RollDice) options() map[string]any { return map[string]any{"dices": c.Dices} }
func (EndTurn) options() map[string]any    { return map[string]any{} }
func (c Points) options() map[string]any   { return map[string]any{"targetPlayer": c.TargetPlayer} }
func (c TokenTarget) options() map[string]any {
	return map[string]any{"targetTile": c.TargetTile, "targetTokenIndex": c.TargetTokenIndex}
}
func (c Boot) options() map[string]any {
	return map[string]any{"targetTile": c.TargetTile, "tokenIndexList": c.TokenIndexList}
}
func (c Repeat) options() map[string]any {
	opts := map[string]any{}
	if c.Target != nil {
		opts = c.Target.options()
	}
	return map[string]any{"targetAction": c.TargetAction, "targetActionOptions": opts}
}
