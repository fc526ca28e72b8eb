package processor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/command"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/rs/zerolog"
)

// ErrUnhandledCommand is returned for a command type without a handler.
var ErrUnhandledCommand = errors.New("unhandled command type")

// ActionProcessor applies validated commands to game snapshots
type ActionProcessor struct {
	logger zerolog.Logger
	rng    common.Rand
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(logger zerolog.Logger, rng common.Rand) *ActionProcessor {
	return &ActionProcessor{
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
		rng:    rng,
	}
}

// Execute applies cmd for playerID followed by the action's post-effect
// steps. It works on a copy: on error g is left untouched and returned as is.
func (ap *ActionProcessor) Execute(g *core.Game, cmd command.Command, playerID string) (*core.Game, error) {
	next := g.Clone()

	ap.logger.Debug().
		Str("game_id", g.ID).
		Str("player_id", playerID).
		Str("action", cmd.Action().String()).
		Msg("Applying action")

	if err := ap.apply(next, cmd, playerID); err != nil {
		return g, err
	}
	for _, step := range StepsFor(cmd.Action()) {
		step(next, cmd)
	}
	return next, nil
}

// apply runs the primary handler of cmd without any post-effect.
func (ap *ActionProcessor) apply(g *core.Game, cmd command.Command, playerID string) error {
	switch c := cmd.(type) {
	case command.RollDice:
		return ap.rollDice(g, c)
	case command.EndTurn:
		return endTurn(g)
	case command.Points:
		return takePoints(g, c, playerID)
	case command.Sleep:
		return sleepOrWake(g, c)
	case command.Water:
		return goToOrLeaveWater(g, c)
	case command.Grapple:
		return grapple(g, c)
	case command.Boot:
		return boot(g, c)
	case command.Repeat:
		return ap.repeat(g, c, playerID)
	default:
		return fmt.Errorf("%w: %T", ErrUnhandledCommand, cmd)
	}
}

func (ap *ActionProcessor) rollDice(g *core.Game, c command.RollDice) error {
	for _, idx := range c.Dices {
		if g.Dices[idx].Rolls >= core.MaxRolls {
			return core.IllegalMove("roll dice action invalid, a dice has already been rolled twice")
		}
	}
	for _, idx := range c.Dices {
		if g.Dices[idx].Played {
			return core.IllegalMove("roll dice action invalid, a dice has already been played")
		}
	}

	for i := range g.Dices {
		if !slices.Contains(c.Dices, i) {
			continue
		}
		g.Dices[i] = core.Dice{
			Value: core.DiceActions[ap.rng.Intn(len(core.DiceActions))],
			Rolls: g.Dices[i].Rolls + 1,
		}
	}
	g.Turn.Rolls++
	return nil
}

func endTurn(g *core.Game) error {
	for i := range g.Dices {
		g.Dices[i].Played = true
	}
	return nil
}

// takePoints moves two points from the target to the acting player. Only an
// empty balance blocks the transfer, so a target may end up negative.
func takePoints(g *core.Game, c command.Points, playerID string) error {
	if c.TargetPlayer == playerID {
		return core.IllegalMove("player %s cannot take points from themselves", playerID)
	}
	target, ok := g.Player(c.TargetPlayer)
	if !ok {
		return core.IllegalMove("player %s not found", c.TargetPlayer)
	}
	if target.Points == 0 {
		return core.IllegalMove("player %s does not have enough points", c.TargetPlayer)
	}
	actor, ok := g.Player(playerID)
	if !ok {
		return core.IllegalMove("player %s not found", playerID)
	}

	target.Points -= 2
	actor.Points += 2
	return nil
}

func sleepOrWake(g *core.Game, c command.Sleep) error {
	tile := &g.Path[c.TargetTile]
	if !tile.HasToken(c.TargetTokenIndex) {
		return core.IllegalMove("invalid options for sleep action")
	}
	tile.Tokens[c.TargetTokenIndex].Awake = !tile.Tokens[c.TargetTokenIndex].Awake
	return nil
}

// goToOrLeaveWater jumps a token from land to the next water tile with room,
// or from water to the next tile with room.
func goToOrLeaveWater(g *core.Game, c command.Water) error {
	tile := &g.Path[c.TargetTile]
	if !tile.HasToken(c.TargetTokenIndex) || !tile.Tokens[c.TargetTokenIndex].Awake {
		return core.IllegalMove("invalid water action")
	}

	var dest int
	if tile.IsWater() {
		dest = g.Path.NextAvailableTile(c.TargetTile + 1)
	} else {
		dest = g.Path.NextWaterTile(c.TargetTile)
	}
	if dest == -1 {
		return core.IllegalMove("invalid water action")
	}

	g.Path.MoveToken(c.TargetTile, c.TargetTokenIndex, dest)
	return nil
}

// grapple pulls a token to the next occupied tile ahead, or past it when that
// tile is full.
func grapple(g *core.Game, c command.Grapple) error {
	tile := &g.Path[c.TargetTile]
	if !tile.HasToken(c.TargetTokenIndex) || !tile.Tokens[c.TargetTokenIndex].Awake {
		return core.IllegalMove("invalid grapple action")
	}

	dest := g.Path.NextOccupiedTile(c.TargetTile + 1)
	if dest != -1 && g.Path[dest].IsFull() {
		dest = g.Path.NextAvailableTile(dest + 1)
	}
	if dest == -1 {
		return core.IllegalMove("invalid grapple action")
	}

	g.Path.MoveToken(c.TargetTile, c.TargetTokenIndex, dest)
	return nil
}

// boot spreads the listed tokens over successive tiles with room ahead of the
// source. A token reaching the finish keeps the search on the finish for the next one.
func boot(g *core.Game, c command.Boot) error {
	source := &g.Path[c.TargetTile]
	if source.IsWater() {
		return core.IllegalMove("invalid boot action")
	}

	seen := make(map[int]bool, len(c.TokenIndexList))
	for _, idx := range c.TokenIndexList {
		if seen[idx] || !source.HasToken(idx) || !source.Tokens[idx].Awake {
			return core.IllegalMove("invalid boot action")
		}
		seen[idx] = true
	}

	ptr := c.TargetTile
	for _, idx := range c.TokenIndexList {
		ptr = g.Path.NextAvailableTile(ptr + 1)
		if ptr == -1 {
			return core.IllegalMove("invalid boot action")
		}
		g.Path.AddToken(ptr, source.Tokens[idx])
		if ptr == core.LastTile {
			ptr = core.LastTile - 1
		}
	}

	g.Path.RemoveTokens(c.TargetTile, c.TokenIndexList...)
	return nil
}

// repeat plays the target action's handler again. Bookkeeping for the repeat
// die is left to the repeat steps.
func (ap *ActionProcessor) repeat(g *core.Game, c command.Repeat, playerID string) error {
	if !core.ShowsAction(c.TargetAction, g.Dices) || core.ActionPlayedCount(c.TargetAction, g.Dices) >= core.MaxActionPlays {
		return core.IllegalMove("%s has already been played twice, cannot be repeated", c.TargetAction)
	}
	return ap.apply(g, c.Target, playerID)
}
