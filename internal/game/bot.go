package game

import (
	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/command"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// Bot picks random commands among the actions currently available to a
// player. Options are drawn so that schema checks pass; the move itself may
// still be illegal, in which case the caller should fall back to EndTurn.
type Bot struct {
	engine *Engine
	rng    common.Rand
}

// NewBot creates a bot playing through engine
func NewBot(engine *Engine, rng common.Rand) *Bot {
	return &Bot{engine: engine, rng: rng}
}

// NextCommand returns a command for playerID, or EndTurn when nothing else fits.
// Unrolled dice are rolled first.
func (b *Bot) NextCommand(g *core.Game, playerID string) command.Command {
	available := b.engine.AvailableActions(g, playerID)
	if len(available) == 0 {
		return command.EndTurn{}
	}

	if !anyRolled(g) && containsAction(available, core.ActionRollDice) {
		return command.RollDice{Dices: []int{0, 1, 2, 3}}
	}

	for _, i := range b.rng.Perm(len(available)) {
		if cmd, ok := b.build(g, playerID, available[i]); ok {
			return cmd
		}
	}
	return command.EndTurn{}
}

func (b *Bot) build(g *core.Game, playerID string, action core.Action) (command.Command, bool) {
	switch action {
	case core.ActionRollDice:
		var dices []int
		for i, d := range g.Dices {
			if !d.Played && d.Rolls < core.MaxRolls {
				dices = append(dices, i)
			}
		}
		return command.RollDice{Dices: dices}, len(dices) > 0
	case core.ActionEndTurn:
		// Only chosen as a fallback.
		return nil, false
	case core.ActionPoints:
		for _, i := range b.rng.Perm(len(g.Players)) {
			p := g.Players[i]
			if p.ID != playerID && p.Points > 0 {
				return command.Points{TargetPlayer: p.ID}, true
			}
		}
		return nil, false
	case core.ActionSleep:
		target, ok := b.ownToken(g, playerID, false)
		return command.Sleep{TokenTarget: target}, ok
	case core.ActionWater:
		target, ok := b.ownToken(g, playerID, true)
		return command.Water{TokenTarget: target}, ok
	case core.ActionGrapple:
		target, ok := b.ownToken(g, playerID, true)
		return command.Grapple{TokenTarget: target}, ok
	case core.ActionBoot:
		return b.boot(g, playerID)
	case core.ActionRepeat:
		for _, i := range b.rng.Perm(len(core.DiceActions)) {
			target := core.DiceActions[i]
			if !target.IsRepeatable() || !core.ShowsAction(target, g.Dices) ||
				core.ActionPlayedCount(target, g.Dices) >= core.MaxActionPlays {
				continue
			}
			if cmd, ok := b.build(g, playerID, target); ok {
				return command.Repeat{TargetAction: target, Target: cmd}, true
			}
		}
		return nil, false
	}
	return nil, false
}

// ownToken picks a random token of playerID before the finish tile.
func (b *Bot) ownToken(g *core.Game, playerID string, awakeOnly bool) (command.TokenTarget, bool) {
	var targets []command.TokenTarget
	for tile := 0; tile <= core.LastCoreTile; tile++ {
		for idx, tok := range g.Path[tile].Tokens {
			if tok.PlayerID == playerID && (tok.Awake || !awakeOnly) {
				targets = append(targets, command.TokenTarget{TargetTile: tile, TargetTokenIndex: idx})
			}
		}
	}
	if len(targets) == 0 {
		return command.TokenTarget{}, false
	}
	return targets[b.rng.Intn(len(targets))], true
}

// boot kicks every awake token of a random land tile holding one of playerID's tokens.
func (b *Bot) boot(g *core.Game, playerID string) (command.Command, bool) {
	for _, tile := range b.rng.Perm(core.LastCoreTile + 1) {
		t := &g.Path[tile]
		if t.IsWater() || t.CountFor(playerID) == 0 {
			continue
		}
		var idxs []int
		for idx, tok := range t.Tokens {
			if tok.Awake {
				idxs = append(idxs, idx)
			}
		}
		if len(idxs) > 0 {
			return command.Boot{TargetTile: tile, TokenIndexList: idxs}, true
		}
	}
	return nil, false
}

func anyRolled(g *core.Game) bool {
	for _, d := range g.Dices {
		if d.IsRolled() {
			return true
		}
	}
	return false
}

func containsAction(actions []core.Action, action core.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
