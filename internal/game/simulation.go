package game

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/command"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// SimulationConfig configures a bot-only game
type SimulationConfig struct {
	Players     int
	MaxCommands int
	Rng         common.Rand
}

// SimulationResult summarizes a bot-only game
type SimulationResult struct {
	Game     *core.Game
	Commands int
	Rejected int
	Turns    int
}

// Simulate seats cfg.Players bots, starts the game and plays encoded commands
// through HandleCommand until the game finishes or MaxCommands is reached.
// A rejected command is answered with an EndTurn from the same bot.
func (e *Engine) Simulate(cfg SimulationConfig) (SimulationResult, error) {
	if cfg.Players < 2 || cfg.Players > core.MaxPlayers {
		return SimulationResult{}, fmt.Errorf("players must be between 2 and %d, got %d", core.MaxPlayers, cfg.Players)
	}
	if cfg.Rng == nil {
		cfg.Rng = e.rng
	}

	g, _, err := e.NewGame()
	if err != nil {
		return SimulationResult{}, err
	}
	for len(g.Players) < cfg.Players {
		if g, _, err = e.AddPlayer(g); err != nil {
			return SimulationResult{}, err
		}
	}
	for _, p := range g.Players {
		out, err := e.PlayerConnected(g, p.ID)
		if err != nil {
			return SimulationResult{}, err
		}
		g = out.Game
	}
	if g, err = e.Start(g); err != nil {
		return SimulationResult{}, err
	}

	bot := NewBot(e, cfg.Rng)
	result := SimulationResult{}
	for g.Status == core.StatusStarted && (cfg.MaxCommands <= 0 || result.Commands < cfg.MaxCommands) {
		playerID := g.Turn.PlayerID
		out, err := e.play(g, playerID, bot.NextCommand(g, playerID))
		result.Commands++
		if err != nil {
			var cmdErr *core.CommandError
			if !errors.As(err, &cmdErr) {
				return result, err
			}
			result.Rejected++
			if out, err = e.play(g, playerID, command.EndTurn{}); err != nil {
				return result, err
			}
			result.Commands++
		}
		if out.Game.Turn.PlayerID != playerID {
			result.Turns++
		}
		g = out.Game
	}

	result.Game = g
	e.logger.Info().
		Str("game_id", g.ID).
		Str("status", string(g.Status)).
		Int("commands", result.Commands).
		Int("rejected", result.Rejected).
		Int("turns", result.Turns).
		Msg("Simulation complete")
	return result, nil
}

func (e *Engine) play(g *core.Game, playerID string, cmd command.Command) (Outcome, error) {
	raw, err := command.Encode(cmd)
	if err != nil {
		return Outcome{Game: g}, err
	}
	return e.HandleCommand(g, playerID, raw)
}
