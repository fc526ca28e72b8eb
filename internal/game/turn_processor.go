package game

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/command"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/events"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/rules"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/states"
	"github.com/rs/zerolog"
)

// HandleCommand validates and applies a raw command sent by playerID.
//
// A rejected command leaves g authoritative: the outcome carries g unchanged
// and a direct message for the sender, and the returned error is the
// rejection. An accepted command yields the new snapshot and a broadcast
// carrying its client projection.
func (e *Engine) HandleCommand(g *core.Game, playerID string, raw []byte) (Outcome, error) {
	cmdLogger := e.logger.With().
		Str("game_id", g.ID).
		Str("player_id", playerID).
		Logger()

	env, err := e.validate(g, playerID, raw)
	if err != nil {
		return e.reject(cmdLogger, g, playerID, env.Action, err)
	}
	cmd, err := env.Parse()
	if err != nil {
		return e.reject(cmdLogger, g, playerID, env.Action, err)
	}
	if err := rules.CheckTurn(g, playerID); err != nil {
		return e.reject(cmdLogger, g, playerID, env.Action, err)
	}

	next, err := e.processor.Execute(g, cmd, playerID)
	if err != nil {
		return e.reject(cmdLogger, g, playerID, env.Action, err)
	}
	action := cmd.Action()
	e.publisher.Publish(events.NewCommandExecutedEvent(next.ID, playerID, action))

	e.processEndOfTurnPhase(cmdLogger, next, action)
	rules.RefreshPathPoints(next)

	text := fmt.Sprintf("player %s played %s", playerID, action)
	if finished, err := e.processEndOfGamePhase(cmdLogger, next); err != nil {
		return e.reject(cmdLogger, g, playerID, action, err)
	} else if finished {
		text = fmt.Sprintf("%s\n%s won with %d", text, next.Winner.PlayerID, next.Winner.Points)
	}

	cmdLogger.Debug().
		Str("action", action.String()).
		Str("turn_player_id", next.Turn.PlayerID).
		Msg("Command applied")

	return Outcome{Game: next, Messages: []Message{broadcast(text, next)}}, nil
}

// validate runs the checks that need nothing but the action name, in order:
// game status, action name, then availability.
func (e *Engine) validate(g *core.Game, playerID string, raw []byte) (command.Envelope, error) {
	if err := states.CheckAcceptsCommands(g); err != nil {
		return command.Envelope{}, err
	}
	env, err := command.Decode(raw)
	if err != nil {
		return command.Envelope{}, err
	}
	if err := rules.CheckAvailability(env.Action, g); err != nil {
		return env, err
	}
	return env, nil
}

// processEndOfTurnPhase passes the turn on when the active player is done.
// A roll never ends the turn; endTurn always does.
func (e *Engine) processEndOfTurnPhase(logger zerolog.Logger, g *core.Game, action core.Action) {
	if action == core.ActionRollDice {
		return
	}
	if action != core.ActionEndTurn && !e.winCondition.CheckEndOfTurn(g) {
		return
	}

	current := g.Turn.PlayerID
	nextPlayer := nextPlayerID(g)
	g.Turn = core.NewTurn(nextPlayer)
	g.ResetDices()

	e.publisher.Publish(events.NewTurnEndedEvent(g.ID, current, nextPlayer))
	logger.Debug().
		Str("next_player_id", nextPlayer).
		Msg("Turn passed")
}

// processEndOfGamePhase finishes the game and picks the winner once the race
// is over. PathPoints must be current.
func (e *Engine) processEndOfGamePhase(logger zerolog.Logger, g *core.Game) (bool, error) {
	if !e.winCondition.CheckGameOver(g) {
		return false, nil
	}

	winner := e.winCondition.Winner(g)
	g.Winner = &winner
	if err := e.stateMachine.TransitionTo(g, core.StatusFinished, "race complete"); err != nil {
		return false, err
	}

	e.publisher.Publish(events.NewGameEndedEvent(g.ID, winner, e.now().Sub(g.StartDate)))
	logger.Info().
		Str("winner_player_id", winner.PlayerID).
		Int("points", winner.Points).
		Msg("Game finished")
	return true, nil
}

// nextPlayerID returns the player after the active one in join order, wrapping.
func nextPlayerID(g *core.Game) string {
	if len(g.Players) == 0 {
		return ""
	}
	idx := g.PlayerIndex(g.Turn.PlayerID)
	return g.Players[(idx+1)%len(g.Players)].ID
}

// reject reports err to the sender only and keeps g as the authoritative snapshot.
func (e *Engine) reject(logger zerolog.Logger, g *core.Game, playerID string, action core.Action, err error) (Outcome, error) {
	kind := errorKind(err)
	e.publisher.Publish(events.NewCommandRejectedEvent(g.ID, playerID, action, kind, err.Error()))

	var cmdErr *core.CommandError
	if errors.As(err, &cmdErr) {
		logger.Debug().
			Str("action", action.String()).
			Str("kind", kind).
			Err(err).
			Msg("Command rejected")
	} else {
		logger.Error().
			Str("action", action.String()).
			Err(err).
			Msg("Command failed")
	}

	return Outcome{Game: g, Messages: []Message{direct(playerID, err.Error())}}, err
}
