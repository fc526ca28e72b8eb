package states

import (
	"fmt"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/events"
	"github.com/rs/zerolog"
)

// StateMachine applies status transitions to game snapshots. It keeps no
// per-game state, so one machine serves every game.
type StateMachine struct {
	states    map[core.Status]State
	logger    zerolog.Logger
	publisher events.Publisher
}

// NewStateMachine creates a new state machine
func NewStateMachine(logger zerolog.Logger, publisher events.Publisher) *StateMachine {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	sm := &StateMachine{
		states:    make(map[core.Status]State),
		logger:    logger.With().Str("component", "StateMachine").Logger(),
		publisher: publisher,
	}

	sm.RegisterState(NewStartedState())
	sm.RegisterState(NewPausedState())
	sm.RegisterState(NewFinishedState())

	return sm
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.states[state.Status()] = state
}

// TransitionTo moves g to target after checking the transition table and the
// target state's guard. g is left unchanged on error.
func (sm *StateMachine) TransitionTo(g *core.Game, target core.Status, reason string) error {
	from := g.Status
	if !CanTransition(from, target) {
		return fmt.Errorf("invalid transition from %s to %s", from, target)
	}

	if state, ok := sm.states[target]; ok {
		if err := state.Validate(g); err != nil {
			return fmt.Errorf("target state validation failed: %w", err)
		}
	}

	g.Status = target

	sm.publisher.Publish(events.NewStateTransitionEvent(g.ID, from, target, reason))
	sm.logger.Info().
		Str("game_id", g.ID).
		Str("from", string(from)).
		Str("to", string(target)).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}
