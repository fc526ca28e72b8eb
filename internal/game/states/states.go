package states

import (
	"fmt"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// State guards entry into one status
type State interface {
	// Status returns the status this state represents
	Status() core.Status

	// Validate checks that g may enter this status
	Validate(g *core.Game) error
}

type startedState struct{}

// NewStartedState creates the started state. Starting needs more than one
// player and everyone connected; resuming needs everyone connected.
func NewStartedState() State { return startedState{} }

func (startedState) Status() core.Status { return core.StatusStarted }

func (startedState) Validate(g *core.Game) error {
	if g.Status == core.StatusOpen && len(g.Players) < 2 {
		return fmt.Errorf("%w: not enough players (%d)", core.ErrCannotStart, len(g.Players))
	}
	if !g.AllConnected() {
		return fmt.Errorf("%w: not every player is connected", core.ErrCannotStart)
	}
	return nil
}

type pausedState struct{}

// NewPausedState creates the paused state
func NewPausedState() State { return pausedState{} }

func (pausedState) Status() core.Status { return core.StatusPaused }

func (pausedState) Validate(*core.Game) error { return nil }

type finishedState struct{}

// NewFinishedState creates the finished state. A finished game always has a winner.
func NewFinishedState() State { return finishedState{} }

func (finishedState) Status() core.Status { return core.StatusFinished }

func (finishedState) Validate(g *core.Game) error {
	if g.Winner == nil {
		return fmt.Errorf("finished game %s has no winner", g.ID)
	}
	return nil
}
