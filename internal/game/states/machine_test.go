package states

import (
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/events"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    core.Status
		allowed []core.Status
	}{
		{core.StatusOpen, []core.Status{core.StatusStarted}},
		{core.StatusStarted, []core.Status{core.StatusPaused, core.StatusFinished}},
		{core.StatusPaused, []core.Status{core.StatusStarted}},
		{core.StatusFinished, []core.Status{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.allowed, AllowedTransitions(tt.from))
			for _, to := range tt.allowed {
				assert.True(t, CanTransition(tt.from, to))
			}
		})
	}

	assert.False(t, CanTransition(core.StatusPaused, core.StatusFinished))
	assert.False(t, CanTransition(core.StatusOpen, core.StatusPaused))
	assert.True(t, IsTerminal(core.StatusFinished))
	assert.False(t, IsTerminal(core.StatusPaused))
}

func TestStatus_Properties(t *testing.T) {
	assert.True(t, CanReceiveCommands(core.StatusStarted))
	assert.False(t, CanReceiveCommands(core.StatusPaused))
	assert.True(t, CanAddPlayers(core.StatusOpen))
	assert.False(t, CanAddPlayers(core.StatusStarted))
}

func TestCheckAcceptsCommands(t *testing.T) {
	tests := []struct {
		status  core.Status
		message string
	}{
		{core.StatusStarted, ""},
		{core.StatusPaused, "game test-game is paused."},
		{core.StatusOpen, "game test-game has not started."},
		{core.StatusFinished, "game test-game is finished."},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			g := testutil.NewTestGame("p1", "p2")
			g.Status = tt.status
			err := CheckAcceptsCommands(g)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.ErrorIs(t, err, core.ErrGameState)
		})
	}
}

func TestStateMachine_TransitionTo(t *testing.T) {
	bus := events.NewEventBus(zerolog.Nop())
	var published []*events.StateTransitionEvent
	bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
		published = append(published, e.(*events.StateTransitionEvent))
	})
	sm := NewStateMachine(zerolog.Nop(), bus)

	t.Run("start", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		g.Status = core.StatusOpen

		require.NoError(t, sm.TransitionTo(g, core.StatusStarted, "start requested"))
		assert.Equal(t, core.StatusStarted, g.Status)
		require.NotEmpty(t, published)
		last := published[len(published)-1]
		assert.Equal(t, core.StatusOpen, last.From)
		assert.Equal(t, core.StatusStarted, last.To)
		assert.Equal(t, "start requested", last.Reason)
	})

	t.Run("start alone", func(t *testing.T) {
		g := testutil.NewTestGame("p1")
		g.Status = core.StatusOpen
		err := sm.TransitionTo(g, core.StatusStarted, "start requested")
		assert.ErrorIs(t, err, core.ErrCannotStart)
		assert.Equal(t, core.StatusOpen, g.Status)
	})

	t.Run("start with a disconnected player", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		g.Status = core.StatusOpen
		g.Players[1].Connected = false
		assert.ErrorIs(t, sm.TransitionTo(g, core.StatusStarted, "start requested"), core.ErrCannotStart)
	})

	t.Run("resume needs everyone", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		require.NoError(t, sm.TransitionTo(g, core.StatusPaused, "player lost"))
		g.Players[0].Connected = false
		assert.Error(t, sm.TransitionTo(g, core.StatusStarted, "resumed"))
		g.Players[0].Connected = true
		assert.NoError(t, sm.TransitionTo(g, core.StatusStarted, "resumed"))
	})

	t.Run("finish needs a winner", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		assert.Error(t, sm.TransitionTo(g, core.StatusFinished, "race over"))
		g.Winner = &core.Winner{PlayerID: "p1", Points: 10}
		assert.NoError(t, sm.TransitionTo(g, core.StatusFinished, "race over"))
	})

	t.Run("illegal", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		g.Status = core.StatusFinished
		err := sm.TransitionTo(g, core.StatusStarted, "again")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid transition from finished to started")
	})
}

func TestStateMachine_NilPublisher(t *testing.T) {
	sm := NewStateMachine(zerolog.Nop(), nil)
	g := testutil.NewTestGame("p1", "p2")
	assert.NoError(t, sm.TransitionTo(g, core.StatusPaused, "player lost"))
}
