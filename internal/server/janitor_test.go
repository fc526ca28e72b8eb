package server

import (
	"context"
	"testing"
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/game"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJanitor_Sweep(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	finished := testutil.NewTestGame("p1", "p2")
	finished.ID = "finished"
	finished.Status = core.StatusFinished
	finished.Winner = &core.Winner{PlayerID: "p1", Points: 40}
	require.NoError(t, st.Save(ctx, finished))

	running := testutil.NewTestGame("p1", "p2")
	running.ID = "running"
	require.NoError(t, st.Save(ctx, running))

	rooms := NewRoomManager(game.NewSeededEngine(testutil.NopLogger(), 1), st, testutil.NopLogger(), 4)
	t.Cleanup(rooms.CloseAll)
	_, err := rooms.room(ctx, "finished")
	require.NoError(t, err)

	j := NewJanitor(st, rooms, time.Hour, time.Minute, testutil.NopLogger())

	removed, err := j.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed, "fresh games are kept")

	j.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	removed, err = j.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, rooms.Count())

	_, err = st.Load(ctx, "finished")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Load(ctx, "running")
	assert.NoError(t, err)
}

func TestJanitor_RunStopsWithContext(t *testing.T) {
	st := store.NewMemoryStore()
	rooms := NewRoomManager(game.NewSeededEngine(testutil.NopLogger(), 1), st, testutil.NopLogger(), 4)
	j := NewJanitor(st, rooms, time.Hour, 10*time.Millisecond, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
