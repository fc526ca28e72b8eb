package server

import (
	"context"
	"testing"
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/game"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T) *room {
	t.Helper()
	g := testutil.NewTestGame("p1", "p2")
	r := newRoom(g, game.NewSeededEngine(testutil.NopLogger(), 1), store.NewMemoryStore(), testutil.NopLogger(), 4, nil)
	go r.run()
	t.Cleanup(r.close)
	return r
}

func TestRoom_RecoversFromPanic(t *testing.T) {
	r := newTestRoom(t)
	ctx := context.Background()

	err := r.do(ctx, func() error { panic("boom") })
	require.Error(t, err)

	g, err := r.snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test-game", g.ID)
}

func TestRoom_ClosedRejectsWork(t *testing.T) {
	r := newTestRoom(t)
	r.close()

	err := r.do(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrRoomClosed)
}

func TestRoom_RespectsContext(t *testing.T) {
	r := newTestRoom(t)
	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = r.do(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	defer close(release)
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := r.do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRoom_SnapshotIsACopy(t *testing.T) {
	r := newTestRoom(t)
	ctx := context.Background()

	g, err := r.snapshot(ctx)
	require.NoError(t, err)
	g.Players[0].Points = 99

	again, err := r.snapshot(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, 99, again.Players[0].Points)
}

func TestRoom_LobbyRejectsUnknownAction(t *testing.T) {
	r := newTestRoom(t)

	_, _, err := r.lobby(context.Background(), "dance")
	assert.ErrorIs(t, err, ErrUnknownLobbyAction)
}

func TestRoomManager(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, testutil.NewTestGame("p1", "p2")))

	m := NewRoomManager(game.NewSeededEngine(testutil.NopLogger(), 1), st, testutil.NopLogger(), 0)
	t.Cleanup(m.CloseAll)

	_, err := m.room(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	first, err := m.room(ctx, "test-game")
	require.NoError(t, err)
	second, err := m.room(ctx, "test-game")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Count())

	m.Close("test-game")
	assert.Equal(t, 0, m.Count())
	assert.ErrorIs(t, first.do(ctx, func() error { return nil }), ErrRoomClosed)
}
