// Package storetest holds the behaviour every store.Store must share.
package storetest

import (
	"context"
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises s, which must start empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("load missing", func(t *testing.T) {
		_, err := s.Load(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		g.ID = "game-a"
		g.Winner = &core.Winner{PlayerID: "p1", Points: 12}
		testutil.SetDice(g, core.ActionBoot, core.ActionRepeat)
		g.Dices[1].RepeatValue = core.ActionSleep
		g.Turn.Actions[core.ActionBoot] = 1

		require.NoError(t, s.Save(ctx, g))

		loaded, err := s.Load(ctx, "game-a")
		require.NoError(t, err)
		assert.Equal(t, g, loaded)

		loaded.Players[0].Points = 99
		again, err := s.Load(ctx, "game-a")
		require.NoError(t, err)
		assert.Equal(t, core.StartingPoints, again.Players[0].Points, "loaded snapshots are independent")
	})

	t.Run("save replaces", func(t *testing.T) {
		g := testutil.NewTestGame("p1", "p2")
		g.ID = "game-b"
		require.NoError(t, s.Save(ctx, g))

		g.Status = core.StatusPaused
		g.Players[1].Connected = false
		require.NoError(t, s.Save(ctx, g))

		loaded, err := s.Load(ctx, "game-b")
		require.NoError(t, err)
		assert.Equal(t, core.StatusPaused, loaded.Status)
		assert.False(t, loaded.Players[1].Connected)
	})

	t.Run("list", func(t *testing.T) {
		summaries, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		assert.Equal(t, "game-a", summaries[0].ID)
		assert.Equal(t, core.StatusStarted, summaries[0].Status)
		assert.Equal(t, "game-b", summaries[1].ID)
		assert.Equal(t, core.StatusPaused, summaries[1].Status)
		assert.False(t, summaries[0].UpdatedAt.IsZero())
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "game-a"))
		_, err := s.Load(ctx, "game-a")
		assert.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, s.Remove(ctx, "game-a"), "removing twice is fine")

		summaries, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "game-b", summaries[0].ID)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.Load(cancelled, "game-b")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
