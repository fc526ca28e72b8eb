package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/mitchelldurbincs/kingdomrun/internal/store/storetest"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "games"))
	require.NoError(t, err)
	storetest.Run(t, s)
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)

	g := testutil.NewTestGame("p1", "p2")
	require.NoError(t, s.Save(context.Background(), g))
	require.NoError(t, s.Save(context.Background(), g))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, g.ID+".json", entries[0].Name())
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	g := testutil.NewTestGame("p1")
	g.ID = "../escape"
	assert.Error(t, s.Save(context.Background(), g))

	_, err = s.Load(context.Background(), "../escape")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNewFileStore_RequiresDir(t *testing.T) {
	_, err := store.NewFileStore(" ")
	assert.Error(t, err)
}
