package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

type memoryEntry struct {
	game      *core.Game
	updatedAt time.Time
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]memoryEntry
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*core.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry.game.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, g *core.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[g.ID] = memoryEntry{game: g.Clone(), updatedAt: s.now()}
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.games))
	for id, entry := range s.games {
		out = append(out, Summary{ID: id, Status: entry.game.Status, UpdatedAt: entry.updatedAt})
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
