// Package store persists game snapshots keyed by game id.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// ErrNotFound is returned when no snapshot exists for an id.
var ErrNotFound = errors.New("game not found")

// Summary describes a stored game without decoding its snapshot.
type Summary struct {
	ID        string
	Status    core.Status
	UpdatedAt time.Time
}

// Store is the persistence collaborator of the lobby. Implementations must be
// safe for concurrent use; callers serialize writes per game.
type Store interface {
	// Load returns the snapshot of id or ErrNotFound.
	Load(ctx context.Context, id string) (*core.Game, error)
	// Save inserts or replaces the snapshot of g.ID.
	Save(ctx context.Context, g *core.Game) error
	// Remove deletes id. Removing a missing game is not an error.
	Remove(ctx context.Context, id string) error
	// List returns every stored game ordered by id.
	List(ctx context.Context) ([]Summary, error)
	Close() error
}
