package server

import (
	"context"
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/rs/zerolog"
)

// Janitor periodically removes finished games that have not changed for
// longer than the TTL, closing their rooms first.
type Janitor struct {
	store    store.Store
	rooms    *RoomManager
	ttl      time.Duration
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewJanitor creates a new janitor
func NewJanitor(s store.Store, rooms *RoomManager, ttl, interval time.Duration, logger zerolog.Logger) *Janitor {
	return &Janitor{
		store:    s,
		rooms:    rooms,
		ttl:      ttl,
		interval: interval,
		logger:   logger.With().Str("component", "Janitor").Logger(),
		now:      time.Now,
	}
}

// Run sweeps every interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	if j.interval <= 0 {
		j.logger.Info().Msg("Game cleanup disabled")
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.safeSweep(ctx)
		}
	}
}

func (j *Janitor) safeSweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error().
				Interface("panic", r).
				Msg("Game cleanup panicked")
		}
	}()

	if _, err := j.Sweep(ctx); err != nil {
		j.logger.Error().Err(err).Msg("Game cleanup failed")
	}
}

// Sweep removes expired finished games and returns how many were removed.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	summaries, err := j.store.List(ctx)
	if err != nil {
		return 0, err
	}

	now := j.now()
	removed := 0
	for _, summary := range summaries {
		if summary.Status != core.StatusFinished || now.Sub(summary.UpdatedAt) <= j.ttl {
			continue
		}

		j.rooms.Close(summary.ID)
		if err := j.store.Remove(ctx, summary.ID); err != nil {
			return removed, err
		}
		removed++

		j.logger.Info().
			Str("game_id", summary.ID).
			Dur("age", now.Sub(summary.UpdatedAt)).
			Msg("Cleaned up finished game")
	}
	return removed, nil
}
