package server

import (
	"context"
	"sync"

	"github.com/mitchelldurbincs/kingdomrun/internal/game"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/rs/zerolog"
)

// RoomManager keeps one running room per active game. Rooms are opened on
// demand from the store and closed when their game is removed.
type RoomManager struct {
	mu        sync.Mutex
	rooms     map[string]*room
	engine    *game.Engine
	store     store.Store
	logger    zerolog.Logger
	inboxSize int
}

// NewRoomManager creates a new room manager
func NewRoomManager(engine *game.Engine, s store.Store, logger zerolog.Logger, inboxSize int) *RoomManager {
	if inboxSize < 1 {
		inboxSize = 1
	}
	return &RoomManager{
		rooms:     make(map[string]*room),
		engine:    engine,
		store:     s,
		logger:    logger.With().Str("component", "RoomManager").Logger(),
		inboxSize: inboxSize,
	}
}

// room returns the running room of gameID, loading the game from the store
// when no room is open. It returns store.ErrNotFound for an unknown game.
func (m *RoomManager) room(ctx context.Context, gameID string) (*room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rooms[gameID]; ok {
		return r, nil
	}

	g, err := m.store.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}

	r := newRoom(g, m.engine, m.store, m.logger, m.inboxSize, m.forget)
	m.rooms[gameID] = r
	go r.run()

	m.logger.Debug().
		Str("game_id", gameID).
		Int("active_rooms", len(m.rooms)).
		Msg("Room opened")
	return r, nil
}

// forget drops r from the registry if it is still the room of its game.
func (m *RoomManager) forget(r *room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[r.id] == r {
		delete(m.rooms, r.id)
	}
}

// Close stops the room of gameID, if any, and disconnects its sockets.
func (m *RoomManager) Close(gameID string) {
	m.mu.Lock()
	r, ok := m.rooms[gameID]
	delete(m.rooms, gameID)
	m.mu.Unlock()

	if ok {
		r.close()
	}
}

// CloseAll stops every room.
func (m *RoomManager) CloseAll() {
	m.mu.Lock()
	rooms := m.rooms
	m.rooms = make(map[string]*room)
	m.mu.Unlock()

	for _, r := range rooms {
		r.close()
	}
	m.logger.Info().Int("rooms", len(rooms)).Msg("Closed all rooms")
}

// Count returns the number of open rooms.
func (m *RoomManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}
