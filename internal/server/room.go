package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mitchelldurbincs/kingdomrun/internal/game"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/command"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/rs/zerolog"
)

var (
	// ErrRoomClosed is returned for work submitted to a room that has shut down.
	ErrRoomClosed = errors.New("room closed")
	// ErrUnknownLobbyAction is returned for a lobby action other than join or start.
	ErrUnknownLobbyAction = errors.New("unknown lobby action")
)

// Lobby actions accepted by PUT /api/games/:id
const (
	LobbyJoin  = "join"
	LobbyStart = "start"
)

// wireMessage is the JSON frame sent to sockets.
type wireMessage struct {
	Message string     `json:"message,omitempty"`
	Game    *core.Game `json:"game,omitempty"`
}

// room owns one game. Every operation on the game runs on the room's
// goroutine, one at a time, so the engine never sees two concurrent
// commands for the same snapshot. game and clients are only touched there.
type room struct {
	id      string
	logger  zerolog.Logger
	engine  *game.Engine
	store   store.Store
	inbox   chan func()
	done    chan struct{}
	once    sync.Once
	onEmpty func(*room)

	game    *core.Game
	clients map[string]*client
}

func newRoom(g *core.Game, engine *game.Engine, s store.Store, logger zerolog.Logger, inboxSize int, onEmpty func(*room)) *room {
	return &room{
		id:      g.ID,
		logger:  logger.With().Str("game_id", g.ID).Logger(),
		engine:  engine,
		store:   s,
		inbox:   make(chan func(), inboxSize),
		done:    make(chan struct{}),
		onEmpty: onEmpty,
		game:    g,
		clients: make(map[string]*client),
	}
}

func (r *room) run() {
	for {
		select {
		case <-r.done:
			for _, c := range r.clients {
				c.shut()
			}
			r.clients = nil
			r.logger.Debug().Msg("Room stopped")
			return
		case job := <-r.inbox:
			job()
		}
	}
}

func (r *room) close() {
	r.once.Do(func() { close(r.done) })
}

func (r *room) closed() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// do runs fn on the room goroutine and waits for its result.
func (r *room) do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	job := func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error().
					Interface("panic", rec).
					Msg("Recovered from panic in room")
				result <- fmt.Errorf("room %s: internal error", r.id)
			}
		}()
		if r.closed() {
			result <- ErrRoomClosed
			return
		}
		result <- fn()
	}

	select {
	case r.inbox <- job:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrRoomClosed
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrRoomClosed
	}
}

// snapshot returns the current game.
func (r *room) snapshot(ctx context.Context) (*core.Game, error) {
	var g *core.Game
	err := r.do(ctx, func() error {
		g = r.game.Clone()
		return nil
	})
	return g, err
}

func (r *room) hasPlayer(ctx context.Context, playerID string) bool {
	found := false
	_ = r.do(ctx, func() error {
		found = r.game.PlayerIndex(playerID) != -1
		return nil
	})
	return found
}

// lobby applies a join or start request. It returns the updated game and
// the id of the most recently seated player.
func (r *room) lobby(ctx context.Context, action string) (*core.Game, string, error) {
	var (
		out      *core.Game
		playerID string
	)
	err := r.do(ctx, func() error {
		var (
			next *core.Game
			err  error
		)
		switch action {
		case LobbyJoin:
			next, playerID, err = r.engine.AddPlayer(r.game)
		case LobbyStart:
			next, err = r.engine.Start(r.game)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownLobbyAction, action)
		}
		if err != nil {
			return err
		}
		if err := r.persist(ctx, next); err != nil {
			return err
		}
		if action == LobbyStart {
			r.broadcast(wireMessage{Game: game.PrepareForClients(next)})
		}
		if playerID == "" && len(next.Players) > 0 {
			playerID = next.Players[len(next.Players)-1].ID
		}
		out = next.Clone()
		return nil
	})
	return out, playerID, err
}

// attach registers c as the socket of its player, replacing an older one.
func (r *room) attach(ctx context.Context, c *client) error {
	return r.do(ctx, func() error {
		previous := r.clients[c.playerID]
		r.clients[c.playerID] = c

		outcome, err := r.engine.PlayerConnected(r.game, c.playerID)
		if err != nil {
			if previous != nil {
				r.clients[c.playerID] = previous
			} else {
				delete(r.clients, c.playerID)
			}
			return err
		}
		if previous != nil {
			previous.shut()
		}
		return r.apply(ctx, outcome)
	})
}

// detach handles a closed socket. A player whose socket was replaced stays
// connected.
func (r *room) detach(ctx context.Context, c *client) error {
	return r.do(ctx, func() error {
		switch current, ok := r.clients[c.playerID]; {
		case ok && current == c:
			delete(r.clients, c.playerID)
		case ok:
			return nil
		}
		c.shut()

		outcome, err := r.engine.PlayerLost(r.game, c.playerID)
		if err != nil {
			return err
		}
		return r.apply(ctx, outcome)
	})
}

// receive handles one inbound frame from c. Chat is relayed as is. Anything
// else is a command for the engine.
func (r *room) receive(ctx context.Context, c *client, data []byte) error {
	return r.do(ctx, func() error {
		if r.clients[c.playerID] != c {
			return nil
		}
		if text, ok := command.Chat(data); ok {
			r.broadcast(wireMessage{Message: text})
			return nil
		}

		outcome, err := r.engine.HandleCommand(r.game, c.playerID, data)
		if applyErr := r.apply(ctx, outcome); applyErr != nil {
			return applyErr
		}
		if err != nil {
			r.logger.Debug().
				Str("player_id", c.playerID).
				Err(err).
				Msg("Command rejected")
		}
		return nil
	})
}

// apply persists the outcome and delivers its messages.
func (r *room) apply(ctx context.Context, outcome game.Outcome) error {
	if outcome.Remove {
		if err := r.store.Remove(ctx, r.id); err != nil {
			return fmt.Errorf("remove game %s: %w", r.id, err)
		}
		r.logger.Info().Msg("Game removed, no player left")
		if r.onEmpty != nil {
			r.onEmpty(r)
		}
		r.close()
		return nil
	}

	if outcome.Game != nil && outcome.Game != r.game {
		if err := r.persist(ctx, outcome.Game); err != nil {
			return err
		}
	}

	for _, msg := range outcome.Messages {
		frame := wireMessage{Message: msg.Text, Game: msg.Game}
		switch msg.Kind {
		case game.Broadcast:
			r.broadcast(frame)
		case game.Direct:
			if c, ok := r.clients[msg.PlayerID]; ok {
				r.send(c, frame)
			}
		}
	}
	return nil
}

func (r *room) persist(ctx context.Context, g *core.Game) error {
	if err := r.store.Save(ctx, g); err != nil {
		r.logger.Error().Err(err).Msg("Failed to save game")
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	r.game = g
	return nil
}

func (r *room) broadcast(frame wireMessage) {
	data, err := json.Marshal(frame)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to encode broadcast")
		return
	}
	for _, c := range r.clients {
		r.deliver(c, data)
	}
}

func (r *room) send(c *client, frame wireMessage) {
	data, err := json.Marshal(frame)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to encode message")
		return
	}
	r.deliver(c, data)
}

// deliver queues data on c. A client that cannot keep up is dropped and its
// socket closed, which later reports the player as lost.
func (r *room) deliver(c *client, data []byte) {
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		r.logger.Warn().
			Str("player_id", c.playerID).
			Msg("Send buffer full, dropping client")
		delete(r.clients, c.playerID)
		c.shut()
	}
}
