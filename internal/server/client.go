package server

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// client is one player's socket inside a room.
type client struct {
	room     *room
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	logger   zerolog.Logger

	// closed is owned by the room goroutine.
	closed bool
}

func newClient(r *room, conn *websocket.Conn, playerID string, sendBuffer int) *client {
	if sendBuffer < 1 {
		sendBuffer = 1
	}
	return &client{
		room:     r,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		playerID: playerID,
		logger:   r.logger.With().Str("player_id", playerID).Logger(),
	}
}

// shut closes the send channel, which makes writePump close the socket.
// Only called from the room goroutine.
func (c *client) shut() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump forwards frames from the socket to the room until the socket fails.
func (c *client) readPump(maxMessageSize int64) {
	defer func() {
		if err := c.room.detach(context.Background(), c); err != nil && !errors.Is(err, ErrRoomClosed) {
			c.logger.Warn().Err(err).Msg("Failed to handle lost player")
		}
		c.conn.Close()
	}()

	if maxMessageSize > 0 {
		c.conn.SetReadLimit(maxMessageSize)
	}
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug().Err(err).Msg("WebSocket read error")
			}
			return
		}

		c.logger.Debug().Bytes("data", data).Msg("Data received")

		if err := c.room.receive(context.Background(), c, data); err != nil {
			if errors.Is(err, ErrRoomClosed) {
				return
			}
			c.logger.Error().Err(err).Msg("Failed to handle message")
		}
	}
}

// writePump sends queued frames and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
