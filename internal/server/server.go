// Package server exposes games over HTTP and WebSocket. Each game runs in
// its own room goroutine that serializes commands, persists every new
// snapshot and fans messages out to the connected players.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/mitchelldurbincs/kingdomrun/internal/config"
	"github.com/mitchelldurbincs/kingdomrun/internal/game"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/rs/zerolog"
)

// Options configures a Server
type Options struct {
	Logger        zerolog.Logger
	Engine        *game.Engine
	Store         store.Store
	AllowedOrigin string
	WS            config.WSConfig
	RoomInboxSize int
}

// Server routes the lobby API and the game sockets.
type Server struct {
	logger        zerolog.Logger
	engine        *game.Engine
	store         store.Store
	rooms         *RoomManager
	router        *way.Router
	upgrader      websocket.Upgrader
	allowedOrigin string
	ws            config.WSConfig
}

// New creates a server
func New(opts Options) *Server {
	s := &Server{
		logger:        opts.Logger.With().Str("component", "Server").Logger(),
		engine:        opts.Engine,
		store:         opts.Store,
		rooms:         NewRoomManager(opts.Engine, opts.Store, opts.Logger, opts.RoomInboxSize),
		allowedOrigin: opts.AllowedOrigin,
		ws:            opts.WS,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("POST", "/api/games", s.handleCreateGame())
	s.router.HandleFunc("PUT", "/api/games/:id", s.handleUpdateGame())
	s.router.HandleFunc("GET", "/api/games/:id", s.handleGetGame())
	s.router.HandleFunc("GET", "/ws", s.handleSocket())
}

// ServeHTTP applies CORS headers and dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.allowedOrigin != "" {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	}
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.router.ServeHTTP(w, r)
}

// Rooms returns the room registry
func (s *Server) Rooms() *RoomManager {
	return s.rooms
}

// Close stops every room and disconnects all sockets.
func (s *Server) Close() {
	s.rooms.CloseAll()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return s.allowedOrigin == "*" || origin == "" || origin == s.allowedOrigin
}
