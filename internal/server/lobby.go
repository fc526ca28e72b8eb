package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matryer/way"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
)

type lobbyRequest struct {
	Action string `json:"action"`
}

type gameResponse struct {
	Game     *core.Game `json:"game"`
	PlayerID string     `json:"playerId,omitempty"`
}

func (s *Server) handleCreateGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, playerID, err := s.engine.NewGame()
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create game")
			http.Error(w, "could not create game", http.StatusInternalServerError)
			return
		}
		if err := s.store.Save(r.Context(), g); err != nil {
			s.logger.Error().Err(err).Str("game_id", g.ID).Msg("Failed to save new game")
			http.Error(w, "could not create game", http.StatusInternalServerError)
			return
		}

		s.logger.Info().
			Str("game_id", g.ID).
			Str("player_id", playerID).
			Msg("Game created")
		s.respond(w, http.StatusOK, gameResponse{Game: g, PlayerID: playerID})
	}
}

func (s *Server) handleUpdateGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")

		var req lobbyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		rm, err := s.rooms.room(r.Context(), id)
		if err != nil {
			s.lookupError(w, id, err)
			return
		}

		g, playerID, err := rm.lobby(r.Context(), req.Action)
		switch {
		case err == nil:
		case errors.Is(err, ErrUnknownLobbyAction),
			errors.Is(err, core.ErrGameNotOpen),
			errors.Is(err, core.ErrGameFull),
			errors.Is(err, core.ErrCannotStart):
			s.logger.Debug().
				Str("game_id", id).
				Str("action", req.Action).
				Err(err).
				Msg("Lobby action refused")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			s.lookupError(w, id, err)
			return
		}

		s.respond(w, http.StatusOK, gameResponse{Game: g, PlayerID: playerID})
	}
}

func (s *Server) handleGetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")

		rm, err := s.rooms.room(r.Context(), id)
		if err != nil {
			s.lookupError(w, id, err)
			return
		}
		g, err := rm.snapshot(r.Context())
		if err != nil {
			s.lookupError(w, id, err)
			return
		}
		s.respond(w, http.StatusOK, gameResponse{Game: g})
	}
}

// lookupError maps a failed game lookup to a status code.
func (s *Server) lookupError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, ErrRoomClosed) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	s.logger.Error().Err(err).Str("game_id", id).Msg("Failed to load game")
	http.Error(w, "could not load game", http.StatusInternalServerError)
}

func (s *Server) respond(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write response")
	}
}
