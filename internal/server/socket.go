package server

import (
	"net/http"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// handleSocket upgrades /ws?gameId=&playerId= for a seated player. Unknown
// games and players are refused before the upgrade.
func (s *Server) handleSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameId")
		playerID := r.URL.Query().Get("playerId")

		rm, err := s.rooms.room(r.Context(), gameID)
		if err != nil {
			s.lookupError(w, gameID, err)
			return
		}
		if !rm.hasPlayer(r.Context(), playerID) {
			http.Error(w, core.ErrPlayerNotFound.Error(), http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
			return
		}

		c := newClient(rm, conn, playerID, s.ws.SendBuffer)
		if err := rm.attach(r.Context(), c); err != nil {
			s.logger.Warn().
				Err(err).
				Str("game_id", gameID).
				Str("player_id", playerID).
				Msg("Could not attach player")
			conn.Close()
			return
		}

		s.logger.Info().
			Str("game_id", gameID).
			Str("player_id", playerID).
			Msg("Player connected")

		go c.writePump()
		go c.readPump(s.ws.MaxMessageSize)
	}
}
