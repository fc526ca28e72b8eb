package game

import "github.com/mitchelldurbincs/kingdomrun/internal/game/core"

// ClientFinishSlots is the number of finish tokens shown on the finish tile
// itself. Later arrivals are displayed on the tile before it.
const ClientFinishSlots = 4

// PrepareForClients returns the projection of g sent to players. When the
// finish tile holds more than ClientFinishSlots tokens, the later arrivals are
// moved to the overflow tile in front of it. g is not modified.
func PrepareForClients(g *core.Game) *core.Game {
	view := g.Clone()
	finish := &view.Path[core.LastTile]
	if len(finish.Tokens) <= ClientFinishSlots {
		return view
	}

	overflow := &view.Path[core.LastTile-1]
	overflow.Tokens = append(overflow.Tokens, finish.Tokens[ClientFinishSlots:]...)
	finish.Tokens = finish.Tokens[:ClientFinishSlots]
	return view
}
