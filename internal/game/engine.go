package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/events"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/mapgen"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/processor"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/rules"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/states"
	"github.com/rs/zerolog"
)

// Engine drives game snapshots through their lifecycle. It holds no per-game
// state: every operation takes a snapshot and returns a new one, leaving the
// input untouched. Callers must serialize operations on the same game.
type Engine struct {
	logger       zerolog.Logger
	rng          common.Rand
	generator    *mapgen.Generator
	processor    *processor.ActionProcessor
	legalMoves   *rules.LegalMoveCalculator
	winCondition *rules.WinConditionChecker
	stateMachine *states.StateMachine
	publisher    events.Publisher
	newID        func() string
	now          func() time.Time
}

// MessageKind tells the transport how to deliver a Message.
type MessageKind int

const (
	// Broadcast goes to every player of the game.
	Broadcast MessageKind = iota
	// Direct goes to PlayerID only.
	Direct
)

// Message is an outbound notification produced by the engine.
type Message struct {
	Kind     MessageKind
	PlayerID string
	Text     string
	// Game is the client projection of the snapshot, set on broadcasts.
	Game *core.Game
}

// Outcome is the result of an engine operation on one game.
type Outcome struct {
	Game     *core.Game
	Messages []Message
	// Remove is set when the game should be dropped from storage.
	Remove bool
}

func broadcast(text string, g *core.Game) Message {
	return Message{Kind: Broadcast, Text: text, Game: PrepareForClients(g)}
}

func direct(playerID, text string) Message {
	return Message{Kind: Direct, PlayerID: playerID, Text: text}
}

// NewGame creates an open game with a freshly generated path and seats its
// creator. It returns the game and the creator's player id.
func (e *Engine) NewGame() (*core.Game, string, error) {
	path, size, err := e.generator.GeneratePath()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate path: %w", err)
	}

	colors := append([]core.Color{}, core.AllColors...)
	e.rng.Shuffle(len(colors), func(i, j int) { colors[i], colors[j] = colors[j], colors[i] })

	g := &core.Game{
		ID:        e.newID(),
		StartDate: e.now(),
		Path:      path,
		GridSize:  size,
		Colors:    colors,
		Players:   core.Players{},
		Status:    core.StatusOpen,
		Turn:      core.NewTurn(""),
	}

	g, playerID, err := e.AddPlayer(g)
	if err != nil {
		return nil, "", err
	}

	e.publisher.Publish(events.NewGameCreatedEvent(g.ID, playerID, g.GridSize))
	e.logger.Info().
		Str("game_id", g.ID).
		Str("creator_id", playerID).
		Int("grid_w", size.W).
		Int("grid_h", size.H).
		Msg("Game created")

	return g, playerID, nil
}

// AddPlayer seats a new player with the next queued color and places one of
// their tokens on every start tile.
func (e *Engine) AddPlayer(g *core.Game) (*core.Game, string, error) {
	if !states.CanAddPlayers(g.Status) {
		return g, "", fmt.Errorf("%w: game %s is %s", core.ErrGameNotOpen, g.ID, g.Status)
	}
	if len(g.Players) >= core.MaxPlayers || len(g.Colors) == 0 {
		return g, "", fmt.Errorf("%w: game %s", core.ErrGameFull, g.ID)
	}

	next := g.Clone()
	color := next.Colors[0]
	next.Colors = next.Colors[1:]

	player := core.Player{
		ID:     e.newID(),
		Points: core.StartingPoints,
		Color:  color,
	}
	next.Players = append(next.Players, player)
	next.Path.PlaceStartTokens(color, player.ID)

	seat := len(next.Players) - 1
	e.publisher.Publish(events.NewPlayerJoinedEvent(next.ID, player.ID, color, seat))
	e.logger.Info().
		Str("game_id", next.ID).
		Str("player_id", player.ID).
		Str("color", string(color)).
		Int("seat", seat).
		Msg("Player joined")

	return next, player.ID, nil
}

// Start begins the race. Empty seats are filled with tokens owned by the
// filler player, using the next queued colors.
func (e *Engine) Start(g *core.Game) (*core.Game, error) {
	if g.Status != core.StatusOpen {
		return g, fmt.Errorf("%w: game %s is %s", core.ErrGameNotOpen, g.ID, g.Status)
	}

	next := g.Clone()
	if err := e.stateMachine.TransitionTo(next, core.StatusStarted, "lobby started"); err != nil {
		return g, err
	}

	fillers := min(core.MaxPlayers-len(next.Players), len(next.Colors))
	for i := 0; i < fillers; i++ {
		next.Path.PlaceStartTokens(next.Colors[i], core.FakePlayerID)
	}
	next.ResetDices()
	next.Turn = core.NewTurn(next.Players[0].ID)

	e.publisher.Publish(events.NewGameStartedEvent(next.ID, len(next.Players), fillers))
	e.logger.Info().
		Str("game_id", next.ID).
		Int("players", len(next.Players)).
		Int("filler_seats", fillers).
		Str("first_player_id", next.Turn.PlayerID).
		Msg("Game started")

	return next, nil
}

// PlayerConnected marks playerID connected. A paused game resumes once every
// player is back.
func (e *Engine) PlayerConnected(g *core.Game, playerID string) (Outcome, error) {
	if g.PlayerIndex(playerID) == -1 {
		return Outcome{Game: g}, fmt.Errorf("%w: %s", core.ErrPlayerNotFound, playerID)
	}

	next := g.Clone()
	p, _ := next.Player(playerID)
	p.Connected = true

	resumed := false
	if next.Status == core.StatusPaused && next.AllConnected() {
		if err := e.stateMachine.TransitionTo(next, core.StatusStarted, "all players connected"); err != nil {
			return Outcome{Game: g}, err
		}
		resumed = true
	}

	e.publisher.Publish(events.NewPlayerConnectedEvent(next.ID, playerID, resumed))

	text := fmt.Sprintf("%s connected to game", playerID)
	if resumed {
		text = fmt.Sprintf("%s game resumed", next.ID)
	}
	return Outcome{Game: next, Messages: []Message{broadcast(text, next)}}, nil
}

// PlayerLost handles a dropped connection. A running game pauses. In an open
// game the player gives up their seat, their tokens and their color. When an
// open game has no connected player left, the outcome asks for its removal.
func (e *Engine) PlayerLost(g *core.Game, playerID string) (Outcome, error) {
	idx := g.PlayerIndex(playerID)
	if idx == -1 {
		return Outcome{Game: g}, fmt.Errorf("%w: %s", core.ErrPlayerNotFound, playerID)
	}

	next := g.Clone()
	switch next.Status {
	case core.StatusStarted:
		next.Players[idx].Connected = false
		if err := e.stateMachine.TransitionTo(next, core.StatusPaused, "player lost"); err != nil {
			return Outcome{Game: g}, err
		}
	case core.StatusOpen:
		next.Colors = append(next.Colors, next.Players[idx].Color)
		next.Path.RemovePlayerTokens(playerID)
		next.Players = append(next.Players[:idx], next.Players[idx+1:]...)
	default:
		next.Players[idx].Connected = false
	}

	empty := next.Status == core.StatusOpen && !anyConnected(next)
	e.publisher.Publish(events.NewPlayerLostEvent(next.ID, playerID, empty))
	e.logger.Info().
		Str("game_id", next.ID).
		Str("player_id", playerID).
		Str("status", string(next.Status)).
		Bool("game_empty", empty).
		Msg("Player lost")

	if empty {
		return Outcome{Game: next, Remove: true}, nil
	}
	text := fmt.Sprintf("Lost player %s", playerID)
	return Outcome{Game: next, Messages: []Message{broadcast(text, next)}}, nil
}

// AvailableActions lists the actions playerID may attempt on g.
func (e *Engine) AvailableActions(g *core.Game, playerID string) []core.Action {
	if !states.CanReceiveCommands(g.Status) {
		return nil
	}
	return e.legalMoves.AvailableActions(g, playerID)
}

func anyConnected(g *core.Game) bool {
	for _, p := range g.Players {
		if p.Connected {
			return true
		}
	}
	return false
}

// errorKind names the category of a rejection for events and logs.
func errorKind(err error) string {
	var cmdErr *core.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind.String()
	}
	return "internal"
}
