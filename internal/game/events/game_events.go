package events

import (
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// Event type constants
const (
	TypeGameCreated     = "game.created"
	TypePlayerJoined    = "player.joined"
	TypeGameStarted     = "game.started"
	TypeCommandExecuted = "command.executed"
	TypeCommandRejected = "command.rejected"
	TypeTurnEnded       = "turn.ended"
	TypeGameEnded       = "game.ended"
	TypePlayerConnected = "player.connected"
	TypePlayerLost      = "player.lost"
	TypeStateTransition = "state.transition"
)

// GameCreatedEvent is published when a lobby is opened
type GameCreatedEvent struct {
	BaseEvent
	CreatorID string
	GridSize  core.GridSize
}

// NewGameCreatedEvent creates a new GameCreatedEvent
func NewGameCreatedEvent(gameID, creatorID string, size core.GridSize) *GameCreatedEvent {
	return &GameCreatedEvent{
		BaseEvent: newBase(TypeGameCreated, gameID),
		CreatorID: creatorID,
		GridSize:  size,
	}
}

// PlayerJoinedEvent is published when a player takes a seat
type PlayerJoinedEvent struct {
	BaseEvent
	PlayerID string
	Color    core.Color
	Seat     int
}

// NewPlayerJoinedEvent creates a new PlayerJoinedEvent
func NewPlayerJoinedEvent(gameID, playerID string, color core.Color, seat int) *PlayerJoinedEvent {
	return &PlayerJoinedEvent{
		BaseEvent: newBase(TypePlayerJoined, gameID),
		PlayerID:  playerID,
		Color:     color,
		Seat:      seat,
	}
}

// GameStartedEvent is published when the race begins
type GameStartedEvent struct {
	BaseEvent
	NumPlayers  int
	FillerSeats int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, numPlayers, fillerSeats int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, gameID),
		NumPlayers:  numPlayers,
		FillerSeats: fillerSeats,
	}
}

// CommandExecutedEvent is published after a command changed the game
type CommandExecutedEvent struct {
	BaseEvent
	PlayerID string
	Action   core.Action
}

// NewCommandExecutedEvent creates a new CommandExecutedEvent
func NewCommandExecutedEvent(gameID, playerID string, action core.Action) *CommandExecutedEvent {
	return &CommandExecutedEvent{
		BaseEvent: newBase(TypeCommandExecuted, gameID),
		PlayerID:  playerID,
		Action:    action,
	}
}

// CommandRejectedEvent is published when a command fails validation or execution
type CommandRejectedEvent struct {
	BaseEvent
	PlayerID string
	Action   core.Action
	Kind     string
	Reason   string
}

// NewCommandRejectedEvent creates a new CommandRejectedEvent
func NewCommandRejectedEvent(gameID, playerID string, action core.Action, kind, reason string) *CommandRejectedEvent {
	return &CommandRejectedEvent{
		BaseEvent: newBase(TypeCommandRejected, gameID),
		PlayerID:  playerID,
		Action:    action,
		Kind:      kind,
		Reason:    reason,
	}
}

// TurnEndedEvent is published when the turn passes to the next player
type TurnEndedEvent struct {
	BaseEvent
	PlayerID     string
	NextPlayerID string
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID, playerID, nextPlayerID string) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:    newBase(TypeTurnEnded, gameID),
		PlayerID:     playerID,
		NextPlayerID: nextPlayerID,
	}
}

// GameEndedEvent is published when a game finishes
type GameEndedEvent struct {
	BaseEvent
	WinnerID string
	Points   int
	Duration time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Winner, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		WinnerID:  winner.PlayerID,
		Points:    winner.Points,
		Duration:  duration,
	}
}

// PlayerConnectedEvent is published when a player's socket attaches
type PlayerConnectedEvent struct {
	BaseEvent
	PlayerID string
	Resumed  bool
}

// NewPlayerConnectedEvent creates a new PlayerConnectedEvent
func NewPlayerConnectedEvent(gameID, playerID string, resumed bool) *PlayerConnectedEvent {
	return &PlayerConnectedEvent{
		BaseEvent: newBase(TypePlayerConnected, gameID),
		PlayerID:  playerID,
		Resumed:   resumed,
	}
}

// PlayerLostEvent is published when a player's socket goes away
type PlayerLostEvent struct {
	BaseEvent
	PlayerID  string
	GameEmpty bool
}

// NewPlayerLostEvent creates a new PlayerLostEvent
func NewPlayerLostEvent(gameID, playerID string, gameEmpty bool) *PlayerLostEvent {
	return &PlayerLostEvent{
		BaseEvent: newBase(TypePlayerLost, gameID),
		PlayerID:  playerID,
		GameEmpty: gameEmpty,
	}
}

// StateTransitionEvent is published when a game changes status
type StateTransitionEvent struct {
	BaseEvent
	From   core.Status
	To     core.Status
	Reason string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID string, from, to core.Status, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}
