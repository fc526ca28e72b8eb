package core

import (
	"errors"
	"fmt"
)

// Category sentinels. Every CommandError unwraps to exactly one of them.
var (
	ErrSchema      = errors.New("invalid command options")
	ErrUnavailable = errors.New("action not available")
	ErrNotYourTurn = errors.New("not the player's turn")
	ErrIllegalMove = errors.New("illegal move")
	ErrGameState   = errors.New("game does not accept commands")
)

// Lifecycle errors.
var (
	ErrGameNotOpen    = errors.New("game is not open")
	ErrGameFull       = errors.New("game is full")
	ErrCannotStart    = errors.New("game cannot be started")
	ErrPlayerNotFound = errors.New("player not found")
)

// ErrorKind classifies a rejected command.
type ErrorKind int

const (
	KindSchema ErrorKind = iota
	KindAvailability
	KindTurn
	KindSemantic
	KindState
)

func (k ErrorKind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindAvailability:
		return "availability"
	case KindTurn:
		return "turn"
	case KindSemantic:
		return "semantic"
	case KindState:
		return "state"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindSchema:
		return ErrSchema
	case KindAvailability:
		return ErrUnavailable
	case KindTurn:
		return ErrNotYourTurn
	case KindState:
		return ErrGameState
	default:
		return ErrIllegalMove
	}
}

// CommandError is a recoverable rejection reported privately to the sender.
// Message is the human readable text sent over the wire.
type CommandError struct {
	Kind    ErrorKind
	Message string
}

func (e *CommandError) Error() string { return e.Message }

func (e *CommandError) Unwrap() error { return e.Kind.sentinel() }

// NewCommandError builds a CommandError with a formatted message.
func NewCommandError(kind ErrorKind, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// SchemaError reports malformed command options for action.
func SchemaError(action Action) *CommandError {
	return NewCommandError(KindSchema, "invalid options for action %s", action)
}

// IllegalMove reports an action-specific rejection.
func IllegalMove(format string, args ...any) *CommandError {
	return NewCommandError(KindSemantic, format, args...)
}
