package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level(event)).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameCreatedEvent:
		logEvent.
			Str("creator_id", e.CreatorID).
			Int("grid_w", e.GridSize.W).
			Int("grid_h", e.GridSize.H)

	case *events.PlayerJoinedEvent:
		logEvent.
			Str("player_id", e.PlayerID).
			Str("color", string(e.Color)).
			Int("seat", e.Seat)

	case *events.GameStartedEvent:
		logEvent.
			Int("num_players", e.NumPlayers).
			Int("filler_seats", e.FillerSeats)

	case *events.CommandExecutedEvent:
		logEvent.
			Str("player_id", e.PlayerID).
			Str("action", e.Action.String())

	case *events.CommandRejectedEvent:
		logEvent.
			Str("player_id", e.PlayerID).
			Str("action", e.Action.String()).
			Str("kind", e.Kind).
			Str("reason", e.Reason)

	case *events.TurnEndedEvent:
		logEvent.
			Str("player_id", e.PlayerID).
			Str("next_player_id", e.NextPlayerID)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.WinnerID).
			Int("points", e.Points).
			Dur("duration", e.Duration)

	case *events.PlayerConnectedEvent:
		logEvent.
			Str("player_id", e.PlayerID).
			Bool("resumed", e.Resumed)

	case *events.PlayerLostEvent:
		logEvent.
			Str("player_id", e.PlayerID).
			Bool("game_empty", e.GameEmpty)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", string(e.From)).
			Str("to", string(e.To)).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

// level logs rejections at debug unless the subscriber runs at warn or above.
func (ls *LoggerSubscriber) level(event events.Event) zerolog.Level {
	if event.Type() == events.TypeCommandRejected && ls.logLevel < zerolog.WarnLevel {
		return zerolog.DebugLevel
	}
	return ls.logLevel
}
