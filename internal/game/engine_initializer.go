package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/events"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/mapgen"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/processor"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/rules"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/states"
	"github.com/rs/zerolog"
)

// GameConfig holds the collaborators of an Engine. Zero values are replaced
// by defaults.
type GameConfig struct {
	Logger    zerolog.Logger
	Rng       common.Rand
	Publisher events.Publisher
	Path      mapgen.PathConfig
	// NewID generates game and player ids.
	NewID func() string
	// Now is the engine clock.
	Now func() time.Time
}

// EngineInitializer wires an engine from a GameConfig
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	return &EngineInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "GameEngine").Logger(),
	}
}

// Initialize creates the engine and its components
func (ei *EngineInitializer) Initialize() *Engine {
	ei.setupDefaults()

	engine := &Engine{
		logger:       ei.logger,
		rng:          ei.config.Rng,
		generator:    mapgen.NewGenerator(ei.config.Path, ei.config.Rng),
		processor:    processor.NewActionProcessor(ei.config.Logger, ei.config.Rng),
		legalMoves:   rules.NewLegalMoveCalculator(),
		winCondition: rules.NewWinConditionChecker(ei.config.Logger),
		stateMachine: states.NewStateMachine(ei.config.Logger, ei.config.Publisher),
		publisher:    ei.config.Publisher,
		newID:        ei.config.NewID,
		now:          ei.config.Now,
	}

	ei.logger.Debug().
		Int("path_max_attempts", ei.config.Path.MaxAttempts).
		Int("path_max_y", ei.config.Path.MaxY).
		Msg("Engine created")

	return engine
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = common.NewLockedRand(time.Now().UnixNano())
	}
	if ei.config.Publisher == nil {
		ei.config.Publisher = events.NopPublisher{}
	}
	if ei.config.Path.MaxY <= 0 {
		ei.config.Path = mapgen.DefaultPathConfig()
	}
	if ei.config.NewID == nil {
		ei.config.NewID = uuid.NewString
	}
	if ei.config.Now == nil {
		ei.config.Now = time.Now
	}
}

// NewEngine creates an engine from cfg
func NewEngine(cfg GameConfig) *Engine {
	return NewEngineInitializer(cfg).Initialize()
}

// NewSeededEngine creates an engine with a deterministic RNG that is safe
// to share between rooms.
func NewSeededEngine(logger zerolog.Logger, seed int64) *Engine {
	return NewEngine(GameConfig{
		Logger: logger,
		Rng:    common.NewLockedRand(seed),
	})
}
