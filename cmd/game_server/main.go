package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/kingdomrun/internal/config"
	"github.com/mitchelldurbincs/kingdomrun/internal/game"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/events"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/mapgen"
	"github.com/mitchelldurbincs/kingdomrun/internal/monitoring"
	"github.com/mitchelldurbincs/kingdomrun/internal/server"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The HTTP port (-1 to use config default)")
	host := flag.String("host", "", "The HTTP host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection on the admin server")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *port == -1 {
		*port = cfg.Server.HTTP.Port
	}
	if *host == "" {
		*host = cfg.Server.HTTP.Host
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if !*enableReflection {
		*enableReflection = cfg.Server.Admin.EnableReflection
	}
	cfg.Server.HTTP.Port = *port
	cfg.Server.HTTP.Host = *host

	setupLogging(*logLevel, cfg.Server.LogFormat)

	st, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("type", cfg.Storage.Type).Msg("Failed to open store")
	}
	defer st.Close()

	bus := events.NewEventBus(log.Logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.InfoLevel))

	engine := game.NewEngine(game.GameConfig{
		Logger:    log.Logger,
		Publisher: bus,
		Path: mapgen.PathConfig{
			MaxAttempts: cfg.Game.Path.MaxAttempts,
			MaxY:        cfg.Game.Path.MaxY,
		},
	})

	srv := server.New(server.Options{
		Logger:        log.Logger,
		Engine:        engine,
		Store:         st,
		AllowedOrigin: cfg.Server.HTTP.AllowedOrigin,
		WS:            cfg.Server.WS,
		RoomInboxSize: cfg.Lobby.RoomInboxSize,
	})
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTP.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	admin := server.NewAdminServer(log.Logger, *enableReflection)
	adminLis, err := net.Listen("tcp", cfg.Server.Admin.Addr())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen for admin server")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	janitor := server.NewJanitor(st, srv.Rooms(), cfg.Lobby.FinishedTTL(), cfg.Lobby.CleanupEvery(), log.Logger)
	go janitor.Run(ctx)

	monitor := monitoring.NewGoroutineMonitor(log.Logger, 30*time.Second, 10000)
	monitor.Register("rooms", srv.Rooms().Count)
	go monitor.Run(ctx)

	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(c config.Config) {
			if level, err := zerolog.ParseLevel(c.Server.LogLevel); err == nil {
				zerolog.SetGlobalLevel(level)
			}
			log.Info().Str("log_level", c.Server.LogLevel).Msg("Config reloaded")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
	}

	log.Info().
		Str("http", httpServer.Addr).
		Str("admin", adminLis.Addr().String()).
		Str("storage", cfg.Storage.Type).
		Msg("Starting Kingdom Run server")

	go func() {
		if err := admin.Serve(adminLis); err != nil {
			log.Error().Err(err).Msg("Admin server stopped")
		}
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Received shutdown signal")

	// Report NOT_SERVING and give load balancers time to notice
	admin.SetServing(false)
	time.Sleep(time.Duration(cfg.Server.Admin.GracefulShutdownDelay) * time.Second)

	shutdownCtx, stop := context.WithTimeout(context.Background(), time.Duration(cfg.Server.HTTP.ShutdownTimeout)*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown incomplete")
	}
	srv.Close()
	admin.GracefulStop()

	log.Info().Msg("Server shutdown complete")
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" || format == "json" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
