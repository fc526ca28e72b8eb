package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Lobby   LobbyConfig   `mapstructure:"lobby"`
	Game    GameConfig    `mapstructure:"game"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	HTTP      HTTPConfig  `mapstructure:"http"`
	WS        WSConfig    `mapstructure:"ws"`
	Admin     AdminConfig `mapstructure:"admin"`
	LogLevel  string      `mapstructure:"log_level"`
	LogFormat string      `mapstructure:"log_format"`
}

// HTTPConfig holds the lobby API listener settings
type HTTPConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	AllowedOrigin   string `mapstructure:"allowed_origin"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// WSConfig holds websocket transport settings
type WSConfig struct {
	SendBuffer     int   `mapstructure:"send_buffer"`
	MaxMessageSize int64 `mapstructure:"max_message_size"`
}

// AdminConfig holds the gRPC admin server settings
type AdminConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
}

// StorageConfig selects and configures the snapshot store
type StorageConfig struct {
	Type   string              `mapstructure:"type"`
	File   FileStorageConfig   `mapstructure:"file"`
	SQLite SQLiteStorageConfig `mapstructure:"sqlite"`
}

// FileStorageConfig holds JSON file store settings
type FileStorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// SQLiteStorageConfig holds SQLite store settings
type SQLiteStorageConfig struct {
	Path string `mapstructure:"path"`
}

// LobbyConfig holds room and cleanup settings
type LobbyConfig struct {
	CleanupInterval int `mapstructure:"cleanup_interval"`
	FinishedGameTTL int `mapstructure:"finished_game_ttl"`
	RoomInboxSize   int `mapstructure:"room_inbox_size"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Path PathConfig `mapstructure:"path"`
}

// PathConfig holds path generation settings
type PathConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
	MaxY        int `mapstructure:"max_y"`
}

// Storage types
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// CleanupEvery returns the janitor period.
func (l LobbyConfig) CleanupEvery() time.Duration {
	return time.Duration(l.CleanupInterval) * time.Second
}

// FinishedTTL returns how long a finished game is kept.
func (l LobbyConfig) FinishedTTL() time.Duration {
	return time.Duration(l.FinishedGameTTL) * time.Second
}

// Addr returns the host:port the lobby API listens on.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// Addr returns the host:port the admin server listens on.
func (a AdminConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
	mu  sync.RWMutex
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// HTTP defaults
	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 3000)
	v.SetDefault("server.http.allowed_origin", "*")
	v.SetDefault("server.http.shutdown_timeout", 10)

	// Websocket defaults
	v.SetDefault("server.ws.send_buffer", 256)
	v.SetDefault("server.ws.max_message_size", 4096)

	// Admin server defaults
	v.SetDefault("server.admin.host", "0.0.0.0")
	v.SetDefault("server.admin.port", 50051)
	v.SetDefault("server.admin.enable_reflection", true)
	v.SetDefault("server.admin.graceful_shutdown_delay", 5)

	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")

	// Storage defaults
	v.SetDefault("storage.type", StorageMemory)
	v.SetDefault("storage.file.dir", "./data/games")
	v.SetDefault("storage.sqlite.path", "./data/kingdomrun.db")

	// Lobby defaults
	v.SetDefault("lobby.cleanup_interval", 60)
	v.SetDefault("lobby.finished_game_ttl", 3600)
	v.SetDefault("lobby.room_inbox_size", 64)

	// Path generation defaults
	v.SetDefault("game.path.max_attempts", 10000)
	v.SetDefault("game.path.max_y", 5)
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()

	// Set defaults before loading any config
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/kingdomrun")
	}

	nv.SetEnvPrefix("KR")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file falls back to defaults, a broken one does not.
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	cfg, v = c, nv
	mu.Unlock()
	return nil
}

// Get returns a copy of the global config
func Get() Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()

	if c == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		return Get()
	}
	return *c
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// LoadEnvironmentConfig merges config.<env>.yaml, next to the loaded file or
// in the working directory, over the current configuration
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	vp := GetViper()
	envFile := fmt.Sprintf("config.%s.yaml", env)
	if used := vp.ConfigFileUsed(); used != "" {
		envFile = filepath.Join(filepath.Dir(used), envFile)
	}

	vp.SetConfigFile(envFile)
	if err := vp.MergeInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
		return nil
	}
	return reload(vp)
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	vp := GetViper()
	vp.Set(key, value)
	return reload(vp)
}

// WatchConfig enables hot-reloading of the config file. onChange runs after a
// reload that passed validation; an invalid file keeps the previous config.
func WatchConfig(onChange func(Config), onError func(error)) {
	vp := GetViper()
	vp.OnConfigChange(func(e fsnotify.Event) {
		if err := reload(vp); err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(Get())
		}
	})
	vp.WatchConfig()
}

func reload(vp *viper.Viper) error {
	c := &Config{}
	if err := vp.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return err
	}
	mu.Lock()
	cfg = c
	mu.Unlock()
	return nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate listeners
	if c.Server.HTTP.Port <= 0 || c.Server.HTTP.Port > 65535 {
		return fmt.Errorf("server.http.port must be between 1 and 65535")
	}
	if c.Server.HTTP.ShutdownTimeout < 0 {
		return fmt.Errorf("server.http.shutdown_timeout must be non-negative")
	}
	if c.Server.Admin.Port <= 0 || c.Server.Admin.Port > 65535 {
		return fmt.Errorf("server.admin.port must be between 1 and 65535")
	}
	if c.Server.Admin.Port == c.Server.HTTP.Port && c.Server.Admin.Host == c.Server.HTTP.Host {
		return fmt.Errorf("server.admin.port must differ from server.http.port")
	}
	if c.Server.Admin.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.admin.graceful_shutdown_delay must be non-negative")
	}

	// Validate websocket settings
	if c.Server.WS.SendBuffer <= 0 {
		return fmt.Errorf("server.ws.send_buffer must be positive")
	}
	if c.Server.WS.MaxMessageSize <= 0 {
		return fmt.Errorf("server.ws.max_message_size must be positive")
	}

	if _, err := zerolog.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("server.log_level: %w", err)
	}
	switch c.Server.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("server.log_format must be console or json")
	}

	// Validate storage
	switch c.Storage.Type {
	case StorageMemory:
	case StorageFile:
		if c.Storage.File.Dir == "" {
			return fmt.Errorf("storage.file.dir is required for file storage")
		}
	case StorageSQLite:
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required for sqlite storage")
		}
	default:
		return fmt.Errorf("storage.type must be one of memory, file, sqlite")
	}

	// Validate lobby
	if c.Lobby.CleanupInterval <= 0 {
		return fmt.Errorf("lobby.cleanup_interval must be positive")
	}
	if c.Lobby.FinishedGameTTL < 0 {
		return fmt.Errorf("lobby.finished_game_ttl must be non-negative")
	}
	if c.Lobby.RoomInboxSize <= 0 {
		return fmt.Errorf("lobby.room_inbox_size must be positive")
	}

	// Validate path generation
	if c.Game.Path.MaxAttempts < 0 {
		return fmt.Errorf("game.path.max_attempts must be non-negative")
	}
	if c.Game.Path.MaxY < 2 {
		return fmt.Errorf("game.path.max_y must be at least 2")
	}

	return nil
}
