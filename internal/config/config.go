package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Backend BackendConfig `mapstructure:"backend"`
}

// ServerConfig locates the catalog backend
type ServerConfig struct {
	URL     string        `mapstructure:"url"`     // Backend base URL
	Timeout time.Duration `mapstructure:"timeout"` // Catalog request timeout, 0 = none
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Splash   bool `mapstructure:"splash"`   // show the welcome screen until a key is pressed
	Backdrop bool `mapstructure:"backdrop"` // draw the star field behind messages
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// BackendConfig holds videoclub-server configuration
type BackendConfig struct {
	Listen    string `mapstructure:"listen"`     // listen address
	Catalog   string `mapstructure:"catalog"`    // catalog JSON file served at /video
	MediaRoot string `mapstructure:"media_root"` // directory stream tokens resolve under
	RateLimit int    `mapstructure:"rate_limit"` // requests per minute per IP, 0 = unlimited
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8080",
		},
		Player: PlayerConfig{
			Command: "",
			Args:    []string{},
		},
		UI: UIConfig{
			Splash:   true,
			Backdrop: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Backend: BackendConfig{
			Listen:    "0.0.0.0:8080",
			Catalog:   "catalog.json",
			MediaRoot: ".",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "videoclub", "videoclub.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "videoclub", "videoclub.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "videoclub")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "videoclub")
	}
}

// newViper returns a viper instance with defaults and env overrides applied
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()

	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("ui.splash", cfg.UI.Splash)
	v.SetDefault("ui.backdrop", cfg.UI.Backdrop)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("backend.listen", cfg.Backend.Listen)
	v.SetDefault("backend.catalog", cfg.Backend.Catalog)
	v.SetDefault("backend.media_root", cfg.Backend.MediaRoot)
	v.SetDefault("backend.rate_limit", cfg.Backend.RateLimit)

	// Environment variable overrides, e.g. VIDEOCLUB_SERVER_URL
	v.SetEnvPrefix("VIDEOCLUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load loads configuration from file and environment. An empty path searches
// the OS config directory and the working directory for config.yaml.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return errors.New("server.url must not be empty")
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must not be negative: %s", c.Server.Timeout)
	}
	if c.Backend.RateLimit < 0 {
		return fmt.Errorf("backend.rate_limit must not be negative: %d", c.Backend.RateLimit)
	}
	return nil
}
