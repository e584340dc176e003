package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/tooltip/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "tooltip.json"

	DefaultAddr         = ":8080"
	DefaultPath         = "/ws"
	DefaultDelayMs      = 400
	DefaultCloseDelayMs = 200
	DefaultLogLevel     = "info"
)

// Config represents the complete tooltip.json configuration.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Tooltip TooltipConfig `json:"tooltip"`
	Log     LogConfig     `json:"log"`
	Replay  ReplayConfig  `json:"replay,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP/WebSocket settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr"`

	// Path is the WebSocket endpoint.
	Path string `json:"path"`

	// Metrics exposes GET /metrics.
	Metrics bool `json:"metrics"`
}

// TooltipConfig contains controller timing.
type TooltipConfig struct {
	// DefaultDelayMs is the opening delay for anchors that declare none.
	DefaultDelayMs int `json:"defaultDelayMs"`

	// CloseDelayMs is how long a hold-to-show tooltip lingers after release.
	CloseDelayMs int `json:"closeDelayMs"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// ReplayConfig contains settings for loading replay scripts from S3.
type ReplayConfig struct {
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: DefaultAddr,
			Path: DefaultPath,
		},
		Tooltip: TooltipConfig{
			DefaultDelayMs: DefaultDelayMs,
			CloseDelayMs:   DefaultCloseDelayMs,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: "text",
		},
	}
}

// Load reads tooltip.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault reads tooltip.json from dir, falling back to defaults
// when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// LoadFile reads configuration from the specified file path and
// validates it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("T001").
				WithSource(path).
				Wrap(err)
		}
		return nil, errors.New("T002").WithSource(path).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("T002").
			WithSource(path).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON").
			Wrap(err)
	}
	cfg.configPath = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Server.Addr) == "":
		return c.invalid("server.addr must not be empty")
	case !strings.HasPrefix(c.Server.Path, "/"):
		return c.invalid("server.path must start with '/'")
	case c.Tooltip.DefaultDelayMs < 0:
		return c.invalid("tooltip.defaultDelayMs must not be negative")
	case c.Tooltip.CloseDelayMs < 0:
		return c.invalid("tooltip.closeDelayMs must not be negative")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return c.invalid("log.level must be one of debug, info, warn, error").
			WithSuggestion("Use \"info\" unless you are debugging")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return c.invalid("log.format must be \"text\" or \"json\"")
	}
	return nil
}

func (c *Config) invalid(detail string) *errors.Error {
	e := errors.New("T003").WithDetail(detail)
	if c.configPath != "" {
		e.WithSource(c.configPath)
	}
	return e
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("T004").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("T004").WithSource(path).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// DefaultDelay returns the opening delay as a duration.
func (c *Config) DefaultDelay() time.Duration {
	return time.Duration(c.Tooltip.DefaultDelayMs) * time.Millisecond
}

// CloseDelay returns the hold-to-show close delay as a duration.
func (c *Config) CloseDelay() time.Duration {
	return time.Duration(c.Tooltip.CloseDelayMs) * time.Millisecond
}

// LogLevel returns the configured slog level, or Info when unset.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
