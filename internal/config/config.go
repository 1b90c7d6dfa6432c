package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SNIPMAN_STORE_BACKEND
const EnvPrefix = "SNIPMAN"

// Config represents the application configuration
type Config struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
	Store        StoreSettings `mapstructure:"store"`
	Log          LogSettings   `mapstructure:"log"`
	UI           UISettings    `mapstructure:"ui"`
}

// StoreSettings selects where snippets are persisted
type StoreSettings struct {
	Backend string `mapstructure:"backend"` // toml or sqlite
	Path    string `mapstructure:"path"`    // empty means the backend default
}

// LogSettings configures the log file
type LogSettings struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Autosave bool `mapstructure:"autosave"`
	Seed     bool `mapstructure:"seed"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	BindFlags(flags *pflag.FlagSet) error
	Path() string
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"store":         "store.backend",
	"store-path":    "store.path",
	"tick-interval": "tick_interval",
	"log-file":      "log.file",
	"log-level":     "log.level",
	"seed":          "ui.seed",
	"autosave":      "ui.autosave",
}

// configService is the concrete implementation
type configService struct {
	v        *viper.Viper
	filePath string
}

// NewConfigService creates a config service reading filePath, or the
// default location when filePath is empty.
func NewConfigService(filePath string) ConfigService {
	if filePath == "" {
		filePath = DefaultPath()
	}
	return &configService{
		v:        newViper(),
		filePath: filePath,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("tick_interval", defaults.TickInterval)
	v.SetDefault("store.backend", defaults.Store.Backend)
	v.SetDefault("store.path", defaults.Store.Path)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("ui.autosave", defaults.UI.Autosave)
	v.SetDefault("ui.seed", defaults.UI.Seed)
	return v
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(configDir(), "snipman", "config.toml")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		dir, err = os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		dir = filepath.Join(dir, ".config")
	}
	return dir
}

// Path returns the config file this service reads by default
func (cs *configService) Path() string {
	return cs.filePath
}

// BindFlags lets the known flags of flags override file and env values
func (cs *configService) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := cs.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load loads the configuration from file. A missing file yields the
// defaults, still subject to env and flag overrides.
func (cs *configService) Load() (*Config, error) {
	return cs.load(cs.filePath, false)
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return cs.load(path, true)
}

func (cs *configService) load(path string, mustExist bool) (*Config, error) {
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if mustExist {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		cs.v.SetConfigFile(path)
		if err := cs.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := cs.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// A fresh instance keeps env and flag overrides out of the file
	out := viper.New()
	out.SetConfigType("toml")
	out.Set("tick_interval", config.TickInterval.String())
	out.Set("store.backend", config.Store.Backend)
	out.Set("store.path", config.Store.Path)
	out.Set("log.file", config.Log.File)
	out.Set("log.level", config.Log.Level)
	out.Set("ui.autosave", config.UI.Autosave)
	out.Set("ui.seed", config.UI.Seed)

	if err := out.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	switch c.Store.Backend {
	case "toml", "sqlite":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// LogFile returns the configured log file, defaulting to snipman.log in the
// config directory.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(configDir(), "snipman", "snipman.log")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TickInterval: 200 * time.Millisecond,
		Store: StoreSettings{
			Backend: "toml",
		},
		Log: LogSettings{
			Level: "info",
		},
		UI: UISettings{
			Autosave: true,
			Seed:     false,
		},
	}
}
