package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/creoclean/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the current directory when --config is not given.
const DefaultConfigFile = ".creoclean.yaml"

// HistoryConfig represents run history configuration
type HistoryConfig struct {
	// Enabled records every live run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database (empty = $CREOCLEAN_HOME/history.db)
	DBPath string `yaml:"db_path"`
}

// Config represents creoclean configuration options
type Config struct {
	// LogLevel sets the console verbosity (debug, info, warning, error)
	LogLevel string `yaml:"log_level"`

	// LogDir, when set, receives a per-run log file
	LogDir string `yaml:"log_dir"`

	// DryRun logs intended actions without touching any file
	DryRun bool `yaml:"dry_run"`

	// Lock takes an advisory lock per directory while it is cleaned
	Lock bool `yaml:"lock"`

	// LockDir holds the lock files (empty = system temp directory)
	LockDir string `yaml:"lock_dir"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warning",
		LogDir:   "",
		DryRun:   false,
		Lock:     true,
		LockDir:  "",
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Booleans default to true, so presence is decided from the raw document
	// rather than from the zero value.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}
	if _, exists := rawMap["dry_run"]; exists {
		cfg.DryRun = fileCfg.DryRun
	}
	if _, exists := rawMap["lock"]; exists {
		cfg.Lock = fileCfg.Lock
	}
	if fileCfg.LockDir != "" {
		cfg.LockDir = fileCfg.LockDir
	}

	if historySection, exists := rawMap["history"]; exists && historySection != nil {
		historyMap, _ := historySection.(map[string]interface{})
		if _, exists := historyMap["enabled"]; exists {
			cfg.History.Enabled = fileCfg.History.Enabled
		}
		if _, exists := historyMap["db_path"]; exists {
			cfg.History.DBPath = fileCfg.History.DBPath
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .creoclean.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigFile))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, dryRun *bool, lock *bool, history *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if dryRun != nil {
		c.DryRun = *dryRun
	}
	if lock != nil {
		c.Lock = *lock
	}
	if history != nil {
		c.History.Enabled = *history
	}
}

// EffectiveLogLevel is the console level actually used. A dry run always
// reports at info level so the planned actions are visible.
func (c *Config) EffectiveLogLevel() string {
	if c.DryRun {
		return "info"
	}
	return c.LogLevel
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warning, error", c.LogLevel)
	}

	if c.History.Enabled && c.History.DBPath != "" && strings.TrimSpace(c.History.DBPath) == "" {
		return fmt.Errorf("history.db_path cannot be blank")
	}

	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
