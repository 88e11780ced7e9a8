package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the flowbridge configuration.
type Config struct {
	Python    PythonConfig    `yaml:"python"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
}

// PythonConfig holds interpreter and tool settings.
type PythonConfig struct {
	Interpreter string `yaml:"interpreter"` // Explicit interpreter (empty = auto-detect)
	ToolModule  string `yaml:"tool_module"` // Python module invoked with -m
}

// WorkspaceConfig holds workspace-related settings.
type WorkspaceConfig struct {
	DefaultProject string `yaml:"default_project"` // Default project for run requests
}

// HistoryConfig holds the local execution-history cache settings.
type HistoryConfig struct {
	Enabled       bool `yaml:"enabled"`        // Cache fetched history locally
	RetentionDays int  `yaml:"retention_days"` // Prune cached runs older than this (0 = keep)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (empty = data dir default)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Python: PythonConfig{
			Interpreter: "",
			ToolModule:  "wftool",
		},
		Workspace: WorkspaceConfig{
			DefaultProject: "",
		},
		History: HistoryConfig{
			Enabled:       true,
			RetentionDays: 90,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Python.ToolModule == "" {
		return errors.New("python.tool_module must not be empty")
	}

	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	if c.History.RetentionDays < 0 {
		return errors.New("history.retention_days must be >= 0")
	}

	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FLOWBRIDGE_PYTHON"); v != "" {
		c.Python.Interpreter = v
	}
	if v := os.Getenv("FLOWBRIDGE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("FLOWBRIDGE_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("WFTOOL_PROJECT"); v != "" {
		c.Workspace.DefaultProject = v
	}
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
