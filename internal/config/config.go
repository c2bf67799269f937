package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the config file inside the dirsweep home.
const ConfigFileName = "config.yaml"

// HistoryConfig controls the cleanup history database
type HistoryConfig struct {
	// Enabled records every cleanup run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the history database, relative to StateDir unless absolute
	DBPath string `yaml:"db_path"`
}

// CleanupConfig controls the clean command
type CleanupConfig struct {
	// Confirm asks before deleting anything unless --yes is given
	Confirm bool `yaml:"confirm"`
}

// Config represents dirsweep configuration options
type Config struct {
	// StateDir holds the persisted documents; relative paths resolve against the home directory
	StateDir string `yaml:"state_dir"`

	// SnapshotFile is the directory-entry document, relative to StateDir unless absolute
	SnapshotFile string `yaml:"snapshot_file"`

	// ExclusionsFile is the exclusion document, relative to StateDir unless absolute
	ExclusionsFile string `yaml:"exclusions_file"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is where run logs are written when LogToFile is set
	LogDir string `yaml:"log_dir"`

	// LogToFile mirrors console diagnostics into LogDir
	LogToFile bool `yaml:"log_to_file"`

	History HistoryConfig `yaml:"history"`
	Cleanup CleanupConfig `yaml:"cleanup"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		StateDir:       ".",
		SnapshotFile:   "folder_snapshot.json",
		ExclusionsFile: "exclusions.json",
		LogLevel:       "info",
		LogDir:         "logs",
		LogToFile:      false,
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "history.db",
		},
		Cleanup: CleanupConfig{
			Confirm: true,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed file is an error.
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

	// Strings merge when non-empty
	if fileCfg.StateDir != "" {
		cfg.StateDir = fileCfg.StateDir
	}
	if fileCfg.SnapshotFile != "" {
		cfg.SnapshotFile = fileCfg.SnapshotFile
	}
	if fileCfg.ExclusionsFile != "" {
		cfg.ExclusionsFile = fileCfg.ExclusionsFile
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}

	// Booleans merge only when the key is present, so "false" can override a true default
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["log_to_file"]; exists {
			cfg.LogToFile = fileCfg.LogToFile
		}
		if section, ok := rawMap["history"].(map[string]interface{}); ok {
			if _, exists := section["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := section["db_path"]; exists {
				cfg.History.DBPath = fileCfg.History.DBPath
			}
		}
		if section, ok := rawMap["cleanup"].(map[string]interface{}); ok {
			if _, exists := section["confirm"]; exists {
				cfg.Cleanup.Confirm = fileCfg.Cleanup.Confirm
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromHome loads config.yaml from the dirsweep home directory
// and resolves relative paths against it.
func LoadConfigFromHome(home string) (*Config, error) {
	cfg, err := LoadConfig(filepath.Join(home, ConfigFileName))
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(home)
	return cfg, nil
}

// ResolvePaths makes StateDir and LogDir absolute relative to home.
func (c *Config) ResolvePaths(home string) {
	if !filepath.IsAbs(c.StateDir) {
		c.StateDir = filepath.Join(home, c.StateDir)
	}
	if !filepath.IsAbs(c.LogDir) {
		c.LogDir = filepath.Join(home, c.LogDir)
	}
}

// SnapshotPath returns the location of the directory-entry document.
func (c *Config) SnapshotPath() string {
	return c.inStateDir(c.SnapshotFile)
}

// ExclusionsPath returns the location of the exclusion document.
func (c *Config) ExclusionsPath() string {
	return c.inStateDir(c.ExclusionsFile)
}

// HistoryDBPath returns the location of the history database.
func (c *Config) HistoryDBPath() string {
	return c.inStateDir(c.History.DBPath)
}

func (c *Config) inStateDir(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.StateDir, name)
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(logLevel *string, stateDir *string, logToFile *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if stateDir != nil {
		c.StateDir = *stateDir
	}
	if logToFile != nil {
		c.LogToFile = *logToFile
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.StateDir == "" {
		return fmt.Errorf("state_dir cannot be empty")
	}
	if c.SnapshotFile == "" {
		return fmt.Errorf("snapshot_file cannot be empty")
	}
	if c.ExclusionsFile == "" {
		return fmt.Errorf("exclusions_file cannot be empty")
	}
	if c.SnapshotPath() == c.ExclusionsPath() {
		return fmt.Errorf("snapshot_file and exclusions_file must differ, both are %s", c.SnapshotPath())
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
