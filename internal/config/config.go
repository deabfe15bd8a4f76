package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	envDataDir = "CALNOTES_DATA_DIR"
	envBackend = "CALNOTES_BACKEND"
	envConfig  = "CALNOTES_CONFIG"

	DefaultBackend        = "diskv"
	DefaultSaveDelay      = 300 * time.Millisecond
	DefaultStatusDuration = 3 * time.Second
)

// Config holds the unified application configuration
type Config struct {
	DataDir        string
	Backend        string
	SaveDelay      time.Duration
	StatusDuration time.Duration
}

// Settings represents the config file structure
type Settings struct {
	DataDir           string `json:"data_dir,omitempty"`
	Backend           string `json:"backend,omitempty"`
	SaveDelayMillis   int    `json:"save_delay_ms,omitempty"`
	StatusClearMillis int    `json:"status_clear_ms,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir string
	Backend string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Backend:        DefaultBackend,
		SaveDelay:      DefaultSaveDelay,
		StatusDuration: DefaultStatusDuration,
	}

	if configPath, err := ConfigPath(); err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.DataDir != "" {
				cfg.DataDir = expandPath(fileConfig.DataDir)
			}
			if fileConfig.Backend != "" {
				cfg.Backend = fileConfig.Backend
			}
			if fileConfig.SaveDelayMillis > 0 {
				cfg.SaveDelay = time.Duration(fileConfig.SaveDelayMillis) * time.Millisecond
			}
			if fileConfig.StatusClearMillis > 0 {
				cfg.StatusDuration = time.Duration(fileConfig.StatusClearMillis) * time.Millisecond
			}
		}
	}

	// Environment variables override the config file
	if v := strings.TrimSpace(os.Getenv(envDataDir)); v != "" {
		cfg.DataDir = expandPath(v)
	}
	if v := strings.TrimSpace(os.Getenv(envBackend)); v != "" {
		cfg.Backend = v
	}

	// CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.Backend != "" {
		cfg.Backend = flags.Backend
	}

	if cfg.DataDir == "" {
		defaultDir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}

	return cfg, nil
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "calnotes"), nil
}

// ConfigPath returns the path to the configuration file. CALNOTES_CONFIG overrides it.
func ConfigPath() (string, error) {
	if p := os.Getenv(envConfig); p != "" {
		return expandPath(p), nil
	}
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "calnotes", "config.json"), nil
}

func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaultDir, err := DefaultDataDir()
	if err != nil {
		return err
	}

	settings := Settings{
		DataDir:           defaultDir,
		Backend:           DefaultBackend,
		SaveDelayMillis:   int(DefaultSaveDelay / time.Millisecond),
		StatusClearMillis: int(DefaultStatusDuration / time.Millisecond),
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
