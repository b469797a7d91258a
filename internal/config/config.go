// Package config resolves dashboard settings from defaults, an optional YAML
// file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables
const (
	EnvDataDir  = "REEL_TASKS_DATA"
	EnvURL      = "REEL_TASKS_URL"
	EnvLogLevel = "REEL_TASKS_LOG_LEVEL"
	EnvTimeout  = "REEL_TASKS_TIMEOUT"
)

// Defaults
const (
	DefaultURL      = "http://localhost:5000"
	DefaultLogLevel = "info"
	DefaultTimeout  = 10 * time.Second
)

// Config holds the dashboard settings
type Config struct {
	DataDir        string        `yaml:"-"`
	ServerURL      string        `yaml:"server_url"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DefaultDataDir returns ~/.reel-tasks, or $REEL_TASKS_DATA when set
func DefaultDataDir() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".reel-tasks"), nil
}

// Load reads .env from the working directory, then config.yaml from the
// data directory, then applies environment overrides. A missing .env is
// fine; one that cannot be read is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	dataDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dataDir)
}

// LoadFrom builds a Config rooted at dataDir without touching .env
func LoadFrom(dataDir string) (*Config, error) {
	cfg := &Config{
		DataDir:        dataDir,
		ServerURL:      DefaultURL,
		LogLevel:       DefaultLogLevel,
		RequestTimeout: DefaultTimeout,
	}

	if err := cfg.readFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		cfg.RequestTimeout = d
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(dataDir, "reel-tasks.log")
	}
	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the resolved settings
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
