package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/webgovernor/dirtools/internal/fswalk"
	"github.com/webgovernor/dirtools/internal/platform"
	"github.com/webgovernor/dirtools/internal/tools"
)

// Config holds the application configuration.
type Config struct {
	// Backend selects how ls and tree produce output: "native" or "exec".
	Backend string `json:"backend"`

	// TimeoutSeconds bounds each external command.
	TimeoutSeconds int `json:"timeoutSeconds"`

	// ListMaxLines and TreeMaxLines are the output line budgets.
	ListMaxLines int `json:"listMaxLines"`
	TreeMaxLines int `json:"treeMaxLines"`

	// TreeDepth is the depth used when a tree call omits one.
	TreeDepth int `json:"treeDepth"`

	// Ignore holds doublestar patterns hidden from native listings.
	Ignore []string `json:"ignore,omitempty"`

	// Confine rejects absolute paths outside the work directory.
	Confine bool `json:"confine"`

	// Journal records every tool call in the SQLite database.
	Journal bool `json:"journal"`

	// DataDir is the directory for persistent storage (SQLite DB, logs).
	DataDir string `json:"dataDir,omitempty"`

	LogLevel string `json:"logLevel"`

	// LogFile is where the console writes its log. Defaults to DataDir/dirtools.log.
	LogFile string `json:"logFile,omitempty"`

	// WorkDir is the workspace root. Defaults to cwd.
	WorkDir string `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:        string(tools.BackendNative),
		TimeoutSeconds: 15,
		ListMaxLines:   100,
		TreeMaxLines:   200,
		TreeDepth:      platform.DefaultTreeDepth,
		Journal:        true,
		LogLevel:       "info",
	}
}

// Load reads configuration from files and environment variables.
// Priority: defaults < config file < environment variables. An empty workDir
// means the current directory.
func Load(workDir string) (Config, error) {
	cfg := DefaultConfig()

	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cfg, fmt.Errorf("getting working directory: %w", err)
		}
		workDir = cwd
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return cfg, fmt.Errorf("resolving working directory: %w", err)
	}
	cfg.WorkDir = abs

	// Try to load config file (project-local first, then user-level)
	for _, path := range searchPaths(cfg.WorkDir) {
		if data, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
			break
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if cfg.DataDir == "" {
		cfg.DataDir, err = defaultDataDir()
		if err != nil {
			return cfg, fmt.Errorf("determining data directory: %w", err)
		}
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "dirtools.log")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return cfg, fmt.Errorf("creating data directory: %w", err)
	}

	return cfg, nil
}

func searchPaths(workDir string) []string {
	paths := []string{filepath.Join(workDir, ".dirtools.json")}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "dirtools", "config.json"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".dirtools.json"))
	}
	return paths
}

// applyEnv applies DIRTOOLS_* overrides.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DIRTOOLS_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("DIRTOOLS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DIRTOOLS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("DIRTOOLS_CONFINE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing DIRTOOLS_CONFINE: %w", err)
		}
		cfg.Confine = b
	}
	if v := os.Getenv("DIRTOOLS_JOURNAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing DIRTOOLS_JOURNAL: %w", err)
		}
		cfg.Journal = b
	}
	return nil
}

// defaultDataDir returns the default data directory for persistent storage.
func defaultDataDir() (string, error) {
	// Use XDG_DATA_HOME if available, otherwise ~/.local/share
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "dirtools"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "dirtools"), nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	switch tools.Backend(strings.ToLower(c.Backend)) {
	case tools.BackendNative, tools.BackendExec:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q (want native or exec)", c.Backend))
	}
	if c.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timeoutSeconds must be positive, got %d", c.TimeoutSeconds))
	}
	if c.ListMaxLines <= 0 {
		errs = append(errs, fmt.Errorf("listMaxLines must be positive, got %d", c.ListMaxLines))
	}
	if c.TreeMaxLines <= 0 {
		errs = append(errs, fmt.Errorf("treeMaxLines must be positive, got %d", c.TreeMaxLines))
	}
	if c.TreeDepth < platform.MinTreeDepth || c.TreeDepth > platform.MaxTreeDepth {
		errs = append(errs, fmt.Errorf("treeDepth must be between %d and %d, got %d",
			platform.MinTreeDepth, platform.MaxTreeDepth, c.TreeDepth))
	}
	if err := fswalk.ValidatePatterns(c.Ignore); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Timeout returns the command timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ToolOptions converts the configuration into options for the directory tools.
func (c Config) ToolOptions() tools.Options {
	return tools.Options{
		WorkDir:      c.WorkDir,
		Backend:      tools.Backend(strings.ToLower(c.Backend)),
		Timeout:      c.Timeout(),
		ListMaxLines: c.ListMaxLines,
		TreeMaxLines: c.TreeMaxLines,
		TreeDepth:    c.TreeDepth,
		Ignore:       c.Ignore,
		Confine:      c.Confine,
	}
}

// DBPath returns the path to the SQLite database file.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "dirtools.db")
}
