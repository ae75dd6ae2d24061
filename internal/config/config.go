// Package config loads FounderPath settings from defaults, an optional
// YAML file and FOUNDERPATH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/founderpath/founderpath/internal/content"
	"github.com/founderpath/founderpath/internal/llm"
	"github.com/founderpath/founderpath/internal/logger"
	"github.com/founderpath/founderpath/internal/store"
)

// Config is the full application configuration.
type Config struct {
	LLM     llm.Config     `yaml:"llm"`
	Content content.Config `yaml:"content"`
	Store   StoreConfig    `yaml:"store"`
	Log     LogConfig      `yaml:"log"`
	Update  UpdateConfig   `yaml:"update"`
}

// StoreConfig selects where the profile lives.
type StoreConfig struct {
	// Engine is "sqlite" or "json". Default: sqlite.
	Engine   string `yaml:"engine"`
	DBPath   string `yaml:"db_path"`
	JSONPath string `yaml:"json_path"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
	// Path is the log file. "-" disables logging.
	Path string `yaml:"path"`
}

// UpdateConfig configures self-update.
type UpdateConfig struct {
	Repo string `yaml:"repo"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:     llm.DefaultConfig(),
		Content: content.DefaultConfig(),
		Store:   StoreConfig{Engine: store.EngineSQLite},
		Log:     LogConfig{Mode: "dev", Level: "info"},
		Update:  UpdateConfig{Repo: "founderpath/founderpath"},
	}
}

// DefaultPath returns $FOUNDERPATH_CONFIG, or config.yaml under the XDG
// config directory.
func DefaultPath() string {
	if p := os.Getenv("FOUNDERPATH_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "founderpath", "config.yaml")
}

// DefaultLogPath returns founderpath.log under the XDG state directory.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "founderpath", "founderpath.log")
}

// Load reads path over the defaults and applies the environment. A
// missing file is not an error when path is the default location.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays FOUNDERPATH_* environment variables.
func (c *Config) ApplyEnv() {
	llm.ApplyEnv(&c.LLM)
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Store.Engine, "FOUNDERPATH_STORE")
	set(&c.Store.DBPath, "FOUNDERPATH_DB")
	set(&c.Store.JSONPath, "FOUNDERPATH_PROFILE_JSON")
	set(&c.Log.Level, "FOUNDERPATH_LOG_LEVEL")
	set(&c.Log.Path, "FOUNDERPATH_LOG")
	set(&c.Update.Repo, "FOUNDERPATH_UPDATE_REPO")
}

// Validate checks the settings that are not validated elsewhere.
func (c Config) Validate() error {
	switch c.Store.Engine {
	case store.EngineSQLite, store.EngineJSON:
	default:
		return fmt.Errorf("store engine %q: want %s or %s", c.Store.Engine, store.EngineSQLite, store.EngineJSON)
	}
	if c.Content.Temperature < 0 || c.Content.Temperature > 2 {
		return fmt.Errorf("content temperature %.2f out of range [0, 2]", c.Content.Temperature)
	}
	return nil
}

// LoggerOptions resolves the log settings into logger options.
func (c Config) LoggerOptions() logger.Options {
	path := c.Log.Path
	switch path {
	case "":
		path = DefaultLogPath()
	case "-":
		path = ""
	}
	return logger.Options{Mode: c.Log.Mode, Level: c.Log.Level, Path: path}
}
