// Package config loads the game settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultQuestionsPerLevel = 10
	DefaultFeedbackDuration  = 1500 * time.Millisecond
)

// Config holds the runtime settings.
type Config struct {
	// DBPath is the SQLite file. Empty means the XDG data default.
	DBPath string `yaml:"db" env:"MATHS_DB"`

	QuestionsPerLevel int `yaml:"questions_per_level" env:"MATHS_QUESTIONS_PER_LEVEL"`

	// FeedbackDuration is how long the answer emoji stays on screen.
	FeedbackDuration time.Duration `yaml:"feedback_duration" env:"MATHS_FEEDBACK_DURATION"`

	// LogFile receives TUI logs. Empty discards them.
	LogFile string `yaml:"log" env:"MATHS_LOG"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		QuestionsPerLevel: DefaultQuestionsPerLevel,
		FeedbackDuration:  DefaultFeedbackDuration,
	}
}

// Load layers the YAML file at path and then the environment over the
// defaults. An empty path uses DefaultPath; a missing file is not an error.
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
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if c.QuestionsPerLevel <= 0 {
		return fmt.Errorf("questions per level must be positive, got %d", c.QuestionsPerLevel)
	}
	if c.FeedbackDuration < 0 {
		return fmt.Errorf("feedback duration must not be negative, got %s", c.FeedbackDuration)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/maths/config.yaml, falling back to
// ~/.config. It returns "" when no home directory can be resolved.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "maths", "config.yaml")
}
