package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds all the process-level configuration of an App.
type Settings struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// GrammarDatabase is a JSON grammar database replacing the embedded one.
	GrammarDatabase string `yaml:"grammar_database"`
	// IncludePaths are searched for relative @include patterns that do not
	// resolve next to the including file.
	IncludePaths []string `yaml:"include_paths"`

	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:      "warn",
		LogFormat:     "text",
		WatchDebounce: 200 * time.Millisecond,
	}
}

// LoadSettings reads YAML settings from path on top of the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return s, nil
}

// NewSettings validates s and returns a normalised copy.
func NewSettings(s Settings) (*Settings, error) {
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", s.LogLevel)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", s.LogFormat)
	}
	if s.WatchDebounce < 0 {
		return nil, fmt.Errorf("invalid watch debounce %s: must not be negative", s.WatchDebounce)
	}
	return &s, nil
}
