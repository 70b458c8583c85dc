package experiment

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every knob of an experiment run. It is constructed once
// at startup and threaded down to every call site; there is no global
// client or model state.
type Config struct {
	Model           string `yaml:"model" json:"model"`
	APIKey          string `yaml:"api_key,omitempty" json:"-"`
	Rounds          int    `yaml:"rounds" json:"rounds"`
	MaxAttempts     int    `yaml:"max_attempts" json:"max_attempts"`
	BackoffSeconds  int    `yaml:"backoff_seconds" json:"backoff_seconds"`
	Seed            int64  `yaml:"seed,omitempty" json:"seed,omitempty"`
	ContinueOnError bool   `yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig mirrors the reference run: gemini-2.5-flash, three
// rounds, three attempts with a fixed 60s backoff.
func DefaultConfig() Config {
	return Config{
		Model:          "gemini-2.5-flash",
		Rounds:         3,
		MaxAttempts:    3,
		BackoffSeconds: 60,
	}
}

// LoadConfig overlays a YAML config file onto the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate rejects configurations no debate can run under.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must be set")
	}
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must be >= 0, got %d", c.Rounds)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1, got %d", c.MaxAttempts)
	}
	if c.BackoffSeconds < 0 {
		return fmt.Errorf("backoff_seconds must be >= 0, got %d", c.BackoffSeconds)
	}
	return nil
}

// Backoff returns the retry wait as a duration.
func (c Config) Backoff() time.Duration {
	return time.Duration(c.BackoffSeconds) * time.Second
}
