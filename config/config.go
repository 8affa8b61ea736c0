// Package config loads provider and orchestration settings from the
// environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config holds the environment-driven settings of a CourseChat deployment.
// BaseURL targets any OpenAI-compatible endpoint (e.g. OpenRouter); it is
// ignored by the anthropic provider.
type Config struct {
	Provider     string  `env:"COURSECHAT_PROVIDER" envDefault:"openai"`
	APIKey       string  `env:"COURSECHAT_API_KEY"`
	BaseURL      string  `env:"COURSECHAT_BASE_URL"`
	Model        string  `env:"COURSECHAT_MODEL"`
	Temperature  float64 `env:"COURSECHAT_TEMPERATURE" envDefault:"0"`
	MaxTokens    int64   `env:"COURSECHAT_MAX_TOKENS" envDefault:"800"`
	MaxRounds    int     `env:"COURSECHAT_MAX_ROUNDS" envDefault:"2"`
	MaxHistory   int     `env:"COURSECHAT_MAX_HISTORY" envDefault:"2"`
	LogLevel     string  `env:"COURSECHAT_LOG_LEVEL" envDefault:"info"`
	LogFormat    string  `env:"COURSECHAT_LOG_FORMAT" envDefault:"json"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment config: %w", err)
	}
	return cfg, nil
}
