package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadScoringConfig reads the scoring config from SCORING_CONFIG_PATH
// (default configs/scoring.yaml). A missing file yields the defaults; a
// present-but-broken file is an error.
func LoadScoringConfig() (*Config, error) {
	path := os.Getenv("SCORING_CONFIG_PATH")
	if path == "" {
		path = "configs/scoring.yaml"
	}

	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = 1024
	}
	if cfg.Model.CompletionTimeoutSeconds == 0 {
		cfg.Model.CompletionTimeoutSeconds = 30
	}
	if cfg.Limits.MaxTranscriptChars == 0 {
		cfg.Limits.MaxTranscriptChars = 8000
	}
	if cfg.Limits.AnalyticsDefaultLimit == 0 {
		cfg.Limits.AnalyticsDefaultLimit = 50
	}
	if cfg.Limits.AnalyticsMaxLimit == 0 {
		cfg.Limits.AnalyticsMaxLimit = 200
	}
	if cfg.Limits.EvaluationsDefaultLimit == 0 {
		cfg.Limits.EvaluationsDefaultLimit = 20
	}
	if cfg.Limits.DefaultGranularity == "" {
		cfg.Limits.DefaultGranularity = "day"
	}
}

func (c *Config) Validate() error {
	if c.Limits.DefaultGranularity != "day" && c.Limits.DefaultGranularity != "hour" {
		return fmt.Errorf("default_granularity must be 'day' or 'hour', got %q", c.Limits.DefaultGranularity)
	}
	if c.Limits.AnalyticsDefaultLimit > c.Limits.AnalyticsMaxLimit {
		return fmt.Errorf("analytics_default_limit %d exceeds analytics_max_limit %d",
			c.Limits.AnalyticsDefaultLimit, c.Limits.AnalyticsMaxLimit)
	}
	return nil
}
