package config

// Config is the scoring service configuration loaded from YAML.
type Config struct {
	Model  ModelConfig  `yaml:"model"`
	Limits LimitsConfig `yaml:"limits"`
}

// ModelConfig contains completion-call parameters shared by all providers.
type ModelConfig struct {
	MaxTokens                int     `yaml:"max_tokens"`
	Temperature              float64 `yaml:"temperature"`
	CompletionTimeoutSeconds int     `yaml:"completion_timeout_seconds"`
}

// LimitsConfig contains transcript and query window limits.
type LimitsConfig struct {
	MaxTranscriptChars      int    `yaml:"max_transcript_chars"`
	AnalyticsDefaultLimit   int    `yaml:"analytics_default_limit"`
	AnalyticsMaxLimit       int    `yaml:"analytics_max_limit"`
	EvaluationsDefaultLimit int    `yaml:"evaluations_default_limit"`
	DefaultGranularity      string `yaml:"default_granularity"`
}
