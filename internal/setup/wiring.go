package setup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/analytics"
	"github.com/salesdojo/roleplay-eval/internal/config"
	"github.com/salesdojo/roleplay-eval/internal/evaluator"
	"github.com/salesdojo/roleplay-eval/internal/llm"
	"github.com/salesdojo/roleplay-eval/internal/llm/bedrock"
	"github.com/salesdojo/roleplay-eval/internal/llm/gpt"
	"github.com/salesdojo/roleplay-eval/internal/store"
	mongostore "github.com/salesdojo/roleplay-eval/internal/store/mongo"
)

type Config struct {
	MongoURI        string
	MongoDatabase   string
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string
}

type Dependencies struct {
	Service *evaluator.Service
	Store   store.Store
	Engine  *analytics.Engine
	Limits  config.LimitsConfig
	Logger  *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "salesdojo"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	scoringCfg, err := config.LoadScoringConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring config: %w", err)
	}

	client, err := createCompletionClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	mongoClient, err := mongostore.Connect(ctx, cfg.MongoURI, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	st := mongostore.NewStore(mongoClient, cfg.MongoDatabase)

	service := evaluator.NewService(client, st, evaluator.Params{
		MaxTranscriptChars: scoringCfg.Limits.MaxTranscriptChars,
		MaxTokens:          scoringCfg.Model.MaxTokens,
		Temperature:        scoringCfg.Model.Temperature,
		CompletionTimeout:  time.Duration(scoringCfg.Model.CompletionTimeoutSeconds) * time.Second,
	}, logger)

	engine := analytics.NewEngine(logger)

	return &Dependencies{
		Service: service,
		Store:   st,
		Engine:  engine,
		Limits:  scoringCfg.Limits,
		Logger:  logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func createCompletionClient(ctx context.Context, provider string, cfg *Config) (llm.CompletionClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}
