// Package evaluator runs the scoring pipeline: truncate, build prompt, call
// the completion model, parse, validate, persist. Every failure is terminal
// for the invocation; nothing is retried and nothing invalid is persisted.
package evaluator

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/llm"
	"github.com/salesdojo/roleplay-eval/internal/models"
	"github.com/salesdojo/roleplay-eval/internal/prompt"
	"github.com/salesdojo/roleplay-eval/internal/store"
	"github.com/salesdojo/roleplay-eval/internal/validate"
)

// Params tunes a Service. Zero values fall back to defaults.
type Params struct {
	MaxTranscriptChars int
	MaxTokens          int
	Temperature        float64
	CompletionTimeout  time.Duration
}

const (
	defaultMaxTranscriptChars = 8000
	defaultMaxTokens          = 1024
	defaultCompletionTimeout  = 30 * time.Second
)

type Service struct {
	client llm.CompletionClient
	store  store.Store
	params Params
	logger *zerolog.Logger
}

func NewService(client llm.CompletionClient, st store.Store, params Params, logger *zerolog.Logger) *Service {
	if params.MaxTranscriptChars == 0 {
		params.MaxTranscriptChars = defaultMaxTranscriptChars
	}
	if params.MaxTokens == 0 {
		params.MaxTokens = defaultMaxTokens
	}
	if params.CompletionTimeout == 0 {
		params.CompletionTimeout = defaultCompletionTimeout
	}

	return &Service{
		client: client,
		store:  st,
		params: params,
		logger: logger,
	}
}

// Evaluate scores one transcript and persists the result. The persisted
// roleplayText is always the truncated text that was actually scored. The
// pipeline makes at most one completion call; a malformed or invalid model
// response fails the invocation without touching the store.
func (s *Service) Evaluate(ctx context.Context, transcriptText string, userID string) (*models.Evaluation, error) {
	if transcriptText == "" {
		return nil, failed(KindInvalidInput, "transcript is empty", nil)
	}
	if !utf8.ValidString(transcriptText) {
		return nil, failed(KindInvalidInput, "transcript is not valid text", nil)
	}

	// Truncation is silent, not an error.
	transcriptText = truncate(transcriptText, s.params.MaxTranscriptChars)

	scoringPrompt := prompt.Build(transcriptText)

	completionCtx, cancel := context.WithTimeout(ctx, s.params.CompletionTimeout)
	defer cancel()

	resp, err := s.client.Complete(completionCtx, llm.CompletionRequest{
		Prompt:      scoringPrompt,
		MaxTokens:   s.params.MaxTokens,
		Temperature: s.params.Temperature,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("model", s.client.ModelName()).Msg("completion call failed")
		return nil, failed(KindCompletionFailed, "completion call failed", err)
	}

	content := stripMarkdownCodeBlock(resp.Content)

	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		// Raw text goes to the log for diagnosis, never to the store.
		s.logger.Error().Err(err).Str("content", resp.Content).Msg("model did not return valid JSON")
		return nil, failed(KindMalformedOutput, "model output is not valid JSON", err)
	}

	result, err := validate.ScoreResult(raw)
	if err != nil {
		s.logger.Error().Err(err).Str("content", content).Msg("model output failed schema validation")
		return nil, failed(KindSchemaViolation, "model output failed schema validation", err)
	}

	record, err := s.store.CreateEvaluation(ctx, &models.Evaluation{
		UserID:       userID,
		RoleplayText: transcriptText,
		Result:       &result,
		ModelName:    s.client.ModelName(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist evaluation")
		return nil, failed(KindStorageFailed, "failed to persist evaluation", err)
	}

	s.logger.Info().
		Str("id", record.ID).
		Float64("overallScore", result.OverallScore).
		Str("model", record.ModelName).
		Msg("evaluation complete")

	return record, nil
}

// truncate caps the transcript at max characters, never splitting a rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// stripMarkdownCodeBlock removes markdown code fences some models wrap around
// their JSON. Fences are transport noise, not a schema deviation.
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
