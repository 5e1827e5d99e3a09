package stream

import (
	"context"

	"github.com/salesdojo/roleplay-eval/internal/models"
)

type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}

// Scorer runs the evaluation pipeline for one ingested transcript.
type Scorer interface {
	Evaluate(ctx context.Context, transcriptText string, userID string) (*models.Evaluation, error)
}
