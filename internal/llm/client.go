package llm

import (
	"context"
)

// CompletionClient is the narrow capability the scoring pipeline needs from a
// text-generation backend: prompt in, raw text out. Implementations may retry
// transport-level failures internally; the pipeline itself never re-invokes.
// The interface keeps the backend swappable and mockable in tests.
type CompletionClient interface {
	Complete(ctx context.Context, request CompletionRequest) (*CompletionResponse, error)

	// ModelName identifies the backing model (e.g. "bedrock:<model-id>");
	// it is recorded on every persisted evaluation.
	ModelName() string
}
