// Package store defines the persistence capability for evaluation records.
// Records are written exactly once and never updated or deleted; reads are
// always safe against concurrent writes.
package store

import (
	"context"
	"errors"

	"github.com/salesdojo/roleplay-eval/internal/models"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("evaluation not found")

// Filter narrows find queries. A zero Filter matches everything.
type Filter struct {
	UserID string
}

// Store provides create/find operations over Evaluation records.
// CreateEvaluation assigns the record's ID and CreatedAt; FindEvaluations
// returns at most limit records ordered by creation time descending.
type Store interface {
	CreateEvaluation(ctx context.Context, record *models.Evaluation) (*models.Evaluation, error)
	FindEvaluations(ctx context.Context, filter Filter, limit int) ([]models.Evaluation, error)
	FindEvaluationByID(ctx context.Context, id string) (*models.Evaluation, error)
}
