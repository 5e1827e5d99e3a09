package api

import (
	"time"

	"github.com/salesdojo/roleplay-eval/internal/models"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// EvaluationSummary is the listing projection of an evaluation: scores and
// metadata without the transcript body.
type EvaluationSummary struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	OverallScore *float64       `json:"overallScore"`
	Scores       *models.Scores `json:"scores"`
}

// EvaluationsResponse pairs the recent listing with averages over the same
// window.
type EvaluationsResponse struct {
	Meta models.Aggregates   `json:"meta"`
	Data []EvaluationSummary `json:"data"`
}

// ReplayResponse returns the original transcript and metadata for session
// replay.
type ReplayResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	RoleplayText string    `json:"roleplayText"`
}
