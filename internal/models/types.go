package models

import (
	"time"
)

// Granularity controls how analytics buckets truncate record timestamps.
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityHour Granularity = "hour"
)

// Scores holds the three scored dimensions, each in [0,10].
type Scores struct {
	Empathy          float64 `json:"empathy"`
	Clarity          float64 `json:"clarity"`
	ProductKnowledge float64 `json:"productKnowledge"`
}

// Feedback is the qualitative part of a score result.
type Feedback struct {
	Summary             string   `json:"summary"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
}

// ScoreResult is the validated structured output of a scoring run. It is
// built by the validator exactly once and never mutated afterwards.
type ScoreResult struct {
	OverallScore float64  `json:"overallScore"`
	Scores       Scores   `json:"scores"`
	Feedback     Feedback `json:"feedback"`
}

// Evaluation pairs a scored transcript with its validated result.
// RoleplayText is the truncated text that was actually sent for scoring.
// ID and CreatedAt are assigned by the store at insertion.
type Evaluation struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId,omitempty"`
	RoleplayText string       `json:"roleplayText"`
	Result       *ScoreResult `json:"result"`
	ModelName    string       `json:"modelName"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Input message

type EvaluateRequest struct {
	RoleplayText string `json:"roleplayText"`
	UserID       string `json:"userId,omitempty"`
}

// TimeSeriesPoint is one evaluation projected onto the analytics time axis.
// OverallScore is nil for records without a score result.
type TimeSeriesPoint struct {
	Timestamp    time.Time `json:"ts"`
	OverallScore *float64  `json:"overallScore"`
	ID           string    `json:"id"`
}

// Aggregates holds windowed averages over the snapshot's record set.
// An average is nil when no record carried a numeric value for the field.
type Aggregates struct {
	Count               int      `json:"count"`
	AvgOverall          *float64 `json:"avgOverall"`
	AvgEmpathy          *float64 `json:"avgEmpathy"`
	AvgClarity          *float64 `json:"avgClarity"`
	AvgProductKnowledge *float64 `json:"avgProductKnowledge"`
}

// Bucket is one hour or day of evaluations reduced to averages.
type Bucket struct {
	Start               time.Time `json:"ts"`
	Count               int       `json:"count"`
	AvgOverall          *float64  `json:"avgOverall"`
	AvgEmpathy          *float64  `json:"avgEmpathy"`
	AvgClarity          *float64  `json:"avgClarity"`
	AvgProductKnowledge *float64  `json:"avgProductKnowledge"`
}

// AnalyticsSnapshot is the full output of one aggregation pass: the same
// record window reduced three ways.
type AnalyticsSnapshot struct {
	Aggregates Aggregates        `json:"aggregates"`
	TimeSeries []TimeSeriesPoint `json:"timeSeries"`
	Buckets    []Bucket          `json:"buckets"`
}
