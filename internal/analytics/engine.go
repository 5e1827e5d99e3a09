// Package analytics reduces a window of stored evaluations into dashboard
// aggregates. The engine is a pure read-then-reduce: no store access, no
// wall-clock dependency, identical output for identical input.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/models"
)

type Engine struct {
	logger *zerolog.Logger
}

func NewEngine(logger *zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// ParseGranularity maps a query value onto a bucket granularity, defaulting
// to day for anything unrecognized.
func ParseGranularity(s string) models.Granularity {
	if s == string(models.GranularityHour) {
		return models.GranularityHour
	}
	return models.GranularityDay
}

// Snapshot computes the time series, windowed averages, and time buckets from
// one record set in a single pass. Records are expected newest-first (the
// store's query order); the time series comes back oldest-first. All bucket
// keys are truncated in UTC.
func (e *Engine) Snapshot(records []models.Evaluation, granularity models.Granularity) models.AnalyticsSnapshot {
	timeSeries := make([]models.TimeSeriesPoint, 0, len(records))
	total := newAccumulator()
	buckets := map[time.Time]*accumulator{}

	// Reverse iteration turns the descending query order into a
	// chronologically ascending series.
	for i := len(records) - 1; i >= 0; i-- {
		record := &records[i]

		timeSeries = append(timeSeries, models.TimeSeriesPoint{
			Timestamp:    record.CreatedAt,
			OverallScore: overallOf(record),
			ID:           record.ID,
		})

		total.add(record)

		start := bucketStart(record.CreatedAt, granularity)
		acc, ok := buckets[start]
		if !ok {
			acc = newAccumulator()
			buckets[start] = acc
		}
		acc.add(record)
	}

	starts := make([]time.Time, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	bucketRows := make([]models.Bucket, 0, len(starts))
	for _, start := range starts {
		acc := buckets[start]
		avgOverall, avgEmpathy, avgClarity, avgProduct := acc.averages()
		bucketRows = append(bucketRows, models.Bucket{
			Start:               start,
			Count:               acc.count,
			AvgOverall:          avgOverall,
			AvgEmpathy:          avgEmpathy,
			AvgClarity:          avgClarity,
			AvgProductKnowledge: avgProduct,
		})
	}

	avgOverall, avgEmpathy, avgClarity, avgProduct := total.averages()
	snapshot := models.AnalyticsSnapshot{
		Aggregates: models.Aggregates{
			Count:               total.count,
			AvgOverall:          avgOverall,
			AvgEmpathy:          avgEmpathy,
			AvgClarity:          avgClarity,
			AvgProductKnowledge: avgProduct,
		},
		TimeSeries: timeSeries,
		Buckets:    bucketRows,
	}

	e.logger.Debug().
		Int("records", total.count).
		Int("buckets", len(bucketRows)).
		Str("granularity", string(granularity)).
		Msg("snapshot computed")

	return snapshot
}

// bucketStart truncates a timestamp to the start of its containing hour or
// day, always in UTC so a record never drifts between buckets.
func bucketStart(t time.Time, granularity models.Granularity) time.Time {
	u := t.UTC()
	if granularity == models.GranularityHour {
		return u.Truncate(time.Hour)
	}
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func overallOf(record *models.Evaluation) *float64 {
	if record.Result == nil {
		return nil
	}
	v := record.Result.OverallScore
	return &v
}

// accumulator sums score fields over a record set. Each field keeps its own
// numeric count: a record without a result contributes to count but to no
// field's sum or divisor.
type accumulator struct {
	count      int
	sumOverall float64
	sumEmpathy float64
	sumClarity float64
	sumProduct float64
	numeric    int
}

func newAccumulator() *accumulator {
	return &accumulator{}
}

func (a *accumulator) add(record *models.Evaluation) {
	a.count++
	if record.Result == nil {
		return
	}
	a.numeric++
	a.sumOverall += record.Result.OverallScore
	a.sumEmpathy += record.Result.Scores.Empathy
	a.sumClarity += record.Result.Scores.Clarity
	a.sumProduct += record.Result.Scores.ProductKnowledge
}

func (a *accumulator) averages() (overall, empathy, clarity, product *float64) {
	if a.numeric == 0 {
		return nil, nil, nil, nil
	}
	n := float64(a.numeric)
	return round2(a.sumOverall / n), round2(a.sumEmpathy / n), round2(a.sumClarity / n), round2(a.sumProduct / n)
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}
