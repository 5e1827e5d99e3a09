package analytics

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/models"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func record(id string, createdAt time.Time, overall, empathy, clarity, product float64) models.Evaluation {
	return models.Evaluation{
		ID:        id,
		CreatedAt: createdAt,
		Result: &models.ScoreResult{
			OverallScore: overall,
			Scores: models.Scores{
				Empathy:          empathy,
				Clarity:          clarity,
				ProductKnowledge: product,
			},
			Feedback: models.Feedback{Summary: "ok"},
		},
	}
}

func TestSnapshot_Empty(t *testing.T) {
	engine := NewEngine(newTestLogger())

	snapshot := engine.Snapshot(nil, models.GranularityDay)

	if snapshot.Aggregates.Count != 0 {
		t.Errorf("expected count 0, got %d", snapshot.Aggregates.Count)
	}
	if snapshot.Aggregates.AvgOverall != nil || snapshot.Aggregates.AvgEmpathy != nil ||
		snapshot.Aggregates.AvgClarity != nil || snapshot.Aggregates.AvgProductKnowledge != nil {
		t.Error("expected all averages nil for empty input")
	}
	if len(snapshot.TimeSeries) != 0 {
		t.Errorf("expected empty time series, got %d points", len(snapshot.TimeSeries))
	}
	if len(snapshot.Buckets) != 0 {
		t.Errorf("expected no buckets, got %d", len(snapshot.Buckets))
	}
}

func TestSnapshot_Averages(t *testing.T) {
	engine := NewEngine(newTestLogger())
	base := time.Date(2025, 11, 23, 10, 0, 0, 0, time.UTC)

	// Descending order, like the store query.
	records := []models.Evaluation{
		record("c", base.Add(2*time.Hour), 10, 9, 10, 10),
		record("b", base.Add(time.Hour), 6, 6, 5, 7),
		record("a", base, 8, 9, 9, 7),
	}

	snapshot := engine.Snapshot(records, models.GranularityDay)

	if snapshot.Aggregates.Count != 3 {
		t.Fatalf("expected count 3, got %d", snapshot.Aggregates.Count)
	}
	if got := *snapshot.Aggregates.AvgOverall; got != 8.00 {
		t.Errorf("expected avgOverall 8.00, got %v", got)
	}
	if got := *snapshot.Aggregates.AvgEmpathy; got != 8.00 {
		t.Errorf("expected avgEmpathy 8.00, got %v", got)
	}
	if got := *snapshot.Aggregates.AvgClarity; got != 8.00 {
		t.Errorf("expected avgClarity 8.00, got %v", got)
	}
	if got := *snapshot.Aggregates.AvgProductKnowledge; got != 8.00 {
		t.Errorf("expected avgProductKnowledge 8.00, got %v", got)
	}
}

func TestSnapshot_AveragesRounded(t *testing.T) {
	engine := NewEngine(newTestLogger())
	base := time.Date(2025, 11, 23, 10, 0, 0, 0, time.UTC)

	records := []models.Evaluation{
		record("b", base.Add(time.Hour), 7, 7, 7, 7),
		record("a", base, 6, 6, 6, 6),
	}

	snapshot := engine.Snapshot(records, models.GranularityDay)

	if got := *snapshot.Aggregates.AvgOverall; got != 6.5 {
		t.Errorf("expected avgOverall 6.5, got %v", got)
	}

	// 7+6+6 over three records: 6.333... rounds to 6.33.
	records = append(records, record("c", base.Add(2*time.Hour), 6, 6, 6, 6))
	snapshot = engine.Snapshot(records, models.GranularityDay)
	if got := *snapshot.Aggregates.AvgOverall; got != 6.33 {
		t.Errorf("expected avgOverall 6.33, got %v", got)
	}
}

func TestSnapshot_TimeSeriesAscending(t *testing.T) {
	engine := NewEngine(newTestLogger())
	base := time.Date(2025, 11, 23, 10, 0, 0, 0, time.UTC)

	records := []models.Evaluation{
		record("newest", base.Add(2*time.Hour), 9, 9, 9, 9),
		record("middle", base.Add(time.Hour), 8, 8, 8, 8),
		record("oldest", base, 7, 7, 7, 7),
	}

	snapshot := engine.Snapshot(records, models.GranularityDay)

	if len(snapshot.TimeSeries) != 3 {
		t.Fatalf("expected 3 points, got %d", len(snapshot.TimeSeries))
	}
	if snapshot.TimeSeries[0].ID != "oldest" || snapshot.TimeSeries[2].ID != "newest" {
		t.Errorf("time series not chronologically ascending: %v", snapshot.TimeSeries)
	}
	for i := 1; i < len(snapshot.TimeSeries); i++ {
		if snapshot.TimeSeries[i].Timestamp.Before(snapshot.TimeSeries[i-1].Timestamp) {
			t.Error("time series timestamps not ascending")
		}
	}
}

func TestSnapshot_HourBuckets(t *testing.T) {
	engine := NewEngine(newTestLogger())

	records := []models.Evaluation{
		record("b", time.Date(2025, 11, 23, 14, 50, 0, 0, time.UTC), 6, 6, 6, 6),
		record("a", time.Date(2025, 11, 23, 14, 10, 0, 0, time.UTC), 8, 8, 8, 8),
	}

	snapshot := engine.Snapshot(records, models.GranularityHour)

	if len(snapshot.Buckets) != 1 {
		t.Fatalf("expected 1 hour bucket, got %d", len(snapshot.Buckets))
	}

	bucket := snapshot.Buckets[0]
	want := time.Date(2025, 11, 23, 14, 0, 0, 0, time.UTC)
	if !bucket.Start.Equal(want) {
		t.Errorf("expected bucket start %v, got %v", want, bucket.Start)
	}
	if bucket.Count != 2 {
		t.Errorf("expected bucket count 2, got %d", bucket.Count)
	}
	if got := *bucket.AvgOverall; got != 7.00 {
		t.Errorf("expected bucket avgOverall 7.00, got %v", got)
	}
}

func TestSnapshot_DayBucketBoundary(t *testing.T) {
	engine := NewEngine(newTestLogger())

	records := []models.Evaluation{
		record("b", time.Date(2025, 11, 24, 0, 1, 0, 0, time.UTC), 6, 6, 6, 6),
		record("a", time.Date(2025, 11, 23, 23, 59, 0, 0, time.UTC), 8, 8, 8, 8),
	}

	snapshot := engine.Snapshot(records, models.GranularityDay)

	if len(snapshot.Buckets) != 2 {
		t.Fatalf("expected 2 day buckets across midnight, got %d", len(snapshot.Buckets))
	}
	if !snapshot.Buckets[0].Start.Equal(time.Date(2025, 11, 23, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected first bucket start %v", snapshot.Buckets[0].Start)
	}
	if !snapshot.Buckets[1].Start.Equal(time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected second bucket start %v", snapshot.Buckets[1].Start)
	}
	if !snapshot.Buckets[0].Start.Before(snapshot.Buckets[1].Start) {
		t.Error("buckets not sorted ascending by start time")
	}
}

func TestSnapshot_BucketsUseUTC(t *testing.T) {
	engine := NewEngine(newTestLogger())
	offset := time.FixedZone("UTC+5", 5*60*60)

	// 02:30 local on Nov 24 is 21:30 UTC on Nov 23.
	records := []models.Evaluation{
		record("a", time.Date(2025, 11, 24, 2, 30, 0, 0, offset), 8, 8, 8, 8),
	}

	snapshot := engine.Snapshot(records, models.GranularityDay)

	want := time.Date(2025, 11, 23, 0, 0, 0, 0, time.UTC)
	if !snapshot.Buckets[0].Start.Equal(want) {
		t.Errorf("expected UTC day bucket %v, got %v", want, snapshot.Buckets[0].Start)
	}
}

func TestSnapshot_MissingResult(t *testing.T) {
	engine := NewEngine(newTestLogger())
	base := time.Date(2025, 11, 23, 10, 0, 0, 0, time.UTC)

	records := []models.Evaluation{
		record("b", base.Add(time.Hour), 8, 8, 8, 8),
		{ID: "a", CreatedAt: base}, // no result
	}

	snapshot := engine.Snapshot(records, models.GranularityDay)

	if snapshot.Aggregates.Count != 2 {
		t.Errorf("expected count 2, got %d", snapshot.Aggregates.Count)
	}
	// The resultless record must not drag the average down.
	if got := *snapshot.Aggregates.AvgOverall; got != 8.00 {
		t.Errorf("expected avgOverall 8.00, got %v", got)
	}
	if snapshot.TimeSeries[0].OverallScore != nil {
		t.Error("expected nil overallScore for resultless record")
	}
	if snapshot.TimeSeries[1].OverallScore == nil {
		t.Error("expected numeric overallScore for scored record")
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	engine := NewEngine(newTestLogger())
	base := time.Date(2025, 11, 23, 10, 0, 0, 0, time.UTC)

	records := []models.Evaluation{
		record("c", base.Add(26*time.Hour), 9, 8, 7, 6),
		record("b", base.Add(time.Hour), 5, 5, 5, 5),
		record("a", base, 7, 7, 8, 8),
	}

	first := engine.Snapshot(records, models.GranularityHour)
	second := engine.Snapshot(records, models.GranularityHour)

	if len(first.Buckets) != len(second.Buckets) {
		t.Fatal("bucket counts differ between runs")
	}
	for i := range first.Buckets {
		if !first.Buckets[i].Start.Equal(second.Buckets[i].Start) || first.Buckets[i].Count != second.Buckets[i].Count {
			t.Errorf("bucket %d differs between runs", i)
		}
	}
}
