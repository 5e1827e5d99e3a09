package batch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/salesdojo/roleplay-eval/internal/models"
)

type fakeScorer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeScorer) Evaluate(ctx context.Context, transcriptText string, userID string) (*models.Evaluation, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	return &models.Evaluation{
		ID:           "id",
		UserID:       userID,
		RoleplayText: transcriptText,
		Result: &models.ScoreResult{
			OverallScore: 7,
			Scores:       models.Scores{Empathy: 7, Clarity: 7, ProductKnowledge: 7},
			Feedback:     models.Feedback{Summary: "ok"},
		},
	}, nil
}

func TestProcessor_ScoresAllRecords(t *testing.T) {
	scorer := &fakeScorer{}
	processor := NewProcessor(scorer, 3, newTestLogger())

	records := []InputRecord{
		{LineNumber: 1, Request: models.EvaluateRequest{RoleplayText: "a"}},
		{LineNumber: 2, Request: models.EvaluateRequest{RoleplayText: "b"}},
		{LineNumber: 3, Request: models.EvaluateRequest{RoleplayText: "c"}},
	}

	count := 0
	for result := range processor.Process(context.Background(), records) {
		count++
		if result.Err != nil {
			t.Errorf("unexpected error on line %d: %v", result.LineNumber, result.Err)
		}
		if result.Evaluation == nil {
			t.Errorf("missing evaluation on line %d", result.LineNumber)
		}
	}

	if count != 3 {
		t.Errorf("expected 3 results, got %d", count)
	}
	if scorer.calls != 3 {
		t.Errorf("expected 3 scorer calls, got %d", scorer.calls)
	}
}

func TestProcessor_PassesThroughParseErrors(t *testing.T) {
	scorer := &fakeScorer{}
	processor := NewProcessor(scorer, 2, newTestLogger())

	records := []InputRecord{
		{LineNumber: 1, Error: errors.New("line 1: bad json")},
		{LineNumber: 2, Request: models.EvaluateRequest{RoleplayText: "ok"}},
	}

	failed := 0
	succeeded := 0
	for result := range processor.Process(context.Background(), records) {
		if result.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}

	if failed != 1 || succeeded != 1 {
		t.Errorf("expected 1 failed and 1 succeeded, got %d/%d", failed, succeeded)
	}
	if scorer.calls != 1 {
		t.Errorf("parse-error records must not be scored; scorer called %d times", scorer.calls)
	}
}

func TestProcessor_PropagatesScoringErrors(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("completion failed")}
	processor := NewProcessor(scorer, 1, newTestLogger())

	records := []InputRecord{
		{LineNumber: 1, Request: models.EvaluateRequest{RoleplayText: "a"}},
	}

	for result := range processor.Process(context.Background(), records) {
		if result.Err == nil {
			t.Error("expected scoring error to propagate")
		}
	}
}
