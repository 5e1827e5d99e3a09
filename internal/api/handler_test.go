package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/analytics"
	"github.com/salesdojo/roleplay-eval/internal/api"
	"github.com/salesdojo/roleplay-eval/internal/api/middleware"
	"github.com/salesdojo/roleplay-eval/internal/config"
	"github.com/salesdojo/roleplay-eval/internal/evaluator"
	"github.com/salesdojo/roleplay-eval/internal/models"
	"github.com/salesdojo/roleplay-eval/internal/store"
)

type fakeScorer struct {
	record *models.Evaluation
	err    error
}

func (f *fakeScorer) Evaluate(ctx context.Context, transcriptText string, userID string) (*models.Evaluation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

type fakeStore struct {
	records []models.Evaluation
	byID    map[string]*models.Evaluation
}

func (f *fakeStore) CreateEvaluation(ctx context.Context, record *models.Evaluation) (*models.Evaluation, error) {
	return record, nil
}

func (f *fakeStore) FindEvaluations(ctx context.Context, filter store.Filter, limit int) ([]models.Evaluation, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func (f *fakeStore) FindEvaluationByID(ctx context.Context, id string) (*models.Evaluation, error) {
	if record, ok := f.byID[id]; ok {
		return record, nil
	}
	return nil, store.ErrNotFound
}

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MaxTranscriptChars:      8000,
		AnalyticsDefaultLimit:   50,
		AnalyticsMaxLimit:       200,
		EvaluationsDefaultLimit: 20,
		DefaultGranularity:      "day",
	}
}

func setupTestAPI(t *testing.T, scorer api.Scorer, st store.Store) *restful.Container {
	t.Helper()

	logger := zerolog.Nop()
	engine := analytics.NewEngine(&logger)

	handler := api.NewHandler(scorer, st, engine, testLimits(), &logger)
	container := restful.NewContainer()
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)

	return container
}

func scoredRecord(id string, createdAt time.Time, overall float64) models.Evaluation {
	return models.Evaluation{
		ID:           id,
		UserID:       "user-1",
		RoleplayText: "transcript",
		ModelName:    "fake:test-model",
		CreatedAt:    createdAt,
		Result: &models.ScoreResult{
			OverallScore: overall,
			Scores:       models.Scores{Empathy: overall, Clarity: overall, ProductKnowledge: overall},
			Feedback:     models.Feedback{Summary: "ok", Strengths: []string{}, AreasForImprovement: []string{}},
		},
	}
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t, &fakeScorer{}, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_Evaluate_Success(t *testing.T) {
	record := scoredRecord("656f00000000000000000001", time.Date(2025, 11, 23, 14, 0, 0, 0, time.UTC), 8)
	container := setupTestAPI(t, &fakeScorer{record: &record}, &fakeStore{})

	body, _ := json.Marshal(models.EvaluateRequest{RoleplayText: "Customer: hi", UserID: "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var result models.Evaluation
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.ID != record.ID {
		t.Errorf("Expected id %s, got %s", record.ID, result.ID)
	}
	if result.Result == nil || result.Result.OverallScore != 8 {
		t.Errorf("Unexpected result payload: %+v", result.Result)
	}
}

func TestAPI_Evaluate_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		kind   evaluator.FailureKind
		status int
	}{
		{"invalid input", evaluator.KindInvalidInput, http.StatusBadRequest},
		{"completion failed", evaluator.KindCompletionFailed, http.StatusBadGateway},
		{"malformed output", evaluator.KindMalformedOutput, http.StatusBadGateway},
		{"schema violation", evaluator.KindSchemaViolation, http.StatusBadGateway},
		{"storage failed", evaluator.KindStorageFailed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := &fakeScorer{err: &evaluator.Error{Kind: tc.kind, Message: tc.name}}
			container := setupTestAPI(t, scorer, &fakeStore{})

			body, _ := json.Marshal(models.EvaluateRequest{RoleplayText: "text"})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			container.ServeHTTP(recorder, req)

			if recorder.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, recorder.Code)
			}

			var response middleware.ErrorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to parse error response: %v", err)
			}
			if response.Success {
				t.Error("Expected success=false in error envelope")
			}
		})
	}
}

func TestAPI_ListEvaluations(t *testing.T) {
	base := time.Date(2025, 11, 23, 10, 0, 0, 0, time.UTC)
	st := &fakeStore{
		records: []models.Evaluation{
			scoredRecord("b", base.Add(time.Hour), 10),
			scoredRecord("a", base, 6),
		},
	}
	container := setupTestAPI(t, &fakeScorer{}, st)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/evaluations?userId=user-1", nil)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var response api.EvaluationsResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Meta.Count != 2 {
		t.Errorf("Expected meta count 2, got %d", response.Meta.Count)
	}
	if response.Meta.AvgOverall == nil || *response.Meta.AvgOverall != 8.00 {
		t.Errorf("Expected avgOverall 8.00, got %v", response.Meta.AvgOverall)
	}
	if len(response.Data) != 2 || response.Data[0].ID != "b" {
		t.Errorf("Unexpected listing: %+v", response.Data)
	}
}

func TestAPI_Analytics(t *testing.T) {
	st := &fakeStore{
		records: []models.Evaluation{
			scoredRecord("b", time.Date(2025, 11, 23, 14, 50, 0, 0, time.UTC), 6),
			scoredRecord("a", time.Date(2025, 11, 23, 14, 10, 0, 0, time.UTC), 8),
		},
	}
	container := setupTestAPI(t, &fakeScorer{}, st)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics?groupBy=hour", nil)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var snapshot models.AnalyticsSnapshot
	if err := json.Unmarshal(recorder.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(snapshot.Buckets) != 1 || snapshot.Buckets[0].Count != 2 {
		t.Errorf("Unexpected buckets: %+v", snapshot.Buckets)
	}
	if len(snapshot.TimeSeries) != 2 || snapshot.TimeSeries[0].ID != "a" {
		t.Errorf("Expected ascending time series, got %+v", snapshot.TimeSeries)
	}
}

func TestAPI_Replay(t *testing.T) {
	record := scoredRecord("656f00000000000000000001", time.Date(2025, 11, 23, 14, 0, 0, 0, time.UTC), 8)
	st := &fakeStore{byID: map[string]*models.Evaluation{record.ID: &record}}
	container := setupTestAPI(t, &fakeScorer{}, st)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/evaluations/"+record.ID+"/replay", nil)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var response api.ReplayResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.RoleplayText != "transcript" {
		t.Errorf("Expected transcript in replay, got %q", response.RoleplayText)
	}
}

func TestAPI_Replay_NotFound(t *testing.T) {
	container := setupTestAPI(t, &fakeScorer{}, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/evaluations/does-not-exist/replay", nil)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", recorder.Code)
	}
}
