package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/analytics"
	"github.com/salesdojo/roleplay-eval/internal/api/middleware"
	"github.com/salesdojo/roleplay-eval/internal/config"
	"github.com/salesdojo/roleplay-eval/internal/evaluator"
	"github.com/salesdojo/roleplay-eval/internal/models"
	"github.com/salesdojo/roleplay-eval/internal/store"
)

// Scorer runs the evaluation pipeline for one transcript.
type Scorer interface {
	Evaluate(ctx context.Context, transcriptText string, userID string) (*models.Evaluation, error)
}

type Handler struct {
	scorer Scorer
	store  store.Store
	engine *analytics.Engine
	limits config.LimitsConfig
	logger *zerolog.Logger
}

func NewHandler(scorer Scorer, st store.Store, engine *analytics.Engine, limits config.LimitsConfig, logger *zerolog.Logger) *Handler {
	return &Handler{
		scorer: scorer,
		store:  st,
		engine: engine,
		limits: limits,
		logger: logger,
	}
}

// POST /api/v1/evaluate
// Body: EvaluateRequest
// Returns: models.Evaluation
func (h *Handler) Evaluate(req *restful.Request, resp *restful.Response) {
	var evalRequest models.EvaluateRequest
	if err := req.ReadEntity(&evalRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("user_id", evalRequest.UserID).
		Int("transcript_chars", len(evalRequest.RoleplayText)).
		Msg("Start evaluation")

	ctx := req.Request.Context()

	record, err := h.scorer.Evaluate(ctx, evalRequest.RoleplayText, evalRequest.UserID)
	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	h.logger.Info().
		Str("id", record.ID).
		Float64("overallScore", record.Result.OverallScore).
		Msg("Evaluation complete")

	_ = resp.WriteHeaderAndEntity(http.StatusOK, record)
}

// GET /api/v1/evaluations?userId=&limit=
// Recent evaluations plus averages over the same window.
func (h *Handler) ListEvaluations(req *restful.Request, resp *restful.Response) {
	userID := req.QueryParameter("userId")
	limit := h.parseLimit(req.QueryParameter("limit"), h.limits.EvaluationsDefaultLimit, h.limits.AnalyticsMaxLimit)

	ctx := req.Request.Context()

	records, err := h.store.FindEvaluations(ctx, store.Filter{UserID: userID}, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load evaluations")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	snapshot := h.engine.Snapshot(records, models.GranularityDay)

	data := make([]EvaluationSummary, 0, len(records))
	for i := range records {
		record := &records[i]
		summary := EvaluationSummary{
			ID:        record.ID,
			UserID:    record.UserID,
			CreatedAt: record.CreatedAt,
		}
		if record.Result != nil {
			score := record.Result.OverallScore
			scores := record.Result.Scores
			summary.OverallScore = &score
			summary.Scores = &scores
		}
		data = append(data, summary)
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, EvaluationsResponse{
		Meta: snapshot.Aggregates,
		Data: data,
	})
}

// GET /api/v1/analytics?userId=&limit=&groupBy=
func (h *Handler) Analytics(req *restful.Request, resp *restful.Response) {
	userID := req.QueryParameter("userId")
	limit := h.parseLimit(req.QueryParameter("limit"), h.limits.AnalyticsDefaultLimit, h.limits.AnalyticsMaxLimit)
	granularity := analytics.ParseGranularity(req.QueryParameter("groupBy"))

	ctx := req.Request.Context()

	records, err := h.store.FindEvaluations(ctx, store.Filter{UserID: userID}, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load evaluations for analytics")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	snapshot := h.engine.Snapshot(records, granularity)

	_ = resp.WriteHeaderAndEntity(http.StatusOK, snapshot)
}

// GET /api/v1/evaluations/{id}/replay
func (h *Handler) Replay(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("id")

	ctx := req.Request.Context()

	record, err := h.store.FindEvaluationByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to load replay")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, ReplayResponse{
		ID:           record.ID,
		UserID:       record.UserID,
		CreatedAt:    record.CreatedAt,
		RoleplayText: record.RoleplayText,
	})
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	_ = resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}

// statusFor maps pipeline failure kinds onto HTTP status codes. Upstream
// model trouble is a bad gateway, not our fault and not the caller's.
func statusFor(err error) int {
	kind, ok := evaluator.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch kind {
	case evaluator.KindInvalidInput:
		return http.StatusBadRequest
	case evaluator.KindCompletionFailed, evaluator.KindMalformedOutput, evaluator.KindSchemaViolation:
		return http.StatusBadGateway
	case evaluator.KindStorageFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) parseLimit(raw string, fallback, max int) int {
	limit := fallback
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		} else {
			h.logger.Warn().Str("limit", raw).Int("fallback", fallback).Msg("Invalid limit, using default")
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}
