package mcpadapter

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/salesdojo/roleplay-eval/internal/analytics"
	"github.com/salesdojo/roleplay-eval/internal/evaluator"
	"github.com/salesdojo/roleplay-eval/internal/models"
	"github.com/salesdojo/roleplay-eval/internal/store"
)

// ScoreInput is the MCP tool input schema (matches HTTP API field names).
type ScoreInput struct {
	RoleplayText string `json:"roleplayText" jsonschema:"sales roleplay transcript to score"`
	UserID       string `json:"userId,omitempty" jsonschema:"optional identifier of the practicing rep"`
}

// AnalyticsInput is the MCP tool input schema for aggregate retrieval.
type AnalyticsInput struct {
	UserID      string `json:"userId,omitempty" jsonschema:"optional filter by rep identifier"`
	Granularity string `json:"granularity,omitempty" jsonschema:"time bucket size: day or hour (default: day)"`
	Limit       int    `json:"limit,omitempty" jsonschema:"number of most recent evaluations to aggregate (default: 50, max: 200)"`
}

// NewScoreHandler returns a tool handler that scores one transcript through
// the full pipeline. Pass the returned function to mcp.AddTool.
func NewScoreHandler(service *evaluator.Service) func(context.Context, *mcp.CallToolRequest, ScoreInput) (*mcp.CallToolResult, *models.Evaluation, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ScoreInput) (*mcp.CallToolResult, *models.Evaluation, error) {
		return ScoreRoleplay(ctx, service, req, input)
	}
}

// ScoreRoleplay runs the scoring pipeline and returns the stored evaluation.
func ScoreRoleplay(
	ctx context.Context,
	service *evaluator.Service,
	req *mcp.CallToolRequest,
	input ScoreInput,
) (*mcp.CallToolResult, *models.Evaluation, error) {
	evaluation, err := service.Evaluate(ctx, input.RoleplayText, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	return nil, evaluation, nil
}

// NewAnalyticsHandler returns a tool handler for score aggregates over the
// most recent evaluations. Pass the returned function to mcp.AddTool.
func NewAnalyticsHandler(st store.Store, engine *analytics.Engine, defaultLimit, maxLimit int) func(context.Context, *mcp.CallToolRequest, AnalyticsInput) (*mcp.CallToolResult, models.AnalyticsSnapshot, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyticsInput) (*mcp.CallToolResult, models.AnalyticsSnapshot, error) {
		return GetAnalytics(ctx, st, engine, req, input, defaultLimit, maxLimit)
	}
}

// GetAnalytics loads the evaluation window and computes the snapshot.
func GetAnalytics(
	ctx context.Context,
	st store.Store,
	engine *analytics.Engine,
	req *mcp.CallToolRequest,
	input AnalyticsInput,
	defaultLimit int,
	maxLimit int,
) (*mcp.CallToolResult, models.AnalyticsSnapshot, error) {
	granularity := analytics.ParseGranularity(input.Granularity)

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	records, err := st.FindEvaluations(ctx, store.Filter{UserID: input.UserID}, limit)
	if err != nil {
		return nil, models.AnalyticsSnapshot{}, fmt.Errorf("loading evaluations: %w", err)
	}

	return nil, engine.Snapshot(records, granularity), nil
}
