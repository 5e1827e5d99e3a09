package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/salesdojo/roleplay-eval/internal/api/middleware"
	"github.com/salesdojo/roleplay-eval/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/evaluate").
			To(handler.Evaluate).
			Doc("Score a roleplay transcript").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluate"}).
			Reads(models.EvaluateRequest{}).
			Writes(models.Evaluation{}).
			Returns(200, "OK", models.Evaluation{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Upstream Model Failure", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/evaluations").
			To(handler.ListEvaluations).
			Doc("List recent evaluations with window averages").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluations"}).
			Param(ws.QueryParameter("userId", "Filter by user").DataType("string").Required(false)).
			Param(ws.QueryParameter("limit", "Most-recent window size (default: 20)").DataType("integer").Required(false)).
			Writes(EvaluationsResponse{}).
			Returns(200, "OK", EvaluationsResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/analytics").
			To(handler.Analytics).
			Doc("Time series, averages, and time buckets over recent evaluations").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analytics"}).
			Param(ws.QueryParameter("userId", "Filter by user").DataType("string").Required(false)).
			Param(ws.QueryParameter("limit", "Most-recent window size (default: 50, max: 200)").DataType("integer").Required(false)).
			Param(ws.QueryParameter("groupBy", "Bucket granularity: day or hour (default: day)").DataType("string").Required(false)).
			Writes(models.AnalyticsSnapshot{}).
			Returns(200, "OK", models.AnalyticsSnapshot{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/evaluations/{id}/replay").
			To(handler.Replay).
			Doc("Fetch the original transcript for session replay").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluations"}).
			Param(ws.PathParameter("id", "Evaluation id").DataType("string")).
			Writes(ReplayResponse{}).
			Returns(200, "OK", ReplayResponse{}).
			Returns(404, "Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
