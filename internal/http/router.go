package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/eventjudge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/eventjudge-backend/internal/http/middleware"
	"github.com/yungbote/eventjudge-backend/internal/observability"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler       *httpH.AuthHandler
	RatingHandler     *httpH.RatingHandler
	StatisticsHandler *httpH.StatisticsHandler
	SummaryHandler    *httpH.SummaryHandler
	EvaluationHandler *httpH.EvaluationHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Direct rating track
		stats := protected.Group("/stats")
		{
			if cfg.RatingHandler != nil {
				stats.POST("/rate-participant", cfg.RatingHandler.RateParticipant)
				stats.DELETE("/ratings/:id", cfg.RatingHandler.DeleteRating)
				stats.GET("/event/:event_id/ratings", cfg.RatingHandler.ListEventRatings)
				stats.GET("/event/:event_id/participant/:participant_id/ratings", cfg.RatingHandler.ListParticipantRatings)
			}
			if cfg.StatisticsHandler != nil {
				stats.GET("/event/:event_id/statistics", cfg.StatisticsHandler.EventStatistics)
				stats.POST("/event/:event_id/calculate-statistics", cfg.StatisticsHandler.CalculateEventStatistics)
				stats.GET("/event/:event_id/leaderboard", cfg.StatisticsHandler.Leaderboard)
				stats.GET("/event/:event_id/participants/statistics", cfg.StatisticsHandler.ListParticipantStatistics)
				stats.GET("/event/:event_id/participant/:participant_id/final-score", cfg.StatisticsHandler.ParticipantFinalScore)
				stats.GET("/session/online/:session_id/statistics", cfg.StatisticsHandler.OnlineSessionStatistics)
				stats.GET("/session/offline/:session_id/statistics", cfg.StatisticsHandler.OfflineSessionStatistics)
			}
		}

		// Judged-work track
		statistics := protected.Group("/statistics")
		{
			if cfg.SummaryHandler != nil {
				statistics.GET("/event/:event_id/summary", cfg.SummaryHandler.EventSummary)
				statistics.GET("/event/:event_id/participant-stats", cfg.SummaryHandler.ParticipantStats)
				statistics.GET("/event/:event_id/project-leaderboard", cfg.SummaryHandler.ProjectLeaderboard)
				statistics.POST("/event/:event_id/snapshot", cfg.SummaryHandler.TakeSnapshot)
				statistics.POST("/event/:event_id/invalidate-cache", cfg.SummaryHandler.InvalidateCache)
				statistics.POST("/event/:event_id/judge-weights/recalculate", cfg.SummaryHandler.RecalculateJudgeWeights)
			}
			if cfg.EvaluationHandler != nil {
				statistics.POST("/evaluations", cfg.EvaluationHandler.CreateEvaluation)
				statistics.DELETE("/evaluations/:id", cfg.EvaluationHandler.DeleteEvaluation)
				statistics.GET("/project/:project_id/evaluations", cfg.EvaluationHandler.ListProjectEvaluations)
			}
		}
	}

	return r
}
