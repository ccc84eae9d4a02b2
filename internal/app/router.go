package app

import (
	internalhttp "github.com/yungbote/eventjudge-backend/internal/http"
	"github.com/yungbote/eventjudge-backend/internal/observability"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

func wireServer(log *logger.Logger, metrics *observability.Metrics, h Handlers, mw Middleware) *internalhttp.Server {
	log.Info("Wiring router...")
	return internalhttp.NewServer(internalhttp.RouterConfig{
		Log:     log,
		Metrics: metrics,

		AuthMiddleware: mw.Auth,

		AuthHandler:       h.Auth,
		RatingHandler:     h.Rating,
		StatisticsHandler: h.Statistics,
		SummaryHandler:    h.Summary,
		EvaluationHandler: h.Evaluation,
		HealthHandler:     h.Health,
	})
}
