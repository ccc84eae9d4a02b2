package app

import (
	httpH "github.com/yungbote/eventjudge-backend/internal/http/handlers"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth       *httpH.AuthHandler
	Rating     *httpH.RatingHandler
	Statistics *httpH.StatisticsHandler
	Summary    *httpH.SummaryHandler
	Evaluation *httpH.EvaluationHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       httpH.NewAuthHandler(s.Auth),
		Rating:     httpH.NewRatingHandler(s.Rating, s.Access),
		Statistics: httpH.NewStatisticsHandler(s.Statistics, s.Access),
		Summary:    httpH.NewSummaryHandler(s.Summary, s.Access),
		Evaluation: httpH.NewEvaluationHandler(s.Evaluation, s.Access),
		Health:     httpH.NewHealthHandler(),
	}
}
