package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/cache"
	"github.com/yungbote/eventjudge-backend/internal/jobs"
	"github.com/yungbote/eventjudge-backend/internal/observability"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Access     services.AccessService
	Rating     services.RatingService
	Statistics services.StatisticsService
	Summary    services.SummaryService
	Evaluation services.EvaluationService

	Cache     cache.Cache
	JobQueue  *jobs.Queue
	Scheduler *jobs.Scheduler
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	var processCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(log, cfg.RedisAddr)
		if err != nil {
			return Services{}, fmt.Errorf("init redis cache: %w", err)
		}
		processCache = redisCache
	} else {
		processCache = cache.NewMemoryCache()
	}

	authService := services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	accessService := services.NewAccessService(db, log, r.Event, r.EventParticipant, r.Session, r.ProjectWork)

	ratingService := services.NewRatingService(db, log, metrics,
		r.Event, r.EventParticipant, r.Session,
		r.Rating, r.ParticipantStatistics, r.EventStatistics,
	)
	statisticsService := services.NewStatisticsService(db, log, ratingService,
		r.EventParticipant, r.Session,
		r.Rating, r.ParticipantStatistics, r.EventStatistics,
	)
	summaryService := services.NewSummaryService(db, log, metrics, processCache, cfg.SummaryCacheTTL,
		r.Event, r.EventParticipant, r.Rating,
		r.ProjectWork, r.EvaluationCriteria, r.Evaluation,
		r.JudgeWeight, r.CachedStatistic, r.StatisticSnapshot,
	)

	registry := jobs.NewRegistry()
	queue := jobs.NewQueue(log, metrics, registry)
	jobs.RegisterTasks(registry, log, summaryService, r.CachedStatistic, r.StatisticSnapshot, r.UserToken)
	scheduler := jobs.NewScheduler(log, queue)

	evaluationService := services.NewEvaluationService(db, log, queue,
		r.EventParticipant, r.ProjectWork, r.EvaluationCriteria, r.Evaluation,
	)

	return Services{
		Auth:       authService,
		Access:     accessService,
		Rating:     ratingService,
		Statistics: statisticsService,
		Summary:    summaryService,
		Evaluation: evaluationService,

		Cache:     processCache,
		JobQueue:  queue,
		Scheduler: scheduler,
	}, nil
}
