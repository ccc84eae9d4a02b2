package jobs

import (
	"context"
	"time"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

const snapshotRetention = 90 * 24 * time.Hour

// RegisterTasks wires the statistics follow-up tasks into the registry.
func RegisterTasks(
	registry *Registry,
	baseLog *logger.Logger,
	summaryService services.SummaryService,
	cachedRepo repos.CachedStatisticRepo,
	snapshotRepo repos.StatisticSnapshotRepo,
	userTokenRepo repos.UserTokenRepo,
) {
	log := baseLog.With("component", "JobTasks")

	registry.Register(services.TaskProcessNewEvaluation, func(ctx context.Context, task Task) error {
		return summaryService.ProcessNewEvaluation(ctx, task.EventID)
	})

	registry.Register(services.TaskDailySnapshot, func(ctx context.Context, task Task) error {
		return summaryService.SnapshotSweep(ctx)
	})

	registry.Register(services.TaskCleanupStatistics, func(ctx context.Context, task Task) error {
		now := time.Now()

		expired, err := cachedRepo.DeleteExpired(ctx, nil, now)
		if err != nil {
			return err
		}
		tokens, err := userTokenRepo.DeleteExpired(ctx, nil, now)
		if err != nil {
			return err
		}
		snapshots, err := snapshotRepo.DeleteTakenBefore(ctx, nil, now.Add(-snapshotRetention))
		if err != nil {
			return err
		}

		log.Info("Statistics cleanup completed",
			"expired_cache_rows", expired,
			"expired_tokens", tokens,
			"old_snapshots", snapshots,
		)
		return nil
	})
}
