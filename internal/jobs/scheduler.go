package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/services"
	"github.com/yungbote/eventjudge-backend/internal/utils"
)

// Scheduler enqueues the recurring sweeps: the daily snapshot over active
// events and the cache/token cleanup.
type Scheduler struct {
	log      *logger.Logger
	queue    *Queue
	interval time.Duration
}

func NewScheduler(baseLog *logger.Logger, queue *Queue) *Scheduler {
	log := baseLog.With("component", "JobScheduler")
	hours := utils.GetEnvAsInt("SCHEDULER_INTERVAL_HOURS", 24, log)
	if hours < 1 {
		hours = 24
	}
	return &Scheduler{
		log:      log,
		queue:    queue,
		interval: time.Duration(hours) * time.Hour,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("Starting scheduler", "interval", s.interval.String())

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.log.Info("Scheduler stopped")
				return
			case <-ticker.C:
				s.queue.Enqueue(services.TaskDailySnapshot, uuid.Nil)
				s.queue.Enqueue(services.TaskCleanupStatistics, uuid.Nil)
			}
		}
	}()
}
