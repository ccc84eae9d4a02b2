package ratings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type EventStatisticsRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, stats *types.EventStatistics) (*types.EventStatistics, error)
	GetByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.EventStatistics, error)
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error
}

type eventStatisticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventStatisticsRepo(db *gorm.DB, baseLog *logger.Logger) EventStatisticsRepo {
	repoLog := baseLog.With("repo", "EventStatisticsRepo")
	return &eventStatisticsRepo{db: db, log: repoLog}
}

func (esr *eventStatisticsRepo) Upsert(ctx context.Context, tx *gorm.DB, stats *types.EventStatistics) (*types.EventStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = esr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"average_score",
				"total_participants_rated",
				"total_ratings_given",
				"count_grade_5_total",
				"count_grade_4_total",
				"count_grade_3_total",
				"count_grade_2_total",
				"count_grade_1_total",
				"count_pass_total",
				"count_fail_total",
				"most_popular_grade_total",
				"session_grade_distribution",
				"session_averages",
				"calculated_at",
			}),
		}).
		Create(stats).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (esr *eventStatisticsRepo) GetByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.EventStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = esr.db
	}

	var result types.EventStatistics

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (esr *eventStatisticsRepo) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = esr.db
	}

	return transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&types.EventStatistics{}).Error
}
