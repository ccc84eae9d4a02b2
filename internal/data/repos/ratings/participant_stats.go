package ratings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type ParticipantStatisticsRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, stats *types.ParticipantStatistics) (*types.ParticipantStatistics, error)
	GetByEventAndParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) (*types.ParticipantStatistics, error)
	ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.ParticipantStatistics, error)
	ListRankedByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, limit int) ([]*types.ParticipantStatistics, error)
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error
	DeleteByEventAndParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) error
}

type participantStatisticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParticipantStatisticsRepo(db *gorm.DB, baseLog *logger.Logger) ParticipantStatisticsRepo {
	repoLog := baseLog.With("repo", "ParticipantStatisticsRepo")
	return &participantStatisticsRepo{db: db, log: repoLog}
}

func (psr *participantStatisticsRepo) Upsert(ctx context.Context, tx *gorm.DB, stats *types.ParticipantStatistics) (*types.ParticipantStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "event_id"}, {Name: "participant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"final_score",
				"average_score",
				"session_scores_count",
				"most_popular_grades",
				"calculated_at",
			}),
		}).
		Create(stats).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (psr *participantStatisticsRepo) GetByEventAndParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) (*types.ParticipantStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	var result types.ParticipantStatistics

	if err := transaction.WithContext(ctx).
		Where("event_id = ? AND participant_id = ?", eventID, participantID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (psr *participantStatisticsRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.ParticipantStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	var results []*types.ParticipantStatistics

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// ListRankedByEvent orders by five_point average, then final score, both
// descending with NULLs last, so unrated participants sink to the bottom.
func (psr *participantStatisticsRepo) ListRankedByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, limit int) ([]*types.ParticipantStatistics, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	var results []*types.ParticipantStatistics

	q := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("average_score DESC NULLS LAST").
		Order("final_score DESC NULLS LAST")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (psr *participantStatisticsRepo) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	return transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&types.ParticipantStatistics{}).Error
}

func (psr *participantStatisticsRepo) DeleteByEventAndParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	return transaction.WithContext(ctx).
		Where("event_id = ? AND participant_id = ?", eventID, participantID).
		Delete(&types.ParticipantStatistics{}).Error
}
