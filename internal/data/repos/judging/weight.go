package judging

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type JudgeWeightRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, weight *types.JudgeWeight) (*types.JudgeWeight, error)
	GetByEventAndJudge(ctx context.Context, tx *gorm.DB, eventID, judgeID uuid.UUID) (*types.JudgeWeight, error)
	ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.JudgeWeight, error)
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error
}

type judgeWeightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJudgeWeightRepo(db *gorm.DB, baseLog *logger.Logger) JudgeWeightRepo {
	repoLog := baseLog.With("repo", "JudgeWeightRepo")
	return &judgeWeightRepo{db: db, log: repoLog}
}

func (jwr *judgeWeightRepo) Upsert(ctx context.Context, tx *gorm.DB, weight *types.JudgeWeight) (*types.JudgeWeight, error) {
	transaction := tx
	if transaction == nil {
		transaction = jwr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "event_id"}, {Name: "judge_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weight",
				"calculation_method",
				"calculated_at",
			}),
		}).
		Create(weight).Error; err != nil {
		return nil, err
	}

	return weight, nil
}

func (jwr *judgeWeightRepo) GetByEventAndJudge(ctx context.Context, tx *gorm.DB, eventID, judgeID uuid.UUID) (*types.JudgeWeight, error) {
	transaction := tx
	if transaction == nil {
		transaction = jwr.db
	}

	var result types.JudgeWeight

	if err := transaction.WithContext(ctx).
		Where("event_id = ? AND judge_id = ?", eventID, judgeID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (jwr *judgeWeightRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.JudgeWeight, error) {
	transaction := tx
	if transaction == nil {
		transaction = jwr.db
	}

	var results []*types.JudgeWeight

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (jwr *judgeWeightRepo) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = jwr.db
	}

	return transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&types.JudgeWeight{}).Error
}
