package judging

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type EvaluationCriteriaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, criteria []*types.EvaluationCriteria) ([]*types.EvaluationCriteria, error)
	GetByID(ctx context.Context, tx *gorm.DB, criteriaID uuid.UUID) (*types.EvaluationCriteria, error)
	ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EvaluationCriteria, error)
	ListActiveByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EvaluationCriteria, error)
	SetActive(ctx context.Context, tx *gorm.DB, criteriaID uuid.UUID, active bool) error
}

type evaluationCriteriaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvaluationCriteriaRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationCriteriaRepo {
	repoLog := baseLog.With("repo", "EvaluationCriteriaRepo")
	return &evaluationCriteriaRepo{db: db, log: repoLog}
}

func (ecr *evaluationCriteriaRepo) Create(ctx context.Context, tx *gorm.DB, criteria []*types.EvaluationCriteria) ([]*types.EvaluationCriteria, error) {
	transaction := tx
	if transaction == nil {
		transaction = ecr.db
	}

	if len(criteria) == 0 {
		return []*types.EvaluationCriteria{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&criteria).Error; err != nil {
		return nil, err
	}

	return criteria, nil
}

func (ecr *evaluationCriteriaRepo) GetByID(ctx context.Context, tx *gorm.DB, criteriaID uuid.UUID) (*types.EvaluationCriteria, error) {
	transaction := tx
	if transaction == nil {
		transaction = ecr.db
	}

	var result types.EvaluationCriteria

	if err := transaction.WithContext(ctx).
		Where("id = ?", criteriaID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (ecr *evaluationCriteriaRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EvaluationCriteria, error) {
	transaction := tx
	if transaction == nil {
		transaction = ecr.db
	}

	var results []*types.EvaluationCriteria

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ecr *evaluationCriteriaRepo) ListActiveByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EvaluationCriteria, error) {
	transaction := tx
	if transaction == nil {
		transaction = ecr.db
	}

	var results []*types.EvaluationCriteria

	if err := transaction.WithContext(ctx).
		Where("event_id = ? AND is_active = ?", eventID, true).
		Order("sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ecr *evaluationCriteriaRepo) SetActive(ctx context.Context, tx *gorm.DB, criteriaID uuid.UUID, active bool) error {
	transaction := tx
	if transaction == nil {
		transaction = ecr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.EvaluationCriteria{}).
		Where("id = ?", criteriaID).
		Update("is_active", active).Error
}
