package judging

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type EvaluationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, evaluation *types.Evaluation) (*types.Evaluation, error)
	GetByID(ctx context.Context, tx *gorm.DB, evaluationID uuid.UUID) (*types.Evaluation, error)
	Delete(ctx context.Context, tx *gorm.DB, evaluationID uuid.UUID) error
	ListConfirmedByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Evaluation, error)
	ListConfirmedByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.Evaluation, error)
	ListByEventAndJudge(ctx context.Context, tx *gorm.DB, eventID, judgeID uuid.UUID) ([]*types.Evaluation, error)
	Exists(ctx context.Context, tx *gorm.DB, projectID, judgeID, criteriaID uuid.UUID) (bool, error)
	DistinctJudgeIDsByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]uuid.UUID, error)
}

type evaluationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvaluationRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationRepo {
	repoLog := baseLog.With("repo", "EvaluationRepo")
	return &evaluationRepo{db: db, log: repoLog}
}

func (er *evaluationRepo) Create(ctx context.Context, tx *gorm.DB, evaluation *types.Evaluation) (*types.Evaluation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if err := transaction.WithContext(ctx).Create(evaluation).Error; err != nil {
		return nil, err
	}

	return evaluation, nil
}

func (er *evaluationRepo) GetByID(ctx context.Context, tx *gorm.DB, evaluationID uuid.UUID) (*types.Evaluation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.Evaluation

	if err := transaction.WithContext(ctx).
		Preload("Criteria").
		Where("id = ?", evaluationID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (er *evaluationRepo) Delete(ctx context.Context, tx *gorm.DB, evaluationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", evaluationID).
		Delete(&types.Evaluation{}).Error
}

func (er *evaluationRepo) ListConfirmedByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Evaluation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.Evaluation

	if err := transaction.WithContext(ctx).
		Preload("Criteria").
		Where("project_id = ? AND is_confirmed = ?", projectID, true).
		Order("evaluated_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (er *evaluationRepo) ListConfirmedByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.Evaluation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.Evaluation

	if err := transaction.WithContext(ctx).
		Preload("Criteria").
		Joins("JOIN project_work ON project_work.id = evaluation.project_id").
		Where("project_work.event_id = ? AND evaluation.is_confirmed = ?", eventID, true).
		Order("evaluation.evaluated_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// ListByEventAndJudge returns confirmed and unconfirmed evaluations so
// callers can report per-judge confirmation progress.
func (er *evaluationRepo) ListByEventAndJudge(ctx context.Context, tx *gorm.DB, eventID, judgeID uuid.UUID) ([]*types.Evaluation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.Evaluation

	if err := transaction.WithContext(ctx).
		Preload("Criteria").
		Joins("JOIN project_work ON project_work.id = evaluation.project_id").
		Where("project_work.event_id = ? AND evaluation.judge_id = ?", eventID, judgeID).
		Order("evaluation.evaluated_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (er *evaluationRepo) Exists(ctx context.Context, tx *gorm.DB, projectID, judgeID, criteriaID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.Evaluation{}).
		Where("project_id = ? AND judge_id = ? AND criteria_id = ?", projectID, judgeID, criteriaID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (er *evaluationRepo) DistinctJudgeIDsByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var judgeIDs []uuid.UUID

	if err := transaction.WithContext(ctx).
		Model(&types.Evaluation{}).
		Joins("JOIN project_work ON project_work.id = evaluation.project_id").
		Where("project_work.event_id = ? AND evaluation.is_confirmed = ?", eventID, true).
		Distinct().
		Pluck("evaluation.judge_id", &judgeIDs).Error; err != nil {
		return nil, err
	}

	return judgeIDs, nil
}
