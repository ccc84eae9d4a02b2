package judging

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type ProjectWorkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, projects []*types.ProjectWork) ([]*types.ProjectWork, error)
	GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.ProjectWork, error)
	GetByEventAndParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) (*types.ProjectWork, error)
	ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.ProjectWork, error)
	ListPublishedByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.ProjectWork, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, status string) error
}

type projectWorkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectWorkRepo(db *gorm.DB, baseLog *logger.Logger) ProjectWorkRepo {
	repoLog := baseLog.With("repo", "ProjectWorkRepo")
	return &projectWorkRepo{db: db, log: repoLog}
}

func (pwr *projectWorkRepo) Create(ctx context.Context, tx *gorm.DB, projects []*types.ProjectWork) ([]*types.ProjectWork, error) {
	transaction := tx
	if transaction == nil {
		transaction = pwr.db
	}

	if len(projects) == 0 {
		return []*types.ProjectWork{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func (pwr *projectWorkRepo) GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.ProjectWork, error) {
	transaction := tx
	if transaction == nil {
		transaction = pwr.db
	}

	var result types.ProjectWork

	if err := transaction.WithContext(ctx).
		Preload("Participant").
		Where("id = ?", projectID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (pwr *projectWorkRepo) GetByEventAndParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) (*types.ProjectWork, error) {
	transaction := tx
	if transaction == nil {
		transaction = pwr.db
	}

	var result types.ProjectWork

	if err := transaction.WithContext(ctx).
		Preload("Participant").
		Where("event_id = ? AND participant_id = ?", eventID, participantID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (pwr *projectWorkRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.ProjectWork, error) {
	transaction := tx
	if transaction == nil {
		transaction = pwr.db
	}

	var results []*types.ProjectWork

	if err := transaction.WithContext(ctx).
		Preload("Participant").
		Where("event_id = ?", eventID).
		Order("submitted_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (pwr *projectWorkRepo) ListPublishedByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.ProjectWork, error) {
	transaction := tx
	if transaction == nil {
		transaction = pwr.db
	}

	var results []*types.ProjectWork

	if err := transaction.WithContext(ctx).
		Preload("Participant").
		Where("event_id = ? AND is_published = ?", eventID, true).
		Order("submitted_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (pwr *projectWorkRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = pwr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.ProjectWork{}).
		Where("id = ?", projectID).
		Update("status", status).Error
}
