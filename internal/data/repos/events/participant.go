package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type EventParticipantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, participants []*types.EventParticipant) ([]*types.EventParticipant, error)
	GetByID(ctx context.Context, tx *gorm.DB, participantID uuid.UUID) (*types.EventParticipant, error)
	GetByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID uuid.UUID) (*types.EventParticipant, error)
	ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventParticipant, error)
	Confirm(ctx context.Context, tx *gorm.DB, participantID uuid.UUID) error
	CountByEventAndRole(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, role string) (int64, error)
}

type eventParticipantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventParticipantRepo(db *gorm.DB, baseLog *logger.Logger) EventParticipantRepo {
	repoLog := baseLog.With("repo", "EventParticipantRepo")
	return &eventParticipantRepo{db: db, log: repoLog}
}

func (epr *eventParticipantRepo) Create(ctx context.Context, tx *gorm.DB, participants []*types.EventParticipant) ([]*types.EventParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = epr.db
	}

	if len(participants) == 0 {
		return []*types.EventParticipant{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&participants).Error; err != nil {
		return nil, err
	}

	return participants, nil
}

func (epr *eventParticipantRepo) GetByID(ctx context.Context, tx *gorm.DB, participantID uuid.UUID) (*types.EventParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = epr.db
	}

	var result types.EventParticipant

	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("id = ?", participantID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (epr *eventParticipantRepo) GetByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID uuid.UUID) (*types.EventParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = epr.db
	}

	var result types.EventParticipant

	if err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (epr *eventParticipantRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = epr.db
	}

	var results []*types.EventParticipant

	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (epr *eventParticipantRepo) Confirm(ctx context.Context, tx *gorm.DB, participantID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = epr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.EventParticipant{}).
		Where("id = ?", participantID).
		Update("is_confirmed", true).Error
}

func (epr *eventParticipantRepo) CountByEventAndRole(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, role string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = epr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.EventParticipant{}).
		Where("event_id = ? AND role = ?", eventID, role).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
