package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type EventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.Event) ([]*types.Event, error)
	GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.Event, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Event, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Event, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, status string) error
	SetActive(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, active bool) error
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	repoLog := baseLog.With("repo", "EventRepo")
	return &eventRepo{db: db, log: repoLog}
}

func (er *eventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.Event) ([]*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if len(events) == 0 {
		return []*types.Event{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (er *eventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.Event

	if err := transaction.WithContext(ctx).
		Where("id = ?", eventID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (er *eventRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.Event

	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (er *eventRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.Event

	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (er *eventRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Event{}).
		Where("id = ?", eventID).
		Update("status", status).Error
}

func (er *eventRepo) SetActive(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, active bool) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Event{}).
		Where("id = ?", eventID).
		Update("is_active", active).Error
}
