package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type SessionRepo interface {
	CreateOnline(ctx context.Context, tx *gorm.DB, sessions []*types.OnlineSession) ([]*types.OnlineSession, error)
	CreateOffline(ctx context.Context, tx *gorm.DB, sessions []*types.OfflineSession) ([]*types.OfflineSession, error)
	GetOnlineByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.OnlineSession, error)
	GetOfflineByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.OfflineSession, error)
	ListOnlineByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.OnlineSession, error)
	ListOfflineByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.OfflineSession, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) CreateOnline(ctx context.Context, tx *gorm.DB, sessions []*types.OnlineSession) ([]*types.OnlineSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(sessions) == 0 {
		return []*types.OnlineSession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (sr *sessionRepo) CreateOffline(ctx context.Context, tx *gorm.DB, sessions []*types.OfflineSession) ([]*types.OfflineSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(sessions) == 0 {
		return []*types.OfflineSession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (sr *sessionRepo) GetOnlineByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.OnlineSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.OnlineSession

	if err := transaction.WithContext(ctx).
		Where("id = ?", sessionID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (sr *sessionRepo) GetOfflineByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.OfflineSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.OfflineSession

	if err := transaction.WithContext(ctx).
		Where("id = ?", sessionID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (sr *sessionRepo) ListOnlineByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.OnlineSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.OnlineSession

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("starts_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (sr *sessionRepo) ListOfflineByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.OfflineSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.OfflineSession

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("starts_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
