package ratings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type RatingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rating *types.Rating) (*types.Rating, error)
	GetByID(ctx context.Context, tx *gorm.DB, ratingID uuid.UUID) (*types.Rating, error)
	Delete(ctx context.Context, tx *gorm.DB, ratingID uuid.UUID) error
	ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.Rating, error)
	ListByEventAndParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) ([]*types.Rating, error)
	ListByOnlineSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Rating, error)
	ListByOfflineSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Rating, error)
	Exists(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, onlineSessionID, offlineSessionID *uuid.UUID, participantID, refereeID uuid.UUID) (bool, error)
	CountByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error)
	CountDistinctParticipants(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	repoLog := baseLog.With("repo", "RatingRepo")
	return &ratingRepo{db: db, log: repoLog}
}

func (rr *ratingRepo) Create(ctx context.Context, tx *gorm.DB, rating *types.Rating) (*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Create(rating).Error; err != nil {
		return nil, err
	}

	return rating, nil
}

func (rr *ratingRepo) GetByID(ctx context.Context, tx *gorm.DB, ratingID uuid.UUID) (*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Rating

	if err := transaction.WithContext(ctx).
		Where("id = ?", ratingID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (rr *ratingRepo) Delete(ctx context.Context, tx *gorm.DB, ratingID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", ratingID).
		Delete(&types.Rating{}).Error
}

func (rr *ratingRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Rating

	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (rr *ratingRepo) ListByEventAndParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) ([]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Rating

	if err := transaction.WithContext(ctx).
		Where("event_id = ? AND participant_id = ?", eventID, participantID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (rr *ratingRepo) ListByOnlineSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Rating

	if err := transaction.WithContext(ctx).
		Where("online_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (rr *ratingRepo) ListByOfflineSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Rating

	if err := transaction.WithContext(ctx).
		Where("offline_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// Exists matches on the same scope the unique indexes guard: one row per
// referee, participant and scope (online session, offline session, or the
// event itself when both are nil).
func (rr *ratingRepo) Exists(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, onlineSessionID, offlineSessionID *uuid.UUID, participantID, refereeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.Rating{}).
		Where("event_id = ? AND participant_id = ? AND referee_id = ?", eventID, participantID, refereeID)

	switch {
	case onlineSessionID != nil:
		q = q.Where("online_session_id = ?", *onlineSessionID)
	case offlineSessionID != nil:
		q = q.Where("offline_session_id = ?", *offlineSessionID)
	default:
		q = q.Where("online_session_id IS NULL AND offline_session_id IS NULL")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (rr *ratingRepo) CountByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.Rating{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (rr *ratingRepo) CountDistinctParticipants(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.Rating{}).
		Where("event_id = ?", eventID).
		Distinct("participant_id").
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
