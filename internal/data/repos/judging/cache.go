package judging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type CachedStatisticRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, cached *types.CachedStatistic) (*types.CachedStatistic, error)
	Get(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, statisticType string) (*types.CachedStatistic, error)
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type cachedStatisticRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCachedStatisticRepo(db *gorm.DB, baseLog *logger.Logger) CachedStatisticRepo {
	repoLog := baseLog.With("repo", "CachedStatisticRepo")
	return &cachedStatisticRepo{db: db, log: repoLog}
}

// Upsert bumps the stored version on conflict so readers can tell a refresh
// from a first write.
func (csr *cachedStatisticRepo) Upsert(ctx context.Context, tx *gorm.DB, cached *types.CachedStatistic) (*types.CachedStatistic, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "event_id"}, {Name: "statistic_type"}},
			DoUpdates: clause.Assignments(map[string]any{
				"data":          cached.Data,
				"expires_at":    cached.ExpiresAt,
				"calculated_at": cached.CalculatedAt,
				"version":       gorm.Expr("cached_statistic.version + 1"),
			}),
		}).
		Create(cached).Error; err != nil {
		return nil, err
	}

	return cached, nil
}

func (csr *cachedStatisticRepo) Get(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, statisticType string) (*types.CachedStatistic, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}

	var result types.CachedStatistic

	if err := transaction.WithContext(ctx).
		Where("event_id = ? AND statistic_type = ?", eventID, statisticType).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (csr *cachedStatisticRepo) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}

	result := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&types.CachedStatistic{})
	return result.RowsAffected, result.Error
}

func (csr *cachedStatisticRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}

	res := transaction.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&types.CachedStatistic{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
