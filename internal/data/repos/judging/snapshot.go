package judging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type StatisticSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snapshot *types.StatisticSnapshot) (*types.StatisticSnapshot, error)
	ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, snapshotType string, limit int) ([]*types.StatisticSnapshot, error)
	LatestByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, snapshotType string) (*types.StatisticSnapshot, error)
	DeleteTakenBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type statisticSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatisticSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) StatisticSnapshotRepo {
	repoLog := baseLog.With("repo", "StatisticSnapshotRepo")
	return &statisticSnapshotRepo{db: db, log: repoLog}
}

func (ssr *statisticSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snapshot *types.StatisticSnapshot) (*types.StatisticSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = ssr.db
	}

	if err := transaction.WithContext(ctx).Create(snapshot).Error; err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (ssr *statisticSnapshotRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, snapshotType string, limit int) ([]*types.StatisticSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = ssr.db
	}

	var results []*types.StatisticSnapshot

	q := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("taken_at DESC")
	if snapshotType != "" {
		q = q.Where("snapshot_type = ?", snapshotType)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ssr *statisticSnapshotRepo) LatestByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, snapshotType string) (*types.StatisticSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = ssr.db
	}

	var result types.StatisticSnapshot

	q := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("taken_at DESC")
	if snapshotType != "" {
		q = q.Where("snapshot_type = ?", snapshotType)
	}

	if err := q.First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (ssr *statisticSnapshotRepo) DeleteTakenBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ssr.db
	}

	res := transaction.WithContext(ctx).
		Where("taken_at < ?", cutoff).
		Delete(&types.StatisticSnapshot{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
