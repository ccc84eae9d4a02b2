package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos/events"
	"github.com/yungbote/eventjudge-backend/internal/data/repos/judging"
	"github.com/yungbote/eventjudge-backend/internal/data/repos/ratings"
	"github.com/yungbote/eventjudge-backend/internal/data/repos/users"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type UserRepo = users.UserRepo
type UserTokenRepo = users.UserTokenRepo

type EventRepo = events.EventRepo
type EventParticipantRepo = events.EventParticipantRepo
type SessionRepo = events.SessionRepo

type RatingRepo = ratings.RatingRepo
type ParticipantStatisticsRepo = ratings.ParticipantStatisticsRepo
type EventStatisticsRepo = ratings.EventStatisticsRepo

type ProjectWorkRepo = judging.ProjectWorkRepo
type EvaluationCriteriaRepo = judging.EvaluationCriteriaRepo
type EvaluationRepo = judging.EvaluationRepo
type JudgeWeightRepo = judging.JudgeWeightRepo
type CachedStatisticRepo = judging.CachedStatisticRepo
type StatisticSnapshotRepo = judging.StatisticSnapshotRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return users.NewUserRepo(db, baseLog)
}
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return users.NewUserTokenRepo(db, baseLog)
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return events.NewEventRepo(db, baseLog)
}
func NewEventParticipantRepo(db *gorm.DB, baseLog *logger.Logger) EventParticipantRepo {
	return events.NewEventParticipantRepo(db, baseLog)
}
func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return events.NewSessionRepo(db, baseLog)
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	return ratings.NewRatingRepo(db, baseLog)
}
func NewParticipantStatisticsRepo(db *gorm.DB, baseLog *logger.Logger) ParticipantStatisticsRepo {
	return ratings.NewParticipantStatisticsRepo(db, baseLog)
}
func NewEventStatisticsRepo(db *gorm.DB, baseLog *logger.Logger) EventStatisticsRepo {
	return ratings.NewEventStatisticsRepo(db, baseLog)
}

func NewProjectWorkRepo(db *gorm.DB, baseLog *logger.Logger) ProjectWorkRepo {
	return judging.NewProjectWorkRepo(db, baseLog)
}
func NewEvaluationCriteriaRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationCriteriaRepo {
	return judging.NewEvaluationCriteriaRepo(db, baseLog)
}
func NewEvaluationRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationRepo {
	return judging.NewEvaluationRepo(db, baseLog)
}
func NewJudgeWeightRepo(db *gorm.DB, baseLog *logger.Logger) JudgeWeightRepo {
	return judging.NewJudgeWeightRepo(db, baseLog)
}
func NewCachedStatisticRepo(db *gorm.DB, baseLog *logger.Logger) CachedStatisticRepo {
	return judging.NewCachedStatisticRepo(db, baseLog)
}
func NewStatisticSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) StatisticSnapshotRepo {
	return judging.NewStatisticSnapshotRepo(db, baseLog)
}
