package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo

	Event            repos.EventRepo
	EventParticipant repos.EventParticipantRepo
	Session          repos.SessionRepo

	Rating                repos.RatingRepo
	ParticipantStatistics repos.ParticipantStatisticsRepo
	EventStatistics       repos.EventStatisticsRepo

	ProjectWork        repos.ProjectWorkRepo
	EvaluationCriteria repos.EvaluationCriteriaRepo
	Evaluation         repos.EvaluationRepo
	JudgeWeight        repos.JudgeWeightRepo
	CachedStatistic    repos.CachedStatisticRepo
	StatisticSnapshot  repos.StatisticSnapshotRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),

		Event:            repos.NewEventRepo(db, log),
		EventParticipant: repos.NewEventParticipantRepo(db, log),
		Session:          repos.NewSessionRepo(db, log),

		Rating:                repos.NewRatingRepo(db, log),
		ParticipantStatistics: repos.NewParticipantStatisticsRepo(db, log),
		EventStatistics:       repos.NewEventStatisticsRepo(db, log),

		ProjectWork:        repos.NewProjectWorkRepo(db, log),
		EvaluationCriteria: repos.NewEvaluationCriteriaRepo(db, log),
		Evaluation:         repos.NewEvaluationRepo(db, log),
		JudgeWeight:        repos.NewJudgeWeightRepo(db, log),
		CachedStatistic:    repos.NewCachedStatisticRepo(db, log),
		StatisticSnapshot:  repos.NewStatisticSnapshotRepo(db, log),
	}
}
