package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "eventjudge", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := Migrate(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// Migrate creates all tables plus the partial unique indexes GORM tags
// cannot express. One rating per referee, participant and scope: the scope
// is the online session, the offline session, or the event itself when both
// session columns are NULL.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},

		&types.Event{},
		&types.EventParticipant{},
		&types.OnlineSession{},
		&types.OfflineSession{},

		&types.Rating{},
		&types.ParticipantStatistics{},
		&types.EventStatistics{},

		&types.ProjectWork{},
		&types.EvaluationCriteria{},
		&types.Evaluation{},
		&types.JudgeWeight{},
		&types.CachedStatistic{},
		&types.StatisticSnapshot{},
	); err != nil {
		return err
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_event_rating_event_scope
		   ON "event_rating" (event_id, participant_id, referee_id)
		   WHERE online_session_id IS NULL AND offline_session_id IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_event_rating_online_scope
		   ON "event_rating" (online_session_id, participant_id, referee_id)
		   WHERE online_session_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_event_rating_offline_scope
		   ON "event_rating" (offline_session_id, participant_id, referee_id)
		   WHERE offline_session_id IS NOT NULL`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create rating scope index: %w", err)
		}
	}

	return nil
}
