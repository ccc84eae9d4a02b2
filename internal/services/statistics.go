package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/stats"
)

type LeaderboardEntry struct {
	Position        int       `json:"position"`
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	AverageScore    float64   `json:"average_score"`
}

type SessionStatistics struct {
	SessionID            uuid.UUID `json:"session_id"`
	TotalRatings         int       `json:"total_ratings"`
	DistinctParticipants int       `json:"distinct_participants"`
	CountGrade5          int       `json:"count_grade_5"`
	CountGrade4          int       `json:"count_grade_4"`
	CountGrade3          int       `json:"count_grade_3"`
	CountGrade2          int       `json:"count_grade_2"`
	CountGrade1          int       `json:"count_grade_1"`
	CountPass            int       `json:"count_pass"`
	CountFail            int       `json:"count_fail"`
	AverageScore         *float64  `json:"average_score"`
	MostPopularScores    *string   `json:"most_popular_scores"`
}

// StatisticsService is the read side of the direct-rating track. Event and
// final-score reads recompute before returning so callers always see numbers
// derived from the current rating set.
type StatisticsService interface {
	CalculateForParticipant(ctx context.Context, eventID, participantID uuid.UUID) (*types.ParticipantStatistics, error)
	CalculateForEvent(ctx context.Context, eventID uuid.UUID) (*types.EventStatistics, error)
	EventStatistics(ctx context.Context, eventID uuid.UUID) (*types.EventStatistics, error)
	ParticipantFinalScore(ctx context.Context, eventID, participantID uuid.UUID) (*types.ParticipantStatistics, error)
	ListParticipantStatistics(ctx context.Context, eventID uuid.UUID) ([]*types.ParticipantStatistics, error)
	Leaderboard(ctx context.Context, eventID uuid.UUID) ([]LeaderboardEntry, error)
	OnlineSessionStatistics(ctx context.Context, sessionID uuid.UUID) (*SessionStatistics, error)
	OfflineSessionStatistics(ctx context.Context, sessionID uuid.UUID) (*SessionStatistics, error)
}

type statisticsService struct {
	db              *gorm.DB
	log             *logger.Logger
	ratingService   RatingService
	participantRepo repos.EventParticipantRepo
	sessionRepo     repos.SessionRepo
	ratingRepo      repos.RatingRepo
	partStatsRepo   repos.ParticipantStatisticsRepo
	eventStatsRepo  repos.EventStatisticsRepo
}

func NewStatisticsService(
	db *gorm.DB,
	log *logger.Logger,
	ratingService RatingService,
	participantRepo repos.EventParticipantRepo,
	sessionRepo repos.SessionRepo,
	ratingRepo repos.RatingRepo,
	partStatsRepo repos.ParticipantStatisticsRepo,
	eventStatsRepo repos.EventStatisticsRepo,
) StatisticsService {
	serviceLog := log.With("service", "StatisticsService")
	return &statisticsService{
		db:              db,
		log:             serviceLog,
		ratingService:   ratingService,
		participantRepo: participantRepo,
		sessionRepo:     sessionRepo,
		ratingRepo:      ratingRepo,
		partStatsRepo:   partStatsRepo,
		eventStatsRepo:  eventStatsRepo,
	}
}

func (ss *statisticsService) CalculateForParticipant(ctx context.Context, eventID, participantID uuid.UUID) (*types.ParticipantStatistics, error) {
	var saved *types.ParticipantStatistics
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := ss.ratingService.RecomputeParticipant(ctx, tx, eventID, participantID)
		if err != nil {
			return err
		}
		if _, err := ss.ratingService.RecomputeEvent(ctx, tx, eventID); err != nil {
			return err
		}
		saved = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// CalculateForEvent recomputes every participant's row and then the event
// row. An event with no ratings resets everything to zeroes and NULLs.
func (ss *statisticsService) CalculateForEvent(ctx context.Context, eventID uuid.UUID) (*types.EventStatistics, error) {
	var saved *types.EventStatistics
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participants, err := ss.participantRepo.ListByEvent(ctx, tx, eventID)
		if err != nil {
			return fmt.Errorf("failed to list event participants: %w", err)
		}
		for _, p := range participants {
			if _, err := ss.ratingService.RecomputeParticipant(ctx, tx, eventID, p.ID); err != nil {
				return err
			}
		}
		row, err := ss.ratingService.RecomputeEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		saved = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	ss.log.Info("Event statistics recalculated", "event_id", eventID)
	return saved, nil
}

func (ss *statisticsService) EventStatistics(ctx context.Context, eventID uuid.UUID) (*types.EventStatistics, error) {
	return ss.CalculateForEvent(ctx, eventID)
}

func (ss *statisticsService) ParticipantFinalScore(ctx context.Context, eventID, participantID uuid.UUID) (*types.ParticipantStatistics, error) {
	participant, err := ss.participantRepo.GetByID(ctx, nil, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if participant.EventID != eventID {
		return nil, apperrors.ErrNotFound
	}
	return ss.CalculateForParticipant(ctx, eventID, participantID)
}

func (ss *statisticsService) ListParticipantStatistics(ctx context.Context, eventID uuid.UUID) ([]*types.ParticipantStatistics, error) {
	return ss.partStatsRepo.ListByEvent(ctx, nil, eventID)
}

// Leaderboard ranks rated participants by five_point average descending.
// Equal averages share a position (dense ranking); participants without an
// average are left off the board.
func (ss *statisticsService) Leaderboard(ctx context.Context, eventID uuid.UUID) ([]LeaderboardEntry, error) {
	rows, err := ss.partStatsRepo.ListRankedByEvent(ctx, nil, eventID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranked statistics: %w", err)
	}

	participants, err := ss.participantRepo.ListByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event participants: %w", err)
	}
	names := make(map[uuid.UUID]string, len(participants))
	for _, p := range participants {
		if p.User != nil {
			names[p.ID] = p.User.FullName()
		}
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	position := 0
	var prev *float64
	for _, row := range rows {
		if row.AverageScore == nil {
			continue
		}
		if prev == nil || *row.AverageScore != *prev {
			position++
			prev = row.AverageScore
		}

		entries = append(entries, LeaderboardEntry{
			Position:        position,
			ParticipantID:   row.ParticipantID,
			ParticipantName: names[row.ParticipantID],
			AverageScore:    *row.AverageScore,
		})
	}
	return entries, nil
}

func (ss *statisticsService) OnlineSessionStatistics(ctx context.Context, sessionID uuid.UUID) (*SessionStatistics, error) {
	if _, err := ss.sessionRepo.GetOnlineByID(ctx, nil, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load online session: %w", err)
	}
	ratings, err := ss.ratingRepo.ListByOnlineSession(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session ratings: %w", err)
	}
	return sessionStatisticsFrom(sessionID, ratings), nil
}

func (ss *statisticsService) OfflineSessionStatistics(ctx context.Context, sessionID uuid.UUID) (*SessionStatistics, error) {
	if _, err := ss.sessionRepo.GetOfflineByID(ctx, nil, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load offline session: %w", err)
	}
	ratings, err := ss.ratingRepo.ListByOfflineSession(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session ratings: %w", err)
	}
	return sessionStatisticsFrom(sessionID, ratings), nil
}

func sessionStatisticsFrom(sessionID uuid.UUID, ratings []*types.Rating) *SessionStatistics {
	agg := stats.AggregateSession(ratings)
	return &SessionStatistics{
		SessionID:            sessionID,
		TotalRatings:         agg.TotalRatings,
		DistinctParticipants: agg.DistinctParticipants,
		CountGrade5:          agg.CountGrade[5],
		CountGrade4:          agg.CountGrade[4],
		CountGrade3:          agg.CountGrade[3],
		CountGrade2:          agg.CountGrade[2],
		CountGrade1:          agg.CountGrade[1],
		CountPass:            agg.CountPass,
		CountFail:            agg.CountFail,
		AverageScore:         agg.AverageScore,
		MostPopularScores:    agg.MostPopularScores,
	}
}
