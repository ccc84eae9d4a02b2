package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/observability"
	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/stats"
)

type RateParticipantInput struct {
	EventID          uuid.UUID           `json:"event"`
	ParticipantID    uuid.UUID           `json:"participant"`
	RefereeID        uuid.UUID           `json:"referee"`
	GradingSystem    types.GradingSystem `json:"grading_system"`
	Score            int                 `json:"score"`
	Comment          string              `json:"comment"`
	OnlineSessionID  *uuid.UUID          `json:"online_session"`
	OfflineSessionID *uuid.UUID          `json:"offline_session"`
}

// RatingService owns the write path of the direct participant-rating track.
// Every successful create or delete recomputes the participant's statistics
// and then the event's, inline in the same transaction.
type RatingService interface {
	RateParticipant(ctx context.Context, input RateParticipantInput) (*types.Rating, error)
	DeleteRating(ctx context.Context, ratingID uuid.UUID) error
	GetRating(ctx context.Context, ratingID uuid.UUID) (*types.Rating, error)
	ListRatings(ctx context.Context, eventID uuid.UUID) ([]*types.Rating, error)
	ListParticipantRatings(ctx context.Context, eventID, participantID uuid.UUID) ([]*types.Rating, error)
	RecomputeParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) (*types.ParticipantStatistics, error)
	RecomputeEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.EventStatistics, error)
}

type ratingService struct {
	db              *gorm.DB
	log             *logger.Logger
	metrics         *observability.Metrics
	eventRepo       repos.EventRepo
	participantRepo repos.EventParticipantRepo
	sessionRepo     repos.SessionRepo
	ratingRepo      repos.RatingRepo
	partStatsRepo   repos.ParticipantStatisticsRepo
	eventStatsRepo  repos.EventStatisticsRepo
}

func NewRatingService(
	db *gorm.DB,
	log *logger.Logger,
	metrics *observability.Metrics,
	eventRepo repos.EventRepo,
	participantRepo repos.EventParticipantRepo,
	sessionRepo repos.SessionRepo,
	ratingRepo repos.RatingRepo,
	partStatsRepo repos.ParticipantStatisticsRepo,
	eventStatsRepo repos.EventStatisticsRepo,
) RatingService {
	serviceLog := log.With("service", "RatingService")
	return &ratingService{
		db:              db,
		log:             serviceLog,
		metrics:         metrics,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		sessionRepo:     sessionRepo,
		ratingRepo:      ratingRepo,
		partStatsRepo:   partStatsRepo,
		eventStatsRepo:  eventStatsRepo,
	}
}

func (rs *ratingService) RateParticipant(ctx context.Context, input RateParticipantInput) (*types.Rating, error) {
	if err := rs.validate(ctx, input); err != nil {
		return nil, err
	}

	rating := &types.Rating{
		ID:               uuid.New(),
		EventID:          input.EventID,
		OnlineSessionID:  input.OnlineSessionID,
		OfflineSessionID: input.OfflineSessionID,
		ParticipantID:    input.ParticipantID,
		RefereeID:        input.RefereeID,
		GradingSystem:    input.GradingSystem,
		Score:            input.Score,
		Comment:          input.Comment,
	}

	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := rs.ratingRepo.Create(ctx, tx, rating); err != nil {
			// The partial unique indexes close the window between the
			// pre-check and the insert.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Validation("referee", "rating already exists for this participant in this scope")
			}
			return fmt.Errorf("failed to create rating: %w", err)
		}
		if _, err := rs.RecomputeParticipant(ctx, tx, input.EventID, input.ParticipantID); err != nil {
			return err
		}
		if _, err := rs.RecomputeEvent(ctx, tx, input.EventID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs.log.Info("Rating created",
		"rating_id", rating.ID,
		"event_id", rating.EventID,
		"participant_id", rating.ParticipantID,
		"scope", rating.ScopeKey(),
	)
	return rating, nil
}

func (rs *ratingService) DeleteRating(ctx context.Context, ratingID uuid.UUID) error {
	rating, err := rs.ratingRepo.GetByID(ctx, nil, ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load rating: %w", err)
	}

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.ratingRepo.Delete(ctx, tx, ratingID); err != nil {
			return fmt.Errorf("failed to delete rating: %w", err)
		}
		if _, err := rs.RecomputeParticipant(ctx, tx, rating.EventID, rating.ParticipantID); err != nil {
			return err
		}
		if _, err := rs.RecomputeEvent(ctx, tx, rating.EventID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	rs.log.Info("Rating deleted", "rating_id", ratingID, "event_id", rating.EventID)
	return nil
}

func (rs *ratingService) GetRating(ctx context.Context, ratingID uuid.UUID) (*types.Rating, error) {
	rating, err := rs.ratingRepo.GetByID(ctx, nil, ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load rating: %w", err)
	}
	return rating, nil
}

func (rs *ratingService) ListRatings(ctx context.Context, eventID uuid.UUID) ([]*types.Rating, error) {
	return rs.ratingRepo.ListByEvent(ctx, nil, eventID)
}

func (rs *ratingService) ListParticipantRatings(ctx context.Context, eventID, participantID uuid.UUID) ([]*types.Rating, error) {
	return rs.ratingRepo.ListByEventAndParticipant(ctx, nil, eventID, participantID)
}

// validate runs the six pre-persistence checks. The duplicate check is
// advisory; the unique index has the final word.
func (rs *ratingService) validate(ctx context.Context, input RateParticipantInput) error {
	if !input.GradingSystem.Valid() {
		return apperrors.Validation("grading_system", "must be five_point or pass_fail")
	}
	if !input.GradingSystem.ScoreInRange(input.Score) {
		return apperrors.Validation("score", "score out of range: "+input.GradingSystem.ScoreRangeDescription())
	}
	if input.OnlineSessionID != nil && input.OfflineSessionID != nil {
		return apperrors.Validation(
			"online_session", "cannot set both session fields",
			"offline_session", "cannot set both session fields",
		)
	}

	if _, err := rs.eventRepo.GetByID(ctx, nil, input.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("event", "event not found")
		}
		return fmt.Errorf("failed to load event: %w", err)
	}

	referee, err := rs.participantRepo.GetByEventAndUser(ctx, nil, input.EventID, input.RefereeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("referee", "referee is not a participant of this event")
		}
		return fmt.Errorf("failed to load referee row: %w", err)
	}
	if referee.Role != types.RoleReferee || !referee.IsConfirmed {
		return apperrors.Validation("referee", "referee must hold a confirmed referee role in this event")
	}

	participant, err := rs.participantRepo.GetByID(ctx, nil, input.ParticipantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("participant", "participant not found")
		}
		return fmt.Errorf("failed to load participant row: %w", err)
	}
	if participant.EventID != input.EventID {
		return apperrors.Validation("participant", "participant belongs to a different event")
	}
	if participant.UserID == input.RefereeID {
		return apperrors.Validation("referee", "a participant cannot rate themselves")
	}

	if input.OnlineSessionID != nil {
		session, err := rs.sessionRepo.GetOnlineByID(ctx, nil, *input.OnlineSessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("online_session", "session not found")
			}
			return fmt.Errorf("failed to load online session: %w", err)
		}
		if session.EventID != input.EventID {
			return apperrors.Validation("online_session", "session belongs to a different event")
		}
	}
	if input.OfflineSessionID != nil {
		session, err := rs.sessionRepo.GetOfflineByID(ctx, nil, *input.OfflineSessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("offline_session", "session not found")
			}
			return fmt.Errorf("failed to load offline session: %w", err)
		}
		if session.EventID != input.EventID {
			return apperrors.Validation("offline_session", "session belongs to a different event")
		}
	}

	exists, err := rs.ratingRepo.Exists(ctx, nil, input.EventID, input.OnlineSessionID, input.OfflineSessionID, input.ParticipantID, input.RefereeID)
	if err != nil {
		return fmt.Errorf("failed to check rating uniqueness: %w", err)
	}
	if exists {
		return apperrors.Validation("referee", "rating already exists for this participant in this scope")
	}

	return nil
}

func (rs *ratingService) RecomputeParticipant(ctx context.Context, tx *gorm.DB, eventID, participantID uuid.UUID) (*types.ParticipantStatistics, error) {
	start := time.Now()

	ratings, err := rs.ratingRepo.ListByEventAndParticipant(ctx, tx, eventID, participantID)
	if err != nil {
		rs.metrics.ObserveRecompute("participant", err, time.Since(start))
		return nil, fmt.Errorf("failed to list participant ratings: %w", err)
	}

	agg := stats.AggregateParticipant(ratings)

	counts := datatypes.JSONMap{}
	for k, v := range agg.SessionScoresCount {
		counts[k] = v
	}

	row := &types.ParticipantStatistics{
		ID:                 uuid.New(),
		EventID:            eventID,
		ParticipantID:      participantID,
		FinalScore:         agg.FinalScore,
		AverageScore:       agg.AverageScore,
		SessionScoresCount: counts,
		MostPopularGrades:  agg.MostPopularGrades,
		CalculatedAt:       time.Now(),
	}

	saved, err := rs.partStatsRepo.Upsert(ctx, tx, row)
	rs.metrics.ObserveRecompute("participant", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert participant statistics: %w", err)
	}
	return saved, nil
}

func (rs *ratingService) RecomputeEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.EventStatistics, error) {
	start := time.Now()

	ratings, err := rs.ratingRepo.ListByEvent(ctx, tx, eventID)
	if err != nil {
		rs.metrics.ObserveRecompute("event", err, time.Since(start))
		return nil, fmt.Errorf("failed to list event ratings: %w", err)
	}

	partRows, err := rs.partStatsRepo.ListByEvent(ctx, tx, eventID)
	if err != nil {
		rs.metrics.ObserveRecompute("event", err, time.Since(start))
		return nil, fmt.Errorf("failed to list participant statistics: %w", err)
	}

	var finalScores []int
	for _, p := range partRows {
		if p.FinalScore != nil {
			finalScores = append(finalScores, *p.FinalScore)
		}
	}

	agg := stats.AggregateEvent(ratings, finalScores)

	dist, err := marshalJSON(agg.SessionGradeDistribution)
	if err != nil {
		return nil, err
	}
	averages, err := marshalJSON(agg.SessionAverages)
	if err != nil {
		return nil, err
	}

	row := &types.EventStatistics{
		ID:                       uuid.New(),
		EventID:                  eventID,
		AverageScore:             agg.AverageScore,
		TotalParticipantsRated:   agg.TotalParticipantsRated,
		TotalRatingsGiven:        agg.TotalRatingsGiven,
		CountGrade5Total:         agg.CountGradeTotal[5],
		CountGrade4Total:         agg.CountGradeTotal[4],
		CountGrade3Total:         agg.CountGradeTotal[3],
		CountGrade2Total:         agg.CountGradeTotal[2],
		CountGrade1Total:         agg.CountGradeTotal[1],
		CountPassTotal:           agg.CountPassTotal,
		CountFailTotal:           agg.CountFailTotal,
		MostPopularGradeTotal:    agg.MostPopularGradeTotal,
		SessionGradeDistribution: dist,
		SessionAverages:          averages,
		CalculatedAt:             time.Now(),
	}

	saved, err := rs.eventStatsRepo.Upsert(ctx, tx, row)
	rs.metrics.ObserveRecompute("event", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert event statistics: %w", err)
	}
	return saved, nil
}
