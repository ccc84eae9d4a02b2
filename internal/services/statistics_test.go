package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	"github.com/yungbote/eventjudge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

func newStatisticsService(tb testing.TB, tx *gorm.DB) services.StatisticsService {
	tb.Helper()
	log := testutil.Logger(tb)
	return services.NewStatisticsService(
		tx,
		log,
		newRatingService(tb, tx),
		repos.NewEventParticipantRepo(tx, log),
		repos.NewSessionRepo(tx, log),
		repos.NewRatingRepo(tx, log),
		repos.NewParticipantStatisticsRepo(tx, log),
		repos.NewEventStatisticsRepo(tx, log),
	)
}

func TestLeaderboardDenseRanking(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newStatisticsService(t, tx)

	second := testutil.SeedUser(t, tx, "second-"+uuid.NewString()+"@example.com")
	secondEntry := testutil.SeedParticipant(t, tx, fix.Event.ID, second.ID, types.RoleParticipant)
	third := testutil.SeedUser(t, tx, "third-"+uuid.NewString()+"@example.com")
	thirdEntry := testutil.SeedParticipant(t, tx, fix.Event.ID, third.ID, types.RoleParticipant)
	fourth := testutil.SeedUser(t, tx, "fourth-"+uuid.NewString()+"@example.com")
	testutil.SeedParticipant(t, tx, fix.Event.ID, fourth.ID, types.RoleParticipant)

	// fix.Entry averages 5, second and third tie at 3, fourth has only a
	// pass_fail rating so it has no average and stays off the board.
	testutil.SeedRating(t, tx, fix, nil, nil, types.GradingFivePoint, 5)
	for _, entry := range []*types.EventParticipant{secondEntry, thirdEntry} {
		r := &types.Rating{
			ID:            uuid.New(),
			EventID:       fix.Event.ID,
			ParticipantID: entry.ID,
			RefereeID:     fix.Referee.ID,
			GradingSystem: types.GradingFivePoint,
			Score:         3,
		}
		if err := tx.Create(r).Error; err != nil {
			t.Fatalf("seed rating: %v", err)
		}
	}

	if _, err := svc.CalculateForEvent(ctx, fix.Event.ID); err != nil {
		t.Fatalf("calculate event statistics: %v", err)
	}

	entries, err := svc.Leaderboard(ctx, fix.Event.ID)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("unexpected board size: got=%d want=3", len(entries))
	}
	if entries[0].Position != 1 || entries[0].AverageScore != 5 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Position != 2 || entries[2].Position != 2 {
		t.Fatalf("tied averages should share a position: %+v %+v", entries[1], entries[2])
	}
	if entries[0].ParticipantName == "" {
		t.Fatalf("participant name not resolved: %+v", entries[0])
	}
}

func TestCalculateForEventIncludesRatedReferees(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newStatisticsService(t, tx)

	// Referees can be rated too; the full recompute must refresh their
	// rows alongside the regular participants.
	secondReferee := testutil.SeedUser(t, tx, "referee2-"+uuid.NewString()+"@example.com")
	ratedReferee := testutil.SeedParticipant(t, tx, fix.Event.ID, secondReferee.ID, types.RoleReferee)

	r := &types.Rating{
		ID:            uuid.New(),
		EventID:       fix.Event.ID,
		ParticipantID: ratedReferee.ID,
		RefereeID:     fix.Referee.ID,
		GradingSystem: types.GradingFivePoint,
		Score:         5,
	}
	if err := tx.Create(r).Error; err != nil {
		t.Fatalf("seed rating: %v", err)
	}

	es, err := svc.CalculateForEvent(ctx, fix.Event.ID)
	if err != nil {
		t.Fatalf("calculate event statistics: %v", err)
	}

	ps, err := repos.NewParticipantStatisticsRepo(tx, testutil.Logger(t)).
		GetByEventAndParticipant(ctx, nil, fix.Event.ID, ratedReferee.ID)
	if err != nil {
		t.Fatalf("load referee statistics: %v", err)
	}
	if ps.FinalScore == nil || *ps.FinalScore != 5 {
		t.Fatalf("referee row skipped by full recompute: %+v", ps)
	}
	if es.TotalParticipantsRated != 1 || es.CountGrade5Total != 1 {
		t.Fatalf("referee final score missing from event rollup: %+v", es)
	}
}

func TestCalculateForEventResetsEmptyEvent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newStatisticsService(t, tx)

	testutil.SeedRating(t, tx, fix, nil, nil, types.GradingFivePoint, 4)
	if _, err := svc.CalculateForEvent(ctx, fix.Event.ID); err != nil {
		t.Fatalf("calculate with ratings: %v", err)
	}

	if err := tx.Where("event_id = ?", fix.Event.ID).Delete(&types.Rating{}).Error; err != nil {
		t.Fatalf("clear ratings: %v", err)
	}

	es, err := svc.CalculateForEvent(ctx, fix.Event.ID)
	if err != nil {
		t.Fatalf("recalculate empty event: %v", err)
	}
	if es.TotalRatingsGiven != 0 || es.TotalParticipantsRated != 0 {
		t.Fatalf("totals not reset: %+v", es)
	}
	if es.AverageScore != nil {
		t.Fatalf("average should be null for an empty event, got %v", *es.AverageScore)
	}

	ps, err := repos.NewParticipantStatisticsRepo(tx, testutil.Logger(t)).
		GetByEventAndParticipant(ctx, nil, fix.Event.ID, fix.Entry.ID)
	if err != nil {
		t.Fatalf("load participant statistics: %v", err)
	}
	if ps.FinalScore != nil || ps.AverageScore != nil {
		t.Fatalf("participant row not reset: %+v", ps)
	}
}

func TestParticipantFinalScoreWrongEvent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	other := testutil.SeedEvent(t, tx)
	svc := newStatisticsService(t, tx)

	if _, err := svc.ParticipantFinalScore(ctx, other.Event.ID, fix.Entry.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for cross-event lookup, got %v", err)
	}
}

func TestSessionStatistics(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newStatisticsService(t, tx)

	online := testutil.SeedOnlineSession(t, tx, fix.Event.ID, "webinar")
	testutil.SeedRating(t, tx, fix, &online.ID, nil, types.GradingFivePoint, 4)
	testutil.SeedRating(t, tx, fix, nil, nil, types.GradingPassFail, 1)

	stats, err := svc.OnlineSessionStatistics(ctx, online.ID)
	if err != nil {
		t.Fatalf("online session statistics: %v", err)
	}
	if stats.TotalRatings != 1 {
		t.Fatalf("event-scope ratings leaked into the session: %+v", stats)
	}
	if stats.AverageScore == nil || *stats.AverageScore != 4 {
		t.Fatalf("unexpected session average: %+v", stats)
	}

	if _, err := svc.OnlineSessionStatistics(ctx, uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown session, got %v", err)
	}
}
