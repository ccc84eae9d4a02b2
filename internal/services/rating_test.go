package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	"github.com/yungbote/eventjudge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

func newRatingService(tb testing.TB, tx *gorm.DB) services.RatingService {
	tb.Helper()
	log := testutil.Logger(tb)
	return services.NewRatingService(
		tx,
		log,
		nil,
		repos.NewEventRepo(tx, log),
		repos.NewEventParticipantRepo(tx, log),
		repos.NewSessionRepo(tx, log),
		repos.NewRatingRepo(tx, log),
		repos.NewParticipantStatisticsRepo(tx, log),
		repos.NewEventStatisticsRepo(tx, log),
	)
}

func validInput(fix *testutil.EventFixture) services.RateParticipantInput {
	return services.RateParticipantInput{
		EventID:       fix.Event.ID,
		ParticipantID: fix.Entry.ID,
		RefereeID:     fix.Referee.ID,
		GradingSystem: types.GradingFivePoint,
		Score:         4,
	}
}

func wantFieldError(tb testing.TB, err error, field string) {
	tb.Helper()
	if err == nil {
		tb.Fatalf("expected validation error on %q, got nil", field)
	}
	ve, ok := apperrors.AsValidation(err)
	if !ok {
		tb.Fatalf("expected validation error on %q, got %v", field, err)
	}
	if _, ok := ve.Fields[field]; !ok {
		tb.Fatalf("expected error on field %q, got fields %v", field, ve.Fields)
	}
}

func TestRateParticipantValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newRatingService(t, tx)

	t.Run("unknown grading system", func(t *testing.T) {
		input := validInput(fix)
		input.GradingSystem = "letters"
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "grading_system")
	})

	t.Run("score out of range", func(t *testing.T) {
		input := validInput(fix)
		input.Score = 6
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "score")

		input.GradingSystem = types.GradingPassFail
		input.Score = 2
		_, err = svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "score")
	})

	t.Run("both sessions set", func(t *testing.T) {
		online := testutil.SeedOnlineSession(t, tx, fix.Event.ID, "webinar")
		offline := testutil.SeedOfflineSession(t, tx, fix.Event.ID, "workshop")

		input := validInput(fix)
		input.OnlineSessionID = &online.ID
		input.OfflineSessionID = &offline.ID
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "online_session")
	})

	t.Run("unknown event", func(t *testing.T) {
		input := validInput(fix)
		input.EventID = uuid.New()
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "event")
	})

	t.Run("referee without referee role", func(t *testing.T) {
		input := validInput(fix)
		input.RefereeID = fix.Participant.ID
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "referee")
	})

	t.Run("unconfirmed referee", func(t *testing.T) {
		other := testutil.SeedUser(t, tx, "pending-"+uuid.NewString()+"@example.com")
		row := testutil.SeedParticipant(t, tx, fix.Event.ID, other.ID, types.RoleReferee)
		if err := tx.Model(row).Update("is_confirmed", false).Error; err != nil {
			t.Fatalf("unconfirm referee: %v", err)
		}

		input := validInput(fix)
		input.RefereeID = other.ID
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "referee")
	})

	t.Run("participant from another event", func(t *testing.T) {
		otherFix := testutil.SeedEvent(t, tx)

		input := validInput(fix)
		input.ParticipantID = otherFix.Entry.ID
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "participant")
	})

	t.Run("self rating", func(t *testing.T) {
		input := validInput(fix)
		input.ParticipantID = fix.RefereeRow.ID
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "referee")
	})

	t.Run("session from another event", func(t *testing.T) {
		otherFix := testutil.SeedEvent(t, tx)
		foreign := testutil.SeedOnlineSession(t, tx, otherFix.Event.ID, "elsewhere")

		input := validInput(fix)
		input.OnlineSessionID = &foreign.ID
		_, err := svc.RateParticipant(ctx, input)
		wantFieldError(t, err, "online_session")
	})
}

func TestRateParticipantDuplicateScope(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newRatingService(t, tx)

	if _, err := svc.RateParticipant(ctx, validInput(fix)); err != nil {
		t.Fatalf("first rating: %v", err)
	}

	_, err := svc.RateParticipant(ctx, validInput(fix))
	wantFieldError(t, err, "referee")

	// A different scope is a different uniqueness bucket.
	online := testutil.SeedOnlineSession(t, tx, fix.Event.ID, "webinar")
	input := validInput(fix)
	input.OnlineSessionID = &online.ID
	if _, err := svc.RateParticipant(ctx, input); err != nil {
		t.Fatalf("session-scoped rating: %v", err)
	}
}

func TestRateParticipantRecomputesStatistics(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newRatingService(t, tx)
	partStats := repos.NewParticipantStatisticsRepo(tx, testutil.Logger(t))
	eventStats := repos.NewEventStatisticsRepo(tx, testutil.Logger(t))

	input := validInput(fix)
	input.Score = 4
	if _, err := svc.RateParticipant(ctx, input); err != nil {
		t.Fatalf("event-scope rating: %v", err)
	}

	online := testutil.SeedOnlineSession(t, tx, fix.Event.ID, "webinar")
	input = validInput(fix)
	input.Score = 5
	input.OnlineSessionID = &online.ID
	if _, err := svc.RateParticipant(ctx, input); err != nil {
		t.Fatalf("session-scope rating: %v", err)
	}

	ps, err := partStats.GetByEventAndParticipant(ctx, nil, fix.Event.ID, fix.Entry.ID)
	if err != nil {
		t.Fatalf("load participant statistics: %v", err)
	}
	if ps.FinalScore == nil || *ps.FinalScore != 5 {
		t.Fatalf("unexpected final score: got=%v want=5", ps.FinalScore)
	}
	if ps.AverageScore == nil || *ps.AverageScore != 4.5 {
		t.Fatalf("unexpected average score: got=%v want=4.5", ps.AverageScore)
	}
	if len(ps.SessionScoresCount) != 2 {
		t.Fatalf("unexpected scope count map: %v", ps.SessionScoresCount)
	}

	es, err := eventStats.GetByEvent(ctx, nil, fix.Event.ID)
	if err != nil {
		t.Fatalf("load event statistics: %v", err)
	}
	if es.TotalRatingsGiven != 2 {
		t.Fatalf("unexpected total ratings: got=%d want=2", es.TotalRatingsGiven)
	}
	if es.TotalParticipantsRated != 1 {
		t.Fatalf("unexpected rated participants: got=%d want=1", es.TotalParticipantsRated)
	}
	if es.CountGrade5Total != 1 {
		t.Fatalf("final-score histogram not updated: %+v", es)
	}
	if es.AverageScore == nil || *es.AverageScore != 5 {
		t.Fatalf("unexpected event average: got=%v want=5", es.AverageScore)
	}
}

func TestDeleteRatingRecomputesStatistics(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newRatingService(t, tx)
	partStats := repos.NewParticipantStatisticsRepo(tx, testutil.Logger(t))

	input := validInput(fix)
	input.Score = 2
	first, err := svc.RateParticipant(ctx, input)
	if err != nil {
		t.Fatalf("first rating: %v", err)
	}

	online := testutil.SeedOnlineSession(t, tx, fix.Event.ID, "webinar")
	input = validInput(fix)
	input.Score = 4
	input.OnlineSessionID = &online.ID
	if _, err := svc.RateParticipant(ctx, input); err != nil {
		t.Fatalf("second rating: %v", err)
	}

	if err := svc.DeleteRating(ctx, first.ID); err != nil {
		t.Fatalf("delete rating: %v", err)
	}

	ps, err := partStats.GetByEventAndParticipant(ctx, nil, fix.Event.ID, fix.Entry.ID)
	if err != nil {
		t.Fatalf("load participant statistics: %v", err)
	}
	if ps.AverageScore == nil || *ps.AverageScore != 4 {
		t.Fatalf("statistics not recomputed after delete: got=%v want=4", ps.AverageScore)
	}
	if len(ps.SessionScoresCount) != 1 {
		t.Fatalf("scope map not refreshed: %v", ps.SessionScoresCount)
	}
}
