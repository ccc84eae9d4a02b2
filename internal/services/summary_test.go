package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/cache"
	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	"github.com/yungbote/eventjudge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

func newSummaryService(tb testing.TB, tx *gorm.DB) services.SummaryService {
	tb.Helper()
	log := testutil.Logger(tb)
	return services.NewSummaryService(
		tx,
		log,
		nil,
		cache.NewMemoryCache(),
		time.Hour,
		repos.NewEventRepo(tx, log),
		repos.NewEventParticipantRepo(tx, log),
		repos.NewRatingRepo(tx, log),
		repos.NewProjectWorkRepo(tx, log),
		repos.NewEvaluationCriteriaRepo(tx, log),
		repos.NewEvaluationRepo(tx, log),
		repos.NewJudgeWeightRepo(tx, log),
		repos.NewCachedStatisticRepo(tx, log),
		repos.NewStatisticSnapshotRepo(tx, log),
	)
}

func seedProject(tb testing.TB, tx *gorm.DB, eventID, participantUserID uuid.UUID, title string) *types.ProjectWork {
	tb.Helper()
	p := &types.ProjectWork{
		ID:            uuid.New(),
		EventID:       eventID,
		ParticipantID: participantUserID,
		Title:         title,
		Status:        types.ProjectStatusSubmitted,
		IsPublished:   true,
		SubmittedAt:   time.Now(),
	}
	if err := tx.Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func seedCriteria(tb testing.TB, tx *gorm.DB, eventID uuid.UUID, name string, maxScore int, weight float64) *types.EvaluationCriteria {
	tb.Helper()
	c := &types.EvaluationCriteria{
		ID:       uuid.New(),
		EventID:  eventID,
		Name:     name,
		MaxScore: maxScore,
		Weight:   weight,
		IsActive: true,
	}
	if err := tx.Create(c).Error; err != nil {
		tb.Fatalf("seed criteria: %v", err)
	}
	return c
}

func seedEvaluation(tb testing.TB, tx *gorm.DB, projectID, judgeID, criteriaID uuid.UUID, score float64) *types.Evaluation {
	tb.Helper()
	now := time.Now()
	e := &types.Evaluation{
		ID:          uuid.New(),
		ProjectID:   projectID,
		JudgeID:     judgeID,
		CriteriaID:  criteriaID,
		Score:       score,
		IsConfirmed: true,
		ConfirmedAt: &now,
		EvaluatedAt: now,
	}
	if err := tx.Create(e).Error; err != nil {
		tb.Fatalf("seed evaluation: %v", err)
	}
	return e
}

func TestEventSummary(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newSummaryService(t, tx)

	testutil.SeedParticipant(t, tx, fix.Event.ID, fix.Owner.ID, types.RoleOwner)

	project := seedProject(t, tx, fix.Event.ID, fix.Participant.ID, "Solar Tracker")
	criteria := seedCriteria(t, tx, fix.Event.ID, "Innovation", 10, 1)
	seedEvaluation(t, tx, project.ID, fix.Referee.ID, criteria.ID, 8)

	summary, err := svc.EventSummary(ctx, fix.Event.ID, false)
	if err != nil {
		t.Fatalf("build summary: %v", err)
	}

	if summary.Participants.Total != 3 || summary.Participants.Referees != 1 || summary.Participants.Owners != 1 {
		t.Fatalf("unexpected participant counts: %+v", summary.Participants)
	}
	if summary.Projects.Total != 1 || summary.Projects.Published != 1 {
		t.Fatalf("unexpected project counts: %+v", summary.Projects)
	}
	if summary.Evaluations.Total != 1 || summary.Evaluations.AverageScore != 8 {
		t.Fatalf("unexpected evaluation totals: %+v", summary.Evaluations)
	}
	if len(summary.Criteria) != 1 || summary.Criteria[0].EvaluationCount != 1 {
		t.Fatalf("unexpected criteria stats: %+v", summary.Criteria)
	}
	if len(summary.ProjectRankings) != 1 || summary.ProjectRankings[0].Rank != 1 {
		t.Fatalf("unexpected rankings: %+v", summary.ProjectRankings)
	}

	// The build writes through to the cached_statistic row.
	cached := repos.NewCachedStatisticRepo(tx, testutil.Logger(t))
	row, err := cached.Get(ctx, nil, fix.Event.ID, types.StatEventSummary)
	if err != nil {
		t.Fatalf("load cached row: %v", err)
	}
	if row.IsExpired(time.Now()) {
		t.Fatalf("fresh cache row already expired: %+v", row)
	}
}

func TestEventSummaryForceRefresh(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newSummaryService(t, tx)

	first, err := svc.EventSummary(ctx, fix.Event.ID, false)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}

	// New data appears; a plain read still serves the cached payload, a
	// forced refresh sees the new project.
	seedProject(t, tx, fix.Event.ID, fix.Participant.ID, "Late Entry")

	cachedAgain, err := svc.EventSummary(ctx, fix.Event.ID, false)
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if cachedAgain.Projects.Total != first.Projects.Total {
		t.Fatalf("cached read recomputed: %+v", cachedAgain.Projects)
	}

	fresh, err := svc.EventSummary(ctx, fix.Event.ID, true)
	if err != nil {
		t.Fatalf("forced refresh: %v", err)
	}
	if fresh.Projects.Total != 1 {
		t.Fatalf("forced refresh missed new project: %+v", fresh.Projects)
	}
}

func TestInvalidateCache(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newSummaryService(t, tx)

	if _, err := svc.EventSummary(ctx, fix.Event.ID, false); err != nil {
		t.Fatalf("build summary: %v", err)
	}

	deleted, err := svc.InvalidateCache(ctx, fix.Event.ID)
	if err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("unexpected delete count: got=%d want=1", deleted)
	}

	deleted, err = svc.InvalidateCache(ctx, fix.Event.ID)
	if err != nil {
		t.Fatalf("second invalidate: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected nothing left to delete, got %d", deleted)
	}
}

func TestTakeSnapshot(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newSummaryService(t, tx)

	snap, err := svc.TakeSnapshot(ctx, fix.Event.ID, types.SnapshotManual, "before finals")
	if err != nil {
		t.Fatalf("take snapshot: %v", err)
	}
	if snap.SnapshotType != types.SnapshotManual || snap.Notes != "before finals" {
		t.Fatalf("unexpected snapshot row: %+v", snap)
	}
	if len(snap.Data) == 0 {
		t.Fatalf("snapshot payload is empty")
	}
}

func TestUpdateJudgeWeights(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newSummaryService(t, tx)

	harsh := testutil.SeedUser(t, tx, "harsh-"+uuid.NewString()+"@example.com")
	testutil.SeedParticipant(t, tx, fix.Event.ID, harsh.ID, types.RoleReferee)

	project := seedProject(t, tx, fix.Event.ID, fix.Participant.ID, "Project")
	criteria := seedCriteria(t, tx, fix.Event.ID, "Execution", 10, 1)
	seedEvaluation(t, tx, project.ID, fix.Referee.ID, criteria.ID, 9)
	seedEvaluation(t, tx, project.ID, harsh.ID, criteria.ID, 3)

	weights, err := svc.UpdateJudgeWeights(ctx, fix.Event.ID)
	if err != nil {
		t.Fatalf("update weights: %v", err)
	}
	if len(weights) != 2 {
		t.Fatalf("expected a weight per judge, got %d", len(weights))
	}
	for _, w := range weights {
		if w.CalculationMethod != types.WeightMethodConsensus {
			t.Fatalf("unexpected method: %+v", w)
		}
		if w.Weight < 0.1 || w.Weight > 3 {
			t.Fatalf("weight out of range: %+v", w)
		}
	}
}

func TestParticipantStatisticsByRole(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newSummaryService(t, tx)

	project := seedProject(t, tx, fix.Event.ID, fix.Participant.ID, "Entry")
	criteria := seedCriteria(t, tx, fix.Event.ID, "Design", 10, 1)
	seedEvaluation(t, tx, project.ID, fix.Referee.ID, criteria.ID, 7)

	t.Run("participant", func(t *testing.T) {
		report, err := svc.ParticipantStatistics(ctx, fix.Participant.ID, fix.Event.ID)
		if err != nil {
			t.Fatalf("participant report: %v", err)
		}
		if report.Role != types.RoleParticipant {
			t.Fatalf("unexpected role: %+v", report)
		}
		if report.Project == nil || report.Project.ID != project.ID {
			t.Fatalf("project section missing: %+v", report)
		}
		if report.Ranking == nil || report.Ranking.TotalProjects != 1 {
			t.Fatalf("ranking section missing: %+v", report)
		}
		if len(report.JudgeFeedback) != 1 {
			t.Fatalf("judge feedback missing: %+v", report.JudgeFeedback)
		}
		if report.Engagement == nil || !report.Engagement.CriteriaDetails.HasProject {
			t.Fatalf("engagement section missing: %+v", report.Engagement)
		}
		if !report.Engagement.CriteriaDetails.ProjectOnTime {
			t.Fatalf("no-deadline submission should count as on time: %+v", report.Engagement.CriteriaDetails)
		}
		if report.EvaluationStatistics != nil {
			t.Fatalf("referee section leaked into participant report")
		}
	})

	t.Run("referee", func(t *testing.T) {
		report, err := svc.ParticipantStatistics(ctx, fix.Referee.ID, fix.Event.ID)
		if err != nil {
			t.Fatalf("referee report: %v", err)
		}
		if report.Role != types.RoleReferee {
			t.Fatalf("unexpected role: %+v", report)
		}
		if report.EvaluationStatistics == nil || report.EvaluationStatistics.Total != 1 {
			t.Fatalf("evaluation stats missing: %+v", report.EvaluationStatistics)
		}
		if report.Project != nil {
			t.Fatalf("participant section leaked into referee report")
		}
	})

	t.Run("owner", func(t *testing.T) {
		testutil.SeedParticipant(t, tx, fix.Event.ID, fix.Owner.ID, types.RoleOwner)

		report, err := svc.ParticipantStatistics(ctx, fix.Owner.ID, fix.Event.ID)
		if err != nil {
			t.Fatalf("owner report: %v", err)
		}
		if report.EventSummary == nil {
			t.Fatalf("owner report missing event summary")
		}
	})
}
