package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	"github.com/yungbote/eventjudge-backend/internal/data/repos/testutil"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

type captureEnqueuer struct {
	tasks []string
}

func (c *captureEnqueuer) Enqueue(task string, eventID uuid.UUID) bool {
	c.tasks = append(c.tasks, task)
	return true
}

func newEvaluationService(tb testing.TB, tx *gorm.DB, queue services.Enqueuer) services.EvaluationService {
	tb.Helper()
	log := testutil.Logger(tb)
	return services.NewEvaluationService(
		tx,
		log,
		queue,
		repos.NewEventParticipantRepo(tx, log),
		repos.NewProjectWorkRepo(tx, log),
		repos.NewEvaluationCriteriaRepo(tx, log),
		repos.NewEvaluationRepo(tx, log),
	)
}

func TestCreateEvaluation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	queue := &captureEnqueuer{}
	svc := newEvaluationService(t, tx, queue)

	project := seedProject(t, tx, fix.Event.ID, fix.Participant.ID, "Entry")
	criteria := seedCriteria(t, tx, fix.Event.ID, "Design", 10, 1)

	eval, err := svc.CreateEvaluation(ctx, services.CreateEvaluationInput{
		ProjectID:  project.ID,
		JudgeID:    fix.Referee.ID,
		CriteriaID: criteria.ID,
		Score:      7.5,
		Comment:    "solid work",
	})
	if err != nil {
		t.Fatalf("create evaluation: %v", err)
	}
	if !eval.IsConfirmed || eval.ConfirmedAt == nil {
		t.Fatalf("evaluation not auto-confirmed: %+v", eval)
	}
	if len(queue.tasks) != 1 || queue.tasks[0] != services.TaskProcessNewEvaluation {
		t.Fatalf("follow-up task not enqueued: %v", queue.tasks)
	}
}

func TestCreateEvaluationValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	svc := newEvaluationService(t, tx, &captureEnqueuer{})

	project := seedProject(t, tx, fix.Event.ID, fix.Participant.ID, "Entry")
	criteria := seedCriteria(t, tx, fix.Event.ID, "Design", 10, 1)

	valid := services.CreateEvaluationInput{
		ProjectID:  project.ID,
		JudgeID:    fix.Referee.ID,
		CriteriaID: criteria.ID,
		Score:      5,
	}

	t.Run("unknown project", func(t *testing.T) {
		input := valid
		input.ProjectID = uuid.New()
		_, err := svc.CreateEvaluation(ctx, input)
		wantFieldError(t, err, "project")
	})

	t.Run("unpublished project", func(t *testing.T) {
		author := testutil.SeedUser(t, tx, "hidden-"+uuid.NewString()+"@example.com")
		hidden := seedProject(t, tx, fix.Event.ID, author.ID, "Hidden")
		if err := tx.Model(hidden).Update("is_published", false).Error; err != nil {
			t.Fatalf("unpublish: %v", err)
		}

		input := valid
		input.ProjectID = hidden.ID
		_, err := svc.CreateEvaluation(ctx, input)
		wantFieldError(t, err, "project")
	})

	t.Run("judge without referee role", func(t *testing.T) {
		input := valid
		input.JudgeID = fix.Participant.ID
		_, err := svc.CreateEvaluation(ctx, input)
		wantFieldError(t, err, "judge")
	})

	t.Run("self evaluation", func(t *testing.T) {
		own := seedProject(t, tx, fix.Event.ID, uuid.New(), "Own")
		if err := tx.Model(own).Update("participant_id", fix.Referee.ID).Error; err != nil {
			t.Fatalf("rewire project: %v", err)
		}

		input := valid
		input.ProjectID = own.ID
		_, err := svc.CreateEvaluation(ctx, input)
		wantFieldError(t, err, "judge")
	})

	t.Run("criteria from another event", func(t *testing.T) {
		other := testutil.SeedEvent(t, tx)
		foreign := seedCriteria(t, tx, other.Event.ID, "Elsewhere", 10, 1)

		input := valid
		input.CriteriaID = foreign.ID
		_, err := svc.CreateEvaluation(ctx, input)
		wantFieldError(t, err, "criteria")
	})

	t.Run("inactive criteria", func(t *testing.T) {
		dormant := seedCriteria(t, tx, fix.Event.ID, "Dormant", 10, 1)
		if err := tx.Model(dormant).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate: %v", err)
		}

		input := valid
		input.CriteriaID = dormant.ID
		_, err := svc.CreateEvaluation(ctx, input)
		wantFieldError(t, err, "criteria")
	})

	t.Run("score above max", func(t *testing.T) {
		input := valid
		input.Score = 11
		_, err := svc.CreateEvaluation(ctx, input)
		wantFieldError(t, err, "score")
	})

	t.Run("duplicate", func(t *testing.T) {
		if _, err := svc.CreateEvaluation(ctx, valid); err != nil {
			t.Fatalf("first evaluation: %v", err)
		}
		_, err := svc.CreateEvaluation(ctx, valid)
		wantFieldError(t, err, "criteria")
	})
}

func TestDeleteEvaluationEnqueuesFollowUp(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	fix := testutil.SeedEvent(t, tx)
	queue := &captureEnqueuer{}
	svc := newEvaluationService(t, tx, queue)

	project := seedProject(t, tx, fix.Event.ID, fix.Participant.ID, "Entry")
	criteria := seedCriteria(t, tx, fix.Event.ID, "Design", 10, 1)
	eval := seedEvaluation(t, tx, project.ID, fix.Referee.ID, criteria.ID, 6)

	if err := svc.DeleteEvaluation(ctx, eval.ID); err != nil {
		t.Fatalf("delete evaluation: %v", err)
	}
	if len(queue.tasks) != 1 || queue.tasks[0] != services.TaskProcessNewEvaluation {
		t.Fatalf("follow-up task not enqueued: %v", queue.tasks)
	}

	if _, err := svc.ListForProject(ctx, project.ID); err != nil {
		t.Fatalf("list after delete: %v", err)
	}
}
