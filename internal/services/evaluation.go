package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

// Background task names shared with the jobs queue.
const (
	TaskProcessNewEvaluation = "process_new_evaluation"
	TaskDailySnapshot        = "daily_statistics_snapshot"
	TaskCleanupStatistics    = "cleanup_old_statistics"
)

// Enqueuer hands follow-up work to the background queue. A false return
// means the queue is full and the task was dropped.
type Enqueuer interface {
	Enqueue(task string, eventID uuid.UUID) bool
}

type CreateEvaluationInput struct {
	ProjectID  uuid.UUID `json:"project"`
	JudgeID    uuid.UUID `json:"judge"`
	CriteriaID uuid.UUID `json:"criteria"`
	Score      float64   `json:"score"`
	Comment    string    `json:"comment"`
}

// EvaluationService owns the judged-track write path. Evaluations are
// confirmed on creation; the heavier follow-up (judge weights, cache
// invalidation, summary rebuild) runs on the background queue.
type EvaluationService interface {
	CreateEvaluation(ctx context.Context, input CreateEvaluationInput) (*types.Evaluation, error)
	DeleteEvaluation(ctx context.Context, evaluationID uuid.UUID) error
	GetEvaluation(ctx context.Context, evaluationID uuid.UUID) (*types.Evaluation, error)
	ListForProject(ctx context.Context, projectID uuid.UUID) ([]*types.Evaluation, error)
}

type evaluationService struct {
	db              *gorm.DB
	log             *logger.Logger
	queue           Enqueuer
	participantRepo repos.EventParticipantRepo
	projectRepo     repos.ProjectWorkRepo
	criteriaRepo    repos.EvaluationCriteriaRepo
	evaluationRepo  repos.EvaluationRepo
}

func NewEvaluationService(
	db *gorm.DB,
	log *logger.Logger,
	queue Enqueuer,
	participantRepo repos.EventParticipantRepo,
	projectRepo repos.ProjectWorkRepo,
	criteriaRepo repos.EvaluationCriteriaRepo,
	evaluationRepo repos.EvaluationRepo,
) EvaluationService {
	serviceLog := log.With("service", "EvaluationService")
	return &evaluationService{
		db:              db,
		log:             serviceLog,
		queue:           queue,
		participantRepo: participantRepo,
		projectRepo:     projectRepo,
		criteriaRepo:    criteriaRepo,
		evaluationRepo:  evaluationRepo,
	}
}

func (es *evaluationService) CreateEvaluation(ctx context.Context, input CreateEvaluationInput) (*types.Evaluation, error) {
	project, err := es.projectRepo.GetByID(ctx, nil, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("project", "project not found")
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if !project.IsPublished {
		return nil, apperrors.Validation("project", "project is not published")
	}

	judge, err := es.participantRepo.GetByEventAndUser(ctx, nil, project.EventID, input.JudgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("judge", "judge is not a participant of this event")
		}
		return nil, fmt.Errorf("failed to load judge row: %w", err)
	}
	if judge.Role != types.RoleReferee || !judge.IsConfirmed {
		return nil, apperrors.Validation("judge", "judge must hold a confirmed referee role in this event")
	}
	if project.ParticipantID == input.JudgeID {
		return nil, apperrors.Validation("judge", "a judge cannot evaluate their own project")
	}

	criteria, err := es.criteriaRepo.GetByID(ctx, nil, input.CriteriaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("criteria", "criteria not found")
		}
		return nil, fmt.Errorf("failed to load criteria: %w", err)
	}
	if criteria.EventID != project.EventID {
		return nil, apperrors.Validation("criteria", "criteria belongs to a different event")
	}
	if !criteria.IsActive {
		return nil, apperrors.Validation("criteria", "criteria is not active")
	}
	if input.Score < 0 || input.Score > float64(criteria.MaxScore) {
		return nil, apperrors.Validation("score", fmt.Sprintf("score must be between 0 and %d", criteria.MaxScore))
	}

	exists, err := es.evaluationRepo.Exists(ctx, nil, input.ProjectID, input.JudgeID, input.CriteriaID)
	if err != nil {
		return nil, fmt.Errorf("failed to check evaluation uniqueness: %w", err)
	}
	if exists {
		return nil, apperrors.Validation("criteria", "evaluation already exists for this criterion")
	}

	now := time.Now()
	evaluation := &types.Evaluation{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		JudgeID:     input.JudgeID,
		CriteriaID:  input.CriteriaID,
		Score:       input.Score,
		Comment:     input.Comment,
		IsConfirmed: true,
		ConfirmedAt: &now,
		EvaluatedAt: now,
	}

	if _, err := es.evaluationRepo.Create(ctx, nil, evaluation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation("criteria", "evaluation already exists for this criterion")
		}
		return nil, fmt.Errorf("failed to create evaluation: %w", err)
	}

	if es.queue != nil && !es.queue.Enqueue(TaskProcessNewEvaluation, project.EventID) {
		es.log.Warn("Evaluation follow-up dropped, queue full", "event_id", project.EventID)
	}

	es.log.Info("Evaluation created",
		"evaluation_id", evaluation.ID,
		"project_id", input.ProjectID,
		"judge_id", input.JudgeID,
	)
	return evaluation, nil
}

func (es *evaluationService) GetEvaluation(ctx context.Context, evaluationID uuid.UUID) (*types.Evaluation, error) {
	evaluation, err := es.evaluationRepo.GetByID(ctx, nil, evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load evaluation: %w", err)
	}
	return evaluation, nil
}

func (es *evaluationService) DeleteEvaluation(ctx context.Context, evaluationID uuid.UUID) error {
	evaluation, err := es.evaluationRepo.GetByID(ctx, nil, evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load evaluation: %w", err)
	}

	if err := es.evaluationRepo.Delete(ctx, nil, evaluationID); err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}

	project, err := es.projectRepo.GetByID(ctx, nil, evaluation.ProjectID)
	if err == nil && es.queue != nil {
		if !es.queue.Enqueue(TaskProcessNewEvaluation, project.EventID) {
			es.log.Warn("Evaluation follow-up dropped, queue full", "event_id", project.EventID)
		}
	}

	es.log.Info("Evaluation deleted", "evaluation_id", evaluationID)
	return nil
}

func (es *evaluationService) ListForProject(ctx context.Context, projectID uuid.UUID) ([]*types.Evaluation, error) {
	return es.evaluationRepo.ListConfirmedByProject(ctx, nil, projectID)
}
