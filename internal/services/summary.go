package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/cache"
	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/observability"
	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/stats"
)

const (
	dbCacheTTL          = 24 * time.Hour
	participantStatsTTL = 30 * time.Minute
	leaderboardTTL      = 5 * time.Minute
	defaultSummaryTTL   = time.Hour

	defaultLeaderboardLimit = 20
	summaryRankingsLimit    = 10
	snapshotSweepWorkers    = 4
)

type ParticipantCounts struct {
	Total        int `json:"total"`
	Owners       int `json:"owners"`
	Referees     int `json:"referees"`
	Participants int `json:"participants"`
	Confirmed    int `json:"confirmed"`
}

type ProjectCounts struct {
	Total       int `json:"total"`
	Published   int `json:"published"`
	Evaluated   int `json:"evaluated"`
	UnderReview int `json:"under_review"`
}

type EvaluationTotals struct {
	Total        int     `json:"total"`
	AverageScore float64 `json:"average_score"`
}

type CriterionStats struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MaxScore        int       `json:"max_score"`
	Weight          float64   `json:"weight"`
	EvaluationCount int       `json:"evaluation_count"`
	AverageScore    float64   `json:"average_score"`
}

type ProjectRanking struct {
	Rank             int       `json:"rank"`
	ProjectID        uuid.UUID `json:"project_id"`
	Title            string    `json:"title"`
	ParticipantName  string    `json:"participant_name"`
	ParticipantEmail string    `json:"participant_email"`
	WeightedAverage  float64   `json:"weighted_average"`
	EvaluationCount  int       `json:"evaluation_count"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

type SummaryMetrics struct {
	Trend     stats.TrendResult    `json:"trend"`
	Consensus stats.EventConsensus `json:"consensus"`
}

// EventSummary is the judged-track rollup cached per event.
type EventSummary struct {
	EventID         uuid.UUID         `json:"event_id"`
	EventName       string            `json:"event_name"`
	EventStatus     string            `json:"event_status"`
	Participants    ParticipantCounts `json:"participants"`
	Projects        ProjectCounts     `json:"projects"`
	Evaluations     EvaluationTotals  `json:"evaluations"`
	Criteria        []CriterionStats  `json:"criteria"`
	ProjectRankings []ProjectRanking  `json:"project_rankings"`
	Metrics         SummaryMetrics    `json:"metrics"`
	CalculatedAt    time.Time         `json:"calculated_at"`
}

type ProjectReport struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Status      string             `json:"status"`
	SubmittedAt time.Time          `json:"submitted_at"`
	Score       stats.ProjectScore `json:"score"`
}

type RankingInfo struct {
	Rank          *int `json:"rank"`
	TotalProjects int  `json:"total_projects"`
}

type JudgeComment struct {
	JudgeID     uuid.UUID `json:"judge_id"`
	Criteria    string    `json:"criteria"`
	Score       float64   `json:"score"`
	Comment     string    `json:"comment"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

type JudgeEvaluationStats struct {
	Total        int     `json:"total"`
	Confirmed    int     `json:"confirmed"`
	AverageScore float64 `json:"average_score"`
}

// ParticipantReport is the per-role statistics payload; only the sections
// for the participant's role are populated.
type ParticipantReport struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
	IsConfirmed  bool      `json:"is_confirmed"`

	Project       *ProjectReport `json:"project,omitempty"`
	Ranking       *RankingInfo   `json:"ranking,omitempty"`
	JudgeFeedback []JudgeComment `json:"judge_feedback,omitempty"`

	EvaluationStatistics *JudgeEvaluationStats `json:"evaluation_statistics,omitempty"`
	Consensus            *stats.JudgeConsensus `json:"consensus,omitempty"`
	JudgeWeight          *float64              `json:"judge_weight,omitempty"`

	Engagement *stats.EngagementResult `json:"engagement,omitempty"`

	EventSummary *EventSummary `json:"event_summary,omitempty"`
}

// SummaryService is the judged-work track: criteria-weighted project scores,
// judge consensus and the layered summary cache (process cache, then the
// cached_statistic row, then a recompute).
type SummaryService interface {
	EventSummary(ctx context.Context, eventID uuid.UUID, forceRefresh bool) (*EventSummary, error)
	ParticipantStatistics(ctx context.Context, userID, eventID uuid.UUID) (*ParticipantReport, error)
	ProjectLeaderboard(ctx context.Context, eventID uuid.UUID, limit int) ([]ProjectRanking, error)
	TakeSnapshot(ctx context.Context, eventID uuid.UUID, snapshotType, notes string) (*types.StatisticSnapshot, error)
	SnapshotSweep(ctx context.Context) error
	InvalidateCache(ctx context.Context, eventID uuid.UUID) (int64, error)
	UpdateJudgeWeights(ctx context.Context, eventID uuid.UUID) ([]*types.JudgeWeight, error)
	ProcessNewEvaluation(ctx context.Context, eventID uuid.UUID) error
}

type summaryService struct {
	db         *gorm.DB
	log        *logger.Logger
	metrics    *observability.Metrics
	cache      cache.Cache
	summaryTTL time.Duration

	eventRepo       repos.EventRepo
	participantRepo repos.EventParticipantRepo
	ratingRepo      repos.RatingRepo
	projectRepo     repos.ProjectWorkRepo
	criteriaRepo    repos.EvaluationCriteriaRepo
	evaluationRepo  repos.EvaluationRepo
	weightRepo      repos.JudgeWeightRepo
	cachedRepo      repos.CachedStatisticRepo
	snapshotRepo    repos.StatisticSnapshotRepo
}

func NewSummaryService(
	db *gorm.DB,
	log *logger.Logger,
	metrics *observability.Metrics,
	processCache cache.Cache,
	summaryTTL time.Duration,
	eventRepo repos.EventRepo,
	participantRepo repos.EventParticipantRepo,
	ratingRepo repos.RatingRepo,
	projectRepo repos.ProjectWorkRepo,
	criteriaRepo repos.EvaluationCriteriaRepo,
	evaluationRepo repos.EvaluationRepo,
	weightRepo repos.JudgeWeightRepo,
	cachedRepo repos.CachedStatisticRepo,
	snapshotRepo repos.StatisticSnapshotRepo,
) SummaryService {
	if summaryTTL <= 0 {
		summaryTTL = defaultSummaryTTL
	}
	serviceLog := log.With("service", "SummaryService")
	return &summaryService{
		db:              db,
		log:             serviceLog,
		metrics:         metrics,
		cache:           processCache,
		summaryTTL:      summaryTTL,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		ratingRepo:      ratingRepo,
		projectRepo:     projectRepo,
		criteriaRepo:    criteriaRepo,
		evaluationRepo:  evaluationRepo,
		weightRepo:      weightRepo,
		cachedRepo:      cachedRepo,
		snapshotRepo:    snapshotRepo,
	}
}

func summaryCacheKey(eventID uuid.UUID) string {
	return "event_summary_" + eventID.String()
}

func participantStatsCacheKey(eventID, userID uuid.UUID) string {
	return fmt.Sprintf("participant_stats_%s_%s", eventID, userID)
}

func leaderboardCacheKey(eventID uuid.UUID, limit int) string {
	return fmt.Sprintf("leaderboard_%s_%d", eventID, limit)
}

func (ss *summaryService) EventSummary(ctx context.Context, eventID uuid.UUID, forceRefresh bool) (*EventSummary, error) {
	key := summaryCacheKey(eventID)

	if !forceRefresh {
		if raw, err := ss.cache.Get(ctx, key); err == nil {
			ss.metrics.IncCacheLookup("memory", true)
			var summary EventSummary
			if err := json.Unmarshal(raw, &summary); err == nil {
				return &summary, nil
			}
		}
		ss.metrics.IncCacheLookup("memory", false)

		row, err := ss.cachedRepo.Get(ctx, nil, eventID, types.StatEventSummary)
		if err == nil && !row.IsExpired(time.Now()) {
			ss.metrics.IncCacheLookup("db", true)
			var summary EventSummary
			if err := json.Unmarshal(row.Data, &summary); err == nil {
				_ = ss.cache.Set(ctx, key, row.Data, ss.summaryTTL)
				return &summary, nil
			}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to read cached statistic: %w", err)
		}
		ss.metrics.IncCacheLookup("db", false)
	}

	start := time.Now()
	summary, err := ss.buildEventSummary(ctx, eventID)
	ss.metrics.ObserveRecompute("summary", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event summary: %w", err)
	}

	if err := ss.cache.Set(ctx, key, raw, ss.summaryTTL); err != nil {
		ss.log.Warn("Failed to store summary in process cache", "event_id", eventID, "error", err.Error())
	}

	now := time.Now()
	if _, err := ss.cachedRepo.Upsert(ctx, nil, &types.CachedStatistic{
		ID:            uuid.New(),
		EventID:       eventID,
		StatisticType: types.StatEventSummary,
		Data:          raw,
		ExpiresAt:     now.Add(dbCacheTTL),
		CalculatedAt:  now,
	}); err != nil {
		ss.log.Warn("Failed to store summary in db cache", "event_id", eventID, "error", err.Error())
	}

	return summary, nil
}

func (ss *summaryService) buildEventSummary(ctx context.Context, eventID uuid.UUID) (*EventSummary, error) {
	event, err := ss.eventRepo.GetByID(ctx, nil, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	participants, err := ss.participantRepo.ListByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	counts := ParticipantCounts{Total: len(participants)}
	for _, p := range participants {
		switch p.Role {
		case types.RoleOwner:
			counts.Owners++
		case types.RoleReferee:
			counts.Referees++
		case types.RoleParticipant:
			counts.Participants++
		}
		if p.IsConfirmed {
			counts.Confirmed++
		}
	}

	projects, err := ss.projectRepo.ListByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projectCounts := ProjectCounts{Total: len(projects)}
	for _, p := range projects {
		if p.IsPublished {
			projectCounts.Published++
		}
		switch p.Status {
		case types.ProjectStatusEvaluated:
			projectCounts.Evaluated++
		case types.ProjectStatusUnderReview:
			projectCounts.UnderReview++
		}
	}

	evals, err := ss.evaluationRepo.ListConfirmedByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	evalTotals := EvaluationTotals{Total: len(evals)}
	if len(evals) > 0 {
		sum := 0.0
		for _, e := range evals {
			sum += e.Score
		}
		evalTotals.AverageScore = stats.Round2(sum / float64(len(evals)))
	}

	criteria, err := ss.criteriaRepo.ListActiveByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	criteriaStats := make([]CriterionStats, 0, len(criteria))
	for _, c := range criteria {
		count := 0
		sum := 0.0
		for _, e := range evals {
			if e.CriteriaID == c.ID {
				count++
				sum += e.Score
			}
		}
		avg := 0.0
		if count > 0 {
			avg = stats.Round2(sum / float64(count))
		}
		criteriaStats = append(criteriaStats, CriterionStats{
			ID:              c.ID,
			Name:            c.Name,
			MaxScore:        c.MaxScore,
			Weight:          c.Weight,
			EvaluationCount: count,
			AverageScore:    avg,
		})
	}

	rankings, err := ss.projectRankings(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(rankings) > summaryRankingsLimit {
		rankings = rankings[:summaryRankingsLimit]
	}

	trendScores := make([]float64, 0, len(evals))
	for _, e := range evals {
		trendScores = append(trendScores, e.Score)
	}

	return &EventSummary{
		EventID:         event.ID,
		EventName:       event.Name,
		EventStatus:     event.Status,
		Participants:    counts,
		Projects:        projectCounts,
		Evaluations:     evalTotals,
		Criteria:        criteriaStats,
		ProjectRankings: rankings,
		Metrics: SummaryMetrics{
			Trend:     stats.Trend(trendScores),
			Consensus: stats.ConsensusForEvent(evals),
		},
		CalculatedAt: time.Now(),
	}, nil
}

// projectRankings scores every published project with the current judge
// weights and orders them by weighted average, best first.
func (ss *summaryService) projectRankings(ctx context.Context, eventID uuid.UUID) ([]ProjectRanking, error) {
	projects, err := ss.projectRepo.ListPublishedByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list published projects: %w", err)
	}

	evals, err := ss.evaluationRepo.ListConfirmedByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	byProject := map[uuid.UUID][]*types.Evaluation{}
	for _, e := range evals {
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e)
	}

	weights, err := ss.judgeWeightMap(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rankings := make([]ProjectRanking, 0, len(projects))
	for _, p := range projects {
		score := stats.ScoreProject(byProject[p.ID], weights)

		name, email := "", ""
		if p.Participant != nil {
			name = p.Participant.FullName()
			email = p.Participant.Email
		}

		rankings = append(rankings, ProjectRanking{
			ProjectID:        p.ID,
			Title:            p.Title,
			ParticipantName:  name,
			ParticipantEmail: email,
			WeightedAverage:  score.FinalWeightedAverage,
			EvaluationCount:  score.TotalEvaluations,
			SubmittedAt:      p.SubmittedAt,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].WeightedAverage > rankings[j].WeightedAverage
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings, nil
}

func (ss *summaryService) judgeWeightMap(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]float64, error) {
	rows, err := ss.weightRepo.ListByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list judge weights: %w", err)
	}
	weights := make(map[uuid.UUID]float64, len(rows))
	for _, w := range rows {
		weights[w.JudgeID] = w.Weight
	}
	return weights, nil
}

func (ss *summaryService) ParticipantStatistics(ctx context.Context, userID, eventID uuid.UUID) (*ParticipantReport, error) {
	key := participantStatsCacheKey(eventID, userID)
	if raw, err := ss.cache.Get(ctx, key); err == nil {
		ss.metrics.IncCacheLookup("memory", true)
		var report ParticipantReport
		if err := json.Unmarshal(raw, &report); err == nil {
			return &report, nil
		}
	}
	ss.metrics.IncCacheLookup("memory", false)

	participant, err := ss.participantRepo.GetByEventAndUser(ctx, nil, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}

	report := &ParticipantReport{
		UserID:       userID,
		Role:         participant.Role,
		RegisteredAt: participant.RegisteredAt,
		IsConfirmed:  participant.IsConfirmed,
	}
	if participant.User != nil {
		report.Email = participant.User.Email
	}

	switch participant.Role {
	case types.RoleParticipant:
		err = ss.fillParticipantReport(ctx, participant, report)
	case types.RoleReferee:
		err = ss.fillRefereeReport(ctx, participant, report)
	case types.RoleOwner:
		report.EventSummary, err = ss.EventSummary(ctx, eventID, false)
	}
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(report); err == nil {
		_ = ss.cache.Set(ctx, key, raw, participantStatsTTL)
	}
	return report, nil
}

func (ss *summaryService) fillParticipantReport(ctx context.Context, participant *types.EventParticipant, report *ParticipantReport) error {
	engagement, err := ss.engagementFor(ctx, participant)
	if err != nil {
		return err
	}
	report.Engagement = engagement

	project, err := ss.projectRepo.GetByEventAndParticipant(ctx, nil, participant.EventID, participant.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load project: %w", err)
	}

	evals, err := ss.evaluationRepo.ListConfirmedByProject(ctx, nil, project.ID)
	if err != nil {
		return fmt.Errorf("failed to list project evaluations: %w", err)
	}
	weights, err := ss.judgeWeightMap(ctx, participant.EventID)
	if err != nil {
		return err
	}

	report.Project = &ProjectReport{
		ID:          project.ID,
		Title:       project.Title,
		Status:      project.Status,
		SubmittedAt: project.SubmittedAt,
		Score:       stats.ScoreProject(evals, weights),
	}

	rankings, err := ss.projectRankings(ctx, participant.EventID)
	if err != nil {
		return err
	}
	info := &RankingInfo{TotalProjects: len(rankings)}
	for _, r := range rankings {
		if r.ProjectID == project.ID {
			rank := r.Rank
			info.Rank = &rank
			break
		}
	}
	report.Ranking = info

	feedback := make([]JudgeComment, 0, len(evals))
	for _, e := range evals {
		if e.Comment == "" {
			continue
		}
		criteriaName := ""
		if e.Criteria != nil {
			criteriaName = e.Criteria.Name
		}
		feedback = append(feedback, JudgeComment{
			JudgeID:     e.JudgeID,
			Criteria:    criteriaName,
			Score:       e.Score,
			Comment:     e.Comment,
			EvaluatedAt: e.EvaluatedAt,
		})
	}
	report.JudgeFeedback = feedback
	return nil
}

func (ss *summaryService) fillRefereeReport(ctx context.Context, participant *types.EventParticipant, report *ParticipantReport) error {
	judgeEvals, err := ss.evaluationRepo.ListByEventAndJudge(ctx, nil, participant.EventID, participant.UserID)
	if err != nil {
		return fmt.Errorf("failed to list judge evaluations: %w", err)
	}

	evalStats := &JudgeEvaluationStats{Total: len(judgeEvals)}
	sum := 0.0
	for _, e := range judgeEvals {
		if e.IsConfirmed {
			evalStats.Confirmed++
		}
		sum += e.Score
	}
	if len(judgeEvals) > 0 {
		evalStats.AverageScore = stats.Round2(sum / float64(len(judgeEvals)))
	}
	report.EvaluationStatistics = evalStats

	eventEvals, err := ss.evaluationRepo.ListConfirmedByEvent(ctx, nil, participant.EventID)
	if err != nil {
		return fmt.Errorf("failed to list event evaluations: %w", err)
	}
	consensus := stats.ConsensusForJudge(eventEvals, participant.UserID)
	report.Consensus = &consensus

	weight := 1.0
	if row, err := ss.weightRepo.GetByEventAndJudge(ctx, nil, participant.EventID, participant.UserID); err == nil {
		weight = row.Weight
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load judge weight: %w", err)
	}
	report.JudgeWeight = &weight

	engagement, err := ss.engagementFor(ctx, participant)
	if err != nil {
		return err
	}
	report.Engagement = engagement
	return nil
}

// engagementFor fills the engagement signals from the participant's project,
// evaluation activity and session-scoped ratings.
func (ss *summaryService) engagementFor(ctx context.Context, participant *types.EventParticipant) (*stats.EngagementResult, error) {
	var in stats.EngagementInput

	project, err := ss.projectRepo.GetByEventAndParticipant(ctx, nil, participant.EventID, participant.UserID)
	if err == nil {
		in.HasProject = true
		// No registration deadline means the submission cannot be late.
		if participant.Event == nil || participant.Event.RegistrationEndsAt == nil {
			in.ProjectOnTime = true
		} else {
			in.ProjectOnTime = !project.SubmittedAt.After(*participant.Event.RegistrationEndsAt)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	if participant.Role == types.RoleReferee {
		judgeEvals, err := ss.evaluationRepo.ListByEventAndJudge(ctx, nil, participant.EventID, participant.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list judge evaluations: %w", err)
		}
		in.HasEvaluations = len(judgeEvals) > 0
	}

	if participant.Role == types.RoleParticipant {
		ratings, err := ss.ratingRepo.ListByEventAndParticipant(ctx, nil, participant.EventID, participant.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list participant ratings: %w", err)
		}
		for _, r := range ratings {
			if r.OnlineSessionID != nil || r.OfflineSessionID != nil {
				in.SessionParticipation = true
				break
			}
		}
	}

	result := stats.Engagement(in)
	return &result, nil
}

func (ss *summaryService) ProjectLeaderboard(ctx context.Context, eventID uuid.UUID, limit int) ([]ProjectRanking, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	key := leaderboardCacheKey(eventID, limit)
	if raw, err := ss.cache.Get(ctx, key); err == nil {
		ss.metrics.IncCacheLookup("memory", true)
		var rankings []ProjectRanking
		if err := json.Unmarshal(raw, &rankings); err == nil {
			return rankings, nil
		}
	}
	ss.metrics.IncCacheLookup("memory", false)

	rankings, err := ss.projectRankings(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(rankings) > limit {
		rankings = rankings[:limit]
	}

	if raw, err := json.Marshal(rankings); err == nil {
		_ = ss.cache.Set(ctx, key, raw, leaderboardTTL)
	}
	return rankings, nil
}

func (ss *summaryService) TakeSnapshot(ctx context.Context, eventID uuid.UUID, snapshotType, notes string) (*types.StatisticSnapshot, error) {
	if snapshotType == "" {
		snapshotType = types.SnapshotManual
	}

	summary, err := ss.EventSummary(ctx, eventID, true)
	if err != nil {
		return nil, err
	}

	data, err := marshalJSON(summary)
	if err != nil {
		return nil, err
	}

	snapshot, err := ss.snapshotRepo.Create(ctx, nil, &types.StatisticSnapshot{
		ID:           uuid.New(),
		EventID:      eventID,
		SnapshotType: snapshotType,
		Data:         data,
		TakenAt:      time.Now(),
		Notes:        notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	ss.log.Info("Statistics snapshot taken",
		"event_id", eventID,
		"snapshot_id", snapshot.ID,
		"snapshot_type", snapshotType,
	)
	return snapshot, nil
}

// SnapshotSweep takes a daily snapshot of every active event.
func (ss *summaryService) SnapshotSweep(ctx context.Context) error {
	events, err := ss.eventRepo.ListActive(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list active events: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotSweepWorkers)
	for _, event := range events {
		eventID := event.ID
		g.Go(func() error {
			if _, err := ss.TakeSnapshot(gctx, eventID, types.SnapshotDaily, ""); err != nil {
				ss.log.Error("Snapshot sweep failed for event", "event_id", eventID, "error", err.Error())
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (ss *summaryService) InvalidateCache(ctx context.Context, eventID uuid.UUID) (int64, error) {
	if err := ss.cache.Delete(ctx, summaryCacheKey(eventID)); err != nil {
		ss.log.Warn("Failed to drop summary cache key", "event_id", eventID, "error", err.Error())
	}
	for _, prefix := range []string{
		"participant_stats_" + eventID.String() + "_",
		"leaderboard_" + eventID.String() + "_",
	} {
		if err := ss.cache.DeletePrefix(ctx, prefix); err != nil {
			ss.log.Warn("Failed to drop cache prefix", "prefix", prefix, "error", err.Error())
		}
	}

	deleted, err := ss.cachedRepo.DeleteByEvent(ctx, nil, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cached statistics: %w", err)
	}

	ss.log.Info("Statistics cache invalidated", "event_id", eventID, "deleted_rows", deleted)
	return deleted, nil
}

// UpdateJudgeWeights recomputes every judge's weight from their deviation
// against peer averages and stores them with the consensus method.
func (ss *summaryService) UpdateJudgeWeights(ctx context.Context, eventID uuid.UUID) ([]*types.JudgeWeight, error) {
	judgeIDs, err := ss.evaluationRepo.DistinctJudgeIDsByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list judges: %w", err)
	}
	evals, err := ss.evaluationRepo.ListConfirmedByEvent(ctx, nil, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	updated := make([]*types.JudgeWeight, 0, len(judgeIDs))
	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, judgeID := range judgeIDs {
			deviations := stats.JudgeDeviations(evals, judgeID)
			weight := stats.WeightFromDeviations(deviations)

			row, err := ss.weightRepo.Upsert(ctx, tx, &types.JudgeWeight{
				ID:                uuid.New(),
				EventID:           eventID,
				JudgeID:           judgeID,
				Weight:            weight,
				CalculationMethod: types.WeightMethodConsensus,
				CalculatedAt:      time.Now(),
			})
			if err != nil {
				return fmt.Errorf("failed to upsert judge weight: %w", err)
			}
			updated = append(updated, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ss.log.Info("Judge weights recalculated", "event_id", eventID, "judges", len(updated))
	return updated, nil
}

// ProcessNewEvaluation is the background follow-up to an evaluation write:
// refresh judge weights, drop stale caches, rebuild the summary.
func (ss *summaryService) ProcessNewEvaluation(ctx context.Context, eventID uuid.UUID) error {
	if _, err := ss.UpdateJudgeWeights(ctx, eventID); err != nil {
		return err
	}
	if _, err := ss.InvalidateCache(ctx, eventID); err != nil {
		return err
	}
	_, err := ss.EventSummary(ctx, eventID, true)
	return err
}
