package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ProjectStatusDraft       = "draft"
	ProjectStatusSubmitted   = "submitted"
	ProjectStatusUnderReview = "under_review"
	ProjectStatusEvaluated   = "evaluated"
	ProjectStatusRejected    = "rejected"
)

// ProjectWork is one participant's submission for an event, rated on the
// judged-work track (criteria-weighted evaluations, separate from the direct
// participant rating track).
type ProjectWork struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_project_work_event_participant,priority:1" json:"event_id"`
	Event         *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_project_work_event_participant,priority:2" json:"participant_id"`
	Participant   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParticipantID;references:ID" json:"participant,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	FileURL     string `gorm:"column:file_url" json:"file_url"`
	Category    string `gorm:"column:category" json:"category"`
	Status      string `gorm:"not null;default:submitted;index" json:"status"`
	IsPublished bool   `gorm:"not null;default:true;index" json:"is_published"`

	SubmittedAt time.Time `gorm:"not null;default:now();index" json:"submitted_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ProjectWork) TableName() string { return "project_work" }

type EvaluationCriteria struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_criteria_event_name,priority:1" json:"event_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`

	Name        string  `gorm:"not null;uniqueIndex:uq_criteria_event_name,priority:2" json:"name"`
	Description string  `gorm:"column:description" json:"description"`
	MaxScore    int     `gorm:"not null;default:10;column:max_score" json:"max_score"`
	Weight      float64 `gorm:"not null;default:1.0" json:"weight"`
	Order       int     `gorm:"not null;default:0;column:sort_order" json:"order"`
	IsActive    bool    `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EvaluationCriteria) TableName() string { return "evaluation_criteria" }

// Evaluation is one judge's score for one project on one criterion. It is
// confirmed on creation; only confirmed evaluations enter the aggregates.
type Evaluation struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID  uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_evaluation_project_judge_criteria,priority:1" json:"project_id"`
	Project    *ProjectWork        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	JudgeID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_evaluation_project_judge_criteria,priority:2" json:"judge_id"`
	Judge      *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:JudgeID;references:ID" json:"judge,omitempty"`
	CriteriaID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_evaluation_project_judge_criteria,priority:3" json:"criteria_id"`
	Criteria   *EvaluationCriteria `gorm:"constraint:OnDelete:CASCADE;foreignKey:CriteriaID;references:ID" json:"criteria,omitempty"`

	Score   float64 `gorm:"not null" json:"score"`
	Comment string  `gorm:"column:comment" json:"comment"`

	IsConfirmed bool       `gorm:"not null;default:false;index" json:"is_confirmed"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	EvaluatedAt time.Time  `gorm:"not null;default:now();index" json:"evaluated_at"`
}

func (Evaluation) TableName() string { return "evaluation" }

const (
	WeightMethodManual     = "manual"
	WeightMethodConsensus  = "consensus"
	WeightMethodReputation = "reputation"
)

// JudgeWeight is the trust multiplier applied to a judge's scores in the
// weighted average, in [0.1, 3.0].
type JudgeWeight struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_judge_weight_event_judge,priority:1" json:"event_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`
	JudgeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_judge_weight_event_judge,priority:2" json:"judge_id"`
	Judge   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:JudgeID;references:ID" json:"judge,omitempty"`

	Weight            float64   `gorm:"not null;default:1.0" json:"weight"`
	CalculationMethod string    `gorm:"not null;default:consensus;column:calculation_method" json:"calculation_method"`
	CalculatedAt      time.Time `gorm:"not null;default:now();column:calculated_at" json:"calculated_at"`
}

func (JudgeWeight) TableName() string { return "judge_weight" }

const (
	StatEventSummary     = "event_summary"
	StatRatingSummary    = "rating_summary"
	StatJudgeConsensus   = "judge_consensus"
	StatParticipantStats = "participant_stats"
	StatLeaderboard      = "leaderboard"
	StatWeightedAvg      = "weighted_avg"
)

// CachedStatistic is the DB-backed layer of the statistics cache; the
// process cache in front of it holds the same payload under the same key.
type CachedStatistic struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cached_statistic_event_type,priority:1" json:"event_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`

	StatisticType string         `gorm:"not null;uniqueIndex:uq_cached_statistic_event_type,priority:2;column:statistic_type" json:"statistic_type"`
	Data          datatypes.JSON `gorm:"not null" json:"data"`
	Version       int            `gorm:"not null;default:1" json:"version"`
	ExpiresAt     time.Time      `gorm:"not null;index" json:"expires_at"`
	CalculatedAt  time.Time      `gorm:"not null;default:now();column:calculated_at" json:"calculated_at"`
}

func (CachedStatistic) TableName() string { return "cached_statistic" }

func (c *CachedStatistic) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

const (
	SnapshotDaily     = "daily"
	SnapshotWeekly    = "weekly"
	SnapshotMilestone = "milestone"
	SnapshotManual    = "manual"
)

// StatisticSnapshot is an immutable point-in-time capture of the event
// summary; snapshots are only ever appended.
type StatisticSnapshot struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`

	SnapshotType string         `gorm:"not null;index;column:snapshot_type" json:"snapshot_type"`
	Data         datatypes.JSON `gorm:"not null" json:"data"`
	TakenAt      time.Time      `gorm:"not null;index;column:taken_at" json:"taken_at"`
	Notes        string         `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (StatisticSnapshot) TableName() string { return "statistic_snapshot" }
