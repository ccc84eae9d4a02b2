package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ParticipantStatistics is the derived per-(event, participant) aggregate.
// final_score is the ceiling of the mean of the participant's five_point
// ratings across all scopes; pass/fail ratings never contribute to it but
// are still counted in session_scores_count.
type ParticipantStatistics struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_participant_statistics,priority:1" json:"event_id"`
	Event         *Event            `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`
	ParticipantID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_participant_statistics,priority:2" json:"participant_id"`
	Participant   *EventParticipant `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParticipantID;references:ID" json:"participant,omitempty"`

	FinalScore   *int     `gorm:"column:final_score" json:"final_score"`
	AverageScore *float64 `gorm:"column:average_score" json:"average_score"`

	// SessionScoresCount maps scope key -> number of ratings in that scope,
	// pass/fail included.
	SessionScoresCount datatypes.JSONMap `gorm:"column:session_scores_count" json:"session_scores_count"`

	// MostPopularGrades lists the modal raw five_point score(s), ascending,
	// comma-joined ("4,5").
	MostPopularGrades *string `gorm:"column:most_popular_grades" json:"most_popular_grades"`

	CalculatedAt time.Time `gorm:"not null;default:now();column:calculated_at" json:"calculated_at"`
}

func (ParticipantStatistics) TableName() string { return "event_participant_statistics" }

// EventStatistics is the derived per-event aggregate. The grade histogram
// counts participants' final scores; the pass/fail counters count raw
// pass_fail rating rows.
type EventStatistics struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"event_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`

	AverageScore           *float64 `gorm:"column:average_score" json:"average_score"`
	TotalParticipantsRated int      `gorm:"not null;default:0;column:total_participants_rated" json:"total_participants_rated"`
	TotalRatingsGiven      int      `gorm:"not null;default:0;column:total_ratings_given" json:"total_ratings_given"`

	CountGrade5Total int `gorm:"not null;default:0;column:count_grade_5_total" json:"count_grade_5_total"`
	CountGrade4Total int `gorm:"not null;default:0;column:count_grade_4_total" json:"count_grade_4_total"`
	CountGrade3Total int `gorm:"not null;default:0;column:count_grade_3_total" json:"count_grade_3_total"`
	CountGrade2Total int `gorm:"not null;default:0;column:count_grade_2_total" json:"count_grade_2_total"`
	CountGrade1Total int `gorm:"not null;default:0;column:count_grade_1_total" json:"count_grade_1_total"`

	CountPassTotal int `gorm:"not null;default:0;column:count_pass_total" json:"count_pass_total"`
	CountFailTotal int `gorm:"not null;default:0;column:count_fail_total" json:"count_fail_total"`

	MostPopularGradeTotal *string `gorm:"column:most_popular_grade_total" json:"most_popular_grade_total"`

	// SessionGradeDistribution maps scope key -> bucket ("grade_1".."grade_5",
	// "pass", "fail") -> raw rating count.
	SessionGradeDistribution datatypes.JSON `gorm:"column:session_grade_distribution" json:"session_grade_distribution"`
	// SessionAverages maps scope key -> five_point-only mean.
	SessionAverages datatypes.JSON `gorm:"column:session_averages" json:"session_averages"`

	CalculatedAt time.Time `gorm:"not null;default:now();column:calculated_at" json:"calculated_at"`
}

func (EventStatistics) TableName() string { return "event_statistics" }
