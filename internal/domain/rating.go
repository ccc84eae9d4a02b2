package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one judge's score for one participant, scoped either to a single
// online/offline session or to the bare event. Uniqueness per
// (referee, participant, scope) is guarded by partial unique indexes created
// in the migration step; the pre-save validation in the rating service only
// produces the friendlier field error.
type Rating struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`

	OnlineSessionID  *uuid.UUID      `gorm:"type:uuid;index" json:"online_session_id,omitempty"`
	OnlineSession    *OnlineSession  `gorm:"constraint:OnDelete:CASCADE;foreignKey:OnlineSessionID;references:ID" json:"online_session,omitempty"`
	OfflineSessionID *uuid.UUID      `gorm:"type:uuid;index" json:"offline_session_id,omitempty"`
	OfflineSession   *OfflineSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:OfflineSessionID;references:ID" json:"offline_session,omitempty"`

	ParticipantID uuid.UUID         `gorm:"type:uuid;not null;index" json:"participant_id"`
	Participant   *EventParticipant `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParticipantID;references:ID" json:"participant,omitempty"`
	RefereeID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"referee_id"`
	Referee       *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:RefereeID;references:ID" json:"referee,omitempty"`

	GradingSystem GradingSystem `gorm:"not null;index;column:grading_system" json:"grading_system"`
	Score         int           `gorm:"not null" json:"score"`
	Comment       string        `gorm:"column:comment" json:"comment"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Rating) TableName() string { return "event_rating" }

// ScopeKeyEvent is the scope key for ratings attached to the bare event.
const ScopeKeyEvent = "event"

// ScopeKey identifies the granularity this rating applies to:
// "online_<id>", "offline_<id>", or "event".
func (r *Rating) ScopeKey() string {
	switch {
	case r.OnlineSessionID != nil:
		return "online_" + r.OnlineSessionID.String()
	case r.OfflineSessionID != nil:
		return "offline_" + r.OfflineSessionID.String()
	default:
		return ScopeKeyEvent
	}
}
