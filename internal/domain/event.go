package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Event is an external collaborator for the statistics core: ownership and
// lifecycle are managed elsewhere, aggregation only reads it.
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	Status      string    `gorm:"not null;default:published;index" json:"status"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`

	RegistrationEndsAt *time.Time `gorm:"column:registration_ends_at" json:"registration_ends_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Event) TableName() string { return "event" }

const (
	RoleParticipant = "participant"
	RoleReferee     = "referee"
	RoleOwner       = "owner"
)

type EventParticipant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_event_participant_user,priority:1" json:"event_id"`
	Event       *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_event_participant_user,priority:2" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Role        string    `gorm:"not null;default:participant;index" json:"role"`
	IsConfirmed bool      `gorm:"not null;default:false;index" json:"is_confirmed"`

	RegisteredAt time.Time `gorm:"not null;default:now()" json:"registered_at"`
}

func (EventParticipant) TableName() string { return "event_participant" }
