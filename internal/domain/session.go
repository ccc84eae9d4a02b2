package domain

import (
	"time"

	"github.com/google/uuid"
)

type OnlineSession struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event       *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`
	SessionName string    `gorm:"not null;column:session_name" json:"session_name"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (OnlineSession) TableName() string { return "online_session" }

type OfflineSession struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event       *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`
	SessionName string    `gorm:"not null;column:session_name" json:"session_name"`
	Location    string    `gorm:"column:location" json:"location"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (OfflineSession) TableName() string { return "offline_session" }
