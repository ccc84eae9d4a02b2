package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
)

// EventFixture is the minimal cast for a rating scenario: an event with an
// owner, one referee and one confirmed participant.
type EventFixture struct {
	Event       *types.Event
	Owner       *types.User
	Referee     *types.User
	RefereeRow  *types.EventParticipant
	Participant *types.User
	Entry       *types.EventParticipant
}

func SeedUser(tb testing.TB, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "Test",
		LastName:  "User",
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func SeedEvent(tb testing.TB, tx *gorm.DB) *EventFixture {
	tb.Helper()

	owner := SeedUser(tb, tx, "owner-"+uuid.NewString()+"@example.com")
	referee := SeedUser(tb, tx, "referee-"+uuid.NewString()+"@example.com")
	participant := SeedUser(tb, tx, "participant-"+uuid.NewString()+"@example.com")

	ev := &types.Event{
		ID:      uuid.New(),
		Name:    "Test Event",
		OwnerID: owner.ID,
		Status:  types.EventStatusPublished,
	}
	if err := tx.Create(ev).Error; err != nil {
		tb.Fatalf("seed event: %v", err)
	}

	refereeRow := SeedParticipant(tb, tx, ev.ID, referee.ID, types.RoleReferee)
	entry := SeedParticipant(tb, tx, ev.ID, participant.ID, types.RoleParticipant)

	return &EventFixture{
		Event:       ev,
		Owner:       owner,
		Referee:     referee,
		RefereeRow:  refereeRow,
		Participant: participant,
		Entry:       entry,
	}
}

func SeedParticipant(tb testing.TB, tx *gorm.DB, eventID, userID uuid.UUID, role string) *types.EventParticipant {
	tb.Helper()
	p := &types.EventParticipant{
		ID:           uuid.New(),
		EventID:      eventID,
		UserID:       userID,
		Role:         role,
		IsConfirmed:  true,
		RegisteredAt: time.Now(),
	}
	if err := tx.Create(p).Error; err != nil {
		tb.Fatalf("seed participant: %v", err)
	}
	return p
}

func SeedOnlineSession(tb testing.TB, tx *gorm.DB, eventID uuid.UUID, name string) *types.OnlineSession {
	tb.Helper()
	s := &types.OnlineSession{
		ID:          uuid.New(),
		EventID:     eventID,
		SessionName: name,
		StartsAt:    time.Now(),
	}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("seed online session: %v", err)
	}
	return s
}

func SeedOfflineSession(tb testing.TB, tx *gorm.DB, eventID uuid.UUID, name string) *types.OfflineSession {
	tb.Helper()
	s := &types.OfflineSession{
		ID:          uuid.New(),
		EventID:     eventID,
		SessionName: name,
		Location:    "Hall A",
		StartsAt:    time.Now(),
	}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("seed offline session: %v", err)
	}
	return s
}

func SeedRating(tb testing.TB, tx *gorm.DB, fix *EventFixture, online, offline *uuid.UUID, system types.GradingSystem, score int) *types.Rating {
	tb.Helper()
	r := &types.Rating{
		ID:               uuid.New(),
		EventID:          fix.Event.ID,
		OnlineSessionID:  online,
		OfflineSessionID: offline,
		ParticipantID:    fix.Entry.ID,
		RefereeID:        fix.Referee.ID,
		GradingSystem:    system,
		Score:            score,
	}
	if err := tx.Create(r).Error; err != nil {
		tb.Fatalf("seed rating: %v", err)
	}
	return r
}
