package stats

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
)

func fivePoint(score int) *types.Rating {
	return &types.Rating{
		ID:            uuid.New(),
		GradingSystem: types.GradingFivePoint,
		Score:         score,
	}
}

func passFail(score int) *types.Rating {
	return &types.Rating{
		ID:            uuid.New(),
		GradingSystem: types.GradingPassFail,
		Score:         score,
	}
}

func inOnline(r *types.Rating, sessionID uuid.UUID) *types.Rating {
	r.OnlineSessionID = &sessionID
	return r
}

func inOffline(r *types.Rating, sessionID uuid.UUID) *types.Rating {
	r.OfflineSessionID = &sessionID
	return r
}

func TestAggregateParticipantCeilsFinalScore(t *testing.T) {
	agg := AggregateParticipant([]*types.Rating{fivePoint(4), fivePoint(5)})

	if agg.FinalScore == nil || *agg.FinalScore != 5 {
		t.Fatalf("final score = %v, want 5", agg.FinalScore)
	}
	if agg.AverageScore == nil || *agg.AverageScore != 4.5 {
		t.Fatalf("average score = %v, want 4.5", agg.AverageScore)
	}
}

func TestAggregateParticipantPoolsScopes(t *testing.T) {
	online := uuid.New()
	offline := uuid.New()

	ratings := []*types.Rating{
		inOnline(fivePoint(5), online),
		inOffline(fivePoint(4), offline),
		fivePoint(3),
	}

	agg := AggregateParticipant(ratings)

	// (5+4+3)/3 = 4.0
	if agg.FinalScore == nil || *agg.FinalScore != 4 {
		t.Fatalf("final score = %v, want 4", agg.FinalScore)
	}
	if agg.AverageScore == nil || *agg.AverageScore != 4.0 {
		t.Fatalf("average score = %v, want 4.0", agg.AverageScore)
	}

	wantCounts := map[string]int{
		"online_" + online.String():   1,
		"offline_" + offline.String(): 1,
		"event":                       1,
	}
	for key, want := range wantCounts {
		if got := agg.SessionScoresCount[key]; got != want {
			t.Fatalf("session count %q = %d, want %d", key, got, want)
		}
	}
}

func TestAggregateParticipantExcludesPassFailFromMean(t *testing.T) {
	ratings := []*types.Rating{
		fivePoint(4),
		fivePoint(4),
		passFail(1),
		passFail(0),
	}

	agg := AggregateParticipant(ratings)

	if agg.FinalScore == nil || *agg.FinalScore != 4 {
		t.Fatalf("final score = %v, want 4", agg.FinalScore)
	}
	// pass/fail rows still counted per scope
	if got := agg.SessionScoresCount["event"]; got != 4 {
		t.Fatalf("event scope count = %d, want 4", got)
	}
}

func TestAggregateParticipantOnlyPassFail(t *testing.T) {
	agg := AggregateParticipant([]*types.Rating{passFail(1), passFail(0)})

	if agg.FinalScore != nil {
		t.Fatalf("final score = %v, want nil", *agg.FinalScore)
	}
	if agg.AverageScore != nil {
		t.Fatalf("average score = %v, want nil", *agg.AverageScore)
	}
	if agg.MostPopularGrades != nil {
		t.Fatalf("most popular = %v, want nil", *agg.MostPopularGrades)
	}
	if got := agg.SessionScoresCount["event"]; got != 2 {
		t.Fatalf("event scope count = %d, want 2", got)
	}
}

func TestAggregateParticipantEmpty(t *testing.T) {
	agg := AggregateParticipant(nil)

	if agg.FinalScore != nil || agg.AverageScore != nil || agg.MostPopularGrades != nil {
		t.Fatalf("empty input should yield nil aggregates: %+v", agg)
	}
	if len(agg.SessionScoresCount) != 0 {
		t.Fatalf("session counts = %v, want empty", agg.SessionScoresCount)
	}
}

func TestAggregateParticipantMostPopularGrades(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   string
	}{
		{"single mode", []int{5, 5, 4}, "5"},
		{"tie ascending", []int{5, 5, 4, 4, 3}, "4,5"},
		{"all tied", []int{1, 2, 3}, "1,2,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ratings []*types.Rating
			for _, s := range tt.scores {
				ratings = append(ratings, fivePoint(s))
			}
			agg := AggregateParticipant(ratings)
			if agg.MostPopularGrades == nil || *agg.MostPopularGrades != tt.want {
				t.Fatalf("most popular = %v, want %q", agg.MostPopularGrades, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(4.666666); got != 4.67 {
		t.Fatalf("Round2(4.666666) = %v", got)
	}
	if got := Round2(4.664); got != 4.66 {
		t.Fatalf("Round2(4.664) = %v", got)
	}
}
