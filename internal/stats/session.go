package stats

import (
	"github.com/google/uuid"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
)

// SessionAggregate is the read-side rollup over the raw ratings of one
// session: a bucket histogram, the five-point-only mean, and the modal raw
// score across both grading systems. Unlike the event rollup it never looks
// at participant final scores.
type SessionAggregate struct {
	TotalRatings         int
	DistinctParticipants int

	CountGrade [6]int
	CountPass  int
	CountFail  int

	// AverageScore is the five-point mean, 2 decimals. Nil when the session
	// has no five-point ratings.
	AverageScore *float64

	// MostPopularScores is the modal raw score value(s) across all ratings,
	// ascending, comma-joined. Nil when the session has no ratings.
	MostPopularScores *string
}

func AggregateSession(ratings []*types.Rating) SessionAggregate {
	agg := SessionAggregate{TotalRatings: len(ratings)}

	participants := map[uuid.UUID]struct{}{}

	var fiveSum, fiveCount int
	var rawScores []int
	for _, r := range ratings {
		participants[r.ParticipantID] = struct{}{}
		rawScores = append(rawScores, r.Score)

		switch r.GradingSystem {
		case types.GradingFivePoint:
			if r.Score >= 1 && r.Score <= 5 {
				agg.CountGrade[r.Score]++
			}
			fiveSum += r.Score
			fiveCount++
		case types.GradingPassFail:
			if r.Score == 1 {
				agg.CountPass++
			} else {
				agg.CountFail++
			}
		}
	}

	agg.DistinctParticipants = len(participants)

	if fiveCount > 0 {
		avg := Round2(float64(fiveSum) / float64(fiveCount))
		agg.AverageScore = &avg
	}
	if len(rawScores) > 0 {
		popular := modalGrades(rawScores)
		agg.MostPopularScores = &popular
	}

	return agg
}
