package stats

import (
	types "github.com/yungbote/eventjudge-backend/internal/domain"
)

// EventAggregate is the event-wide rollup. The grade histogram and the
// average are computed over participants' final scores, not over raw
// ratings; only the pass/fail counters and the per-scope breakdowns look at
// raw rows.
type EventAggregate struct {
	// AverageScore is the mean of participant final scores, 2 decimals.
	// Nil when no participant has a final score.
	AverageScore           *float64
	TotalParticipantsRated int
	TotalRatingsGiven      int

	// CountGradeTotal[g] counts participants whose final score is g (1..5).
	CountGradeTotal [6]int

	CountPassTotal int
	CountFailTotal int

	// MostPopularGradeTotal is the modal final score(s), ascending,
	// comma-joined. Nil when no participant has a final score.
	MostPopularGradeTotal *string

	// SessionGradeDistribution maps scope key -> bucket -> raw rating count.
	// Buckets are "grade_1".."grade_5", "pass" and "fail".
	SessionGradeDistribution map[string]map[string]int
	// SessionAverages maps scope key -> five-point-only mean, 2 decimals.
	// Scopes with no five-point ratings are omitted.
	SessionAverages map[string]float64
}

// AggregateEvent combines raw ratings with the already computed per
// participant final scores.
func AggregateEvent(ratings []*types.Rating, finalScores []int) EventAggregate {
	agg := EventAggregate{
		TotalRatingsGiven:        len(ratings),
		TotalParticipantsRated:   len(finalScores),
		SessionGradeDistribution: map[string]map[string]int{},
		SessionAverages:          map[string]float64{},
	}

	scopeFivePoint := map[string][]int{}

	for _, r := range ratings {
		key := r.ScopeKey()
		dist, ok := agg.SessionGradeDistribution[key]
		if !ok {
			dist = map[string]int{}
			agg.SessionGradeDistribution[key] = dist
		}
		dist[gradeBucket(r)]++

		switch r.GradingSystem {
		case types.GradingFivePoint:
			scopeFivePoint[key] = append(scopeFivePoint[key], r.Score)
		case types.GradingPassFail:
			if r.Score == 1 {
				agg.CountPassTotal++
			} else {
				agg.CountFailTotal++
			}
		}
	}

	for key, scores := range scopeFivePoint {
		sum := 0
		for _, s := range scores {
			sum += s
		}
		agg.SessionAverages[key] = Round2(float64(sum) / float64(len(scores)))
	}

	if len(finalScores) == 0 {
		return agg
	}

	sum := 0
	for _, fs := range finalScores {
		sum += fs
		if fs >= 1 && fs <= 5 {
			agg.CountGradeTotal[fs]++
		}
	}
	avg := Round2(float64(sum) / float64(len(finalScores)))
	popular := modalGrades(finalScores)

	agg.AverageScore = &avg
	agg.MostPopularGradeTotal = &popular

	return agg
}

func gradeBucket(r *types.Rating) string {
	if r.GradingSystem == types.GradingPassFail {
		if r.Score == 1 {
			return "pass"
		}
		return "fail"
	}
	switch r.Score {
	case 1:
		return "grade_1"
	case 2:
		return "grade_2"
	case 3:
		return "grade_3"
	case 4:
		return "grade_4"
	default:
		return "grade_5"
	}
}
