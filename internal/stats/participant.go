package stats

import (
	"math"
	"sort"
	"strconv"
	"strings"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
)

// ParticipantAggregate is the derived scoring for one participant, computed
// from every rating the participant received in the event, all scopes pooled.
type ParticipantAggregate struct {
	// FinalScore is the ceiling of the five-point mean. Nil when the
	// participant has no five-point ratings.
	FinalScore *int
	// AverageScore is the five-point mean rounded to 2 decimals.
	AverageScore *float64
	// SessionScoresCount maps scope key to rating count, pass/fail included.
	SessionScoresCount map[string]int
	// MostPopularGrades is the modal five-point value(s), ascending,
	// comma-joined. Nil when there are no five-point ratings.
	MostPopularGrades *string
}

// AggregateParticipant pools ratings across scopes. Pass/fail ratings are
// excluded from the means but still counted per scope.
func AggregateParticipant(ratings []*types.Rating) ParticipantAggregate {
	agg := ParticipantAggregate{
		SessionScoresCount: map[string]int{},
	}

	var fivePoint []int
	for _, r := range ratings {
		agg.SessionScoresCount[r.ScopeKey()]++
		if r.GradingSystem == types.GradingFivePoint {
			fivePoint = append(fivePoint, r.Score)
		}
	}

	if len(fivePoint) == 0 {
		return agg
	}

	sum := 0
	for _, s := range fivePoint {
		sum += s
	}
	mean := float64(sum) / float64(len(fivePoint))

	final := int(math.Ceil(mean))
	avg := Round2(mean)
	popular := modalGrades(fivePoint)

	agg.FinalScore = &final
	agg.AverageScore = &avg
	agg.MostPopularGrades = &popular

	return agg
}

// modalGrades returns the most frequent value(s), ascending, comma-joined.
func modalGrades(scores []int) string {
	counts := map[int]int{}
	max := 0
	for _, s := range scores {
		counts[s]++
		if counts[s] > max {
			max = counts[s]
		}
	}

	var modes []int
	for s, c := range counts {
		if c == max {
			modes = append(modes, s)
		}
	}
	sort.Ints(modes)

	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		parts = append(parts, strconv.Itoa(m))
	}
	return strings.Join(parts, ",")
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
