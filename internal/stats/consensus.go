package stats

import (
	"math"

	"github.com/google/uuid"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
)

// ProjectConsensus measures judge agreement on one project via the inverse
// coefficient of variation of its scores. Projects with fewer than two
// evaluations are skipped entirely.
type ProjectConsensus struct {
	ProjectID         uuid.UUID `json:"project_id"`
	Consensus         float64   `json:"consensus"`
	StandardDeviation float64   `json:"standard_deviation"`
	MeanScore         float64   `json:"mean_score"`
	EvaluationCount   int       `json:"evaluation_count"`
}

type EventConsensus struct {
	AverageConsensus float64            `json:"average_consensus"`
	ProjectCount     int                `json:"project_count"`
	ConsensusLevel   string             `json:"consensus_level"`
	Projects         []ProjectConsensus `json:"projects,omitempty"`
}

type JudgeConsensus struct {
	JudgeID          uuid.UUID `json:"judge_id"`
	Consensus        float64   `json:"consensus"`
	AverageDeviation float64   `json:"average_deviation"`
	EvaluationCount  int       `json:"evaluation_count"`
	ConsensusLevel   string    `json:"consensus_level"`
}

// ConsensusForEvent groups the event's confirmed evaluations by project and
// averages the per-project consensus scores.
func ConsensusForEvent(evals []*types.Evaluation) EventConsensus {
	byProject := map[uuid.UUID][]float64{}
	var order []uuid.UUID

	for _, e := range evals {
		if _, ok := byProject[e.ProjectID]; !ok {
			order = append(order, e.ProjectID)
		}
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e.Score)
	}

	var result EventConsensus
	var consensusSum float64

	for _, pid := range order {
		scores := byProject[pid]
		if len(scores) < 2 {
			continue
		}

		mean := meanOf(scores)
		stdev := sampleStdev(scores, mean)

		cv := 0.0
		if mean > 0 {
			cv = (stdev / mean) * 100
		}
		consensus := math.Max(0, 100-math.Min(cv, 100))

		result.Projects = append(result.Projects, ProjectConsensus{
			ProjectID:         pid,
			Consensus:         Round1(consensus),
			StandardDeviation: Round2(stdev),
			MeanScore:         Round2(mean),
			EvaluationCount:   len(scores),
		})
		consensusSum += Round1(consensus)
	}

	result.ProjectCount = len(result.Projects)
	if result.ProjectCount > 0 {
		result.AverageConsensus = Round1(consensusSum / float64(result.ProjectCount))
	}
	result.ConsensusLevel = ConsensusLevel(result.AverageConsensus)

	return result
}

// ConsensusForJudge scores one judge against the peer averages on the
// projects they evaluated. A judge with no peer overlap gets consensus 0.
func ConsensusForJudge(evals []*types.Evaluation, judgeID uuid.UUID) JudgeConsensus {
	result := JudgeConsensus{JudgeID: judgeID}

	for _, e := range evals {
		if e.JudgeID == judgeID {
			result.EvaluationCount++
		}
	}

	deviations := JudgeDeviations(evals, judgeID)
	if len(deviations) == 0 {
		result.ConsensusLevel = ConsensusLevel(0)
		return result
	}

	avgDeviation := meanOf(deviations)

	const maxDeviation = 10.0
	consensus := math.Max(0, 100-(avgDeviation/maxDeviation)*100)

	result.Consensus = Round1(consensus)
	result.AverageDeviation = Round2(avgDeviation)
	result.ConsensusLevel = ConsensusLevel(result.Consensus)

	return result
}

func ConsensusLevel(score float64) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 60:
		return "moderate"
	case score >= 40:
		return "low"
	default:
		return "poor"
	}
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdev uses the n-1 denominator.
func sampleStdev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

// Round1 rounds half away from zero to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
