package stats

import (
	"github.com/google/uuid"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
)

// CriterionScore is the per-criterion breakdown of a project's score.
type CriterionScore struct {
	CriteriaID      uuid.UUID `json:"criteria_id"`
	CriteriaName    string    `json:"criteria_name"`
	MaxScore        int       `json:"max_score"`
	CriteriaWeight  float64   `json:"criteria_weight"`
	WeightedAverage float64   `json:"weighted_average"`
	RawAverage      float64   `json:"raw_average"`
	ScoreCount      int       `json:"score_count"`
	Scores          []float64 `json:"scores"`
}

// ProjectScore is the judge-weighted score for one project. Judge weights
// scale each evaluation inside a criterion; criterion weights scale the
// criterion averages in the final rollup.
type ProjectScore struct {
	FinalWeightedAverage float64          `json:"final_weighted_average"`
	CriteriaDetails      []CriterionScore `json:"criteria_details"`
	TotalEvaluations     int              `json:"total_evaluations"`
	UniqueJudges         int              `json:"unique_judges"`
}

// ScoreProject expects confirmed evaluations with Criteria preloaded.
// Judges missing from judgeWeights count with weight 1.0. When the judge
// weight sum for a criterion is zero the plain mean is used instead.
func ScoreProject(evals []*types.Evaluation, judgeWeights map[uuid.UUID]float64) ProjectScore {
	result := ProjectScore{TotalEvaluations: len(evals)}
	if len(evals) == 0 {
		return result
	}

	judges := map[uuid.UUID]struct{}{}

	type criterionAcc struct {
		criteria    *types.EvaluationCriteria
		scores      []float64
		weightedSum float64
		judgeWSum   float64
	}

	var order []uuid.UUID
	byCriterion := map[uuid.UUID]*criterionAcc{}

	for _, e := range evals {
		judges[e.JudgeID] = struct{}{}

		acc, ok := byCriterion[e.CriteriaID]
		if !ok {
			acc = &criterionAcc{criteria: e.Criteria}
			byCriterion[e.CriteriaID] = acc
			order = append(order, e.CriteriaID)
		}

		jw, ok := judgeWeights[e.JudgeID]
		if !ok {
			jw = 1.0
		}

		acc.scores = append(acc.scores, e.Score)
		acc.weightedSum += e.Score * jw
		acc.judgeWSum += jw
	}

	result.UniqueJudges = len(judges)

	var totalWeightedSum, totalWeightSum float64

	for _, cid := range order {
		acc := byCriterion[cid]

		var rawSum float64
		for _, s := range acc.scores {
			rawSum += s
		}
		rawAvg := rawSum / float64(len(acc.scores))

		weightedAvg := rawAvg
		if acc.judgeWSum > 0 {
			weightedAvg = acc.weightedSum / acc.judgeWSum
		}

		cs := CriterionScore{
			CriteriaID:      cid,
			WeightedAverage: Round2(weightedAvg),
			RawAverage:      Round2(rawAvg),
			ScoreCount:      len(acc.scores),
			Scores:          acc.scores,
			CriteriaWeight:  1.0,
		}
		if acc.criteria != nil {
			cs.CriteriaName = acc.criteria.Name
			cs.MaxScore = acc.criteria.MaxScore
			cs.CriteriaWeight = acc.criteria.Weight
		}
		result.CriteriaDetails = append(result.CriteriaDetails, cs)

		totalWeightedSum += weightedAvg * cs.CriteriaWeight
		totalWeightSum += cs.CriteriaWeight
	}

	if totalWeightSum > 0 {
		result.FinalWeightedAverage = Round2(totalWeightedSum / totalWeightSum)
	}

	return result
}

// JudgeDeviations returns, for each of the judge's evaluations, the absolute
// distance between the judge's score and the mean of the other judges'
// scores for the same project. Projects where the judge is the only judge
// contribute nothing.
func JudgeDeviations(evals []*types.Evaluation, judgeID uuid.UUID) []float64 {
	type projectAcc struct {
		own      []float64
		otherSum float64
		otherN   int
	}

	byProject := map[uuid.UUID]*projectAcc{}
	var order []uuid.UUID

	for _, e := range evals {
		acc, ok := byProject[e.ProjectID]
		if !ok {
			acc = &projectAcc{}
			byProject[e.ProjectID] = acc
			order = append(order, e.ProjectID)
		}
		if e.JudgeID == judgeID {
			acc.own = append(acc.own, e.Score)
		} else {
			acc.otherSum += e.Score
			acc.otherN++
		}
	}

	var deviations []float64
	for _, pid := range order {
		acc := byProject[pid]
		if len(acc.own) == 0 || acc.otherN == 0 {
			continue
		}
		otherAvg := acc.otherSum / float64(acc.otherN)
		for _, s := range acc.own {
			if s >= otherAvg {
				deviations = append(deviations, s-otherAvg)
			} else {
				deviations = append(deviations, otherAvg-s)
			}
		}
	}

	return deviations
}

// WeightFromDeviations maps an average deviation on a 0-10 score scale to a
// judge weight: zero deviation gives 3.0, maximal gives 0.1, no peer data
// gives the default 1.0.
func WeightFromDeviations(deviations []float64) float64 {
	if len(deviations) == 0 {
		return 1.0
	}

	var sum float64
	for _, d := range deviations {
		sum += d
	}
	avgDeviation := sum / float64(len(deviations))

	const maxDeviation = 10.0
	weight := 3.0 - (avgDeviation/maxDeviation)*2.9
	weight = Round2(weight)

	if weight < 0.1 {
		return 0.1
	}
	if weight > 3.0 {
		return 3.0
	}
	return weight
}
