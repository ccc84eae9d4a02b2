package stats

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
)

func evalFor(projectID, judgeID uuid.UUID, criteria *types.EvaluationCriteria, score float64) *types.Evaluation {
	return &types.Evaluation{
		ID:         uuid.New(),
		ProjectID:  projectID,
		JudgeID:    judgeID,
		CriteriaID: criteria.ID,
		Criteria:   criteria,
		Score:      score,
	}
}

func criterion(name string, weight float64) *types.EvaluationCriteria {
	return &types.EvaluationCriteria{
		ID:       uuid.New(),
		Name:     name,
		MaxScore: 10,
		Weight:   weight,
	}
}

func TestScoreProjectPlainMeanWithoutWeights(t *testing.T) {
	project := uuid.New()
	judge1, judge2 := uuid.New(), uuid.New()
	crit := criterion("quality", 1.0)

	evals := []*types.Evaluation{
		evalFor(project, judge1, crit, 8),
		evalFor(project, judge2, crit, 6),
	}

	score := ScoreProject(evals, nil)

	if score.FinalWeightedAverage != 7.0 {
		t.Fatalf("final = %v, want 7.0", score.FinalWeightedAverage)
	}
	if score.TotalEvaluations != 2 || score.UniqueJudges != 2 {
		t.Fatalf("evals=%d judges=%d", score.TotalEvaluations, score.UniqueJudges)
	}
	if len(score.CriteriaDetails) != 1 {
		t.Fatalf("criteria details = %d, want 1", len(score.CriteriaDetails))
	}
	if score.CriteriaDetails[0].RawAverage != 7.0 || score.CriteriaDetails[0].WeightedAverage != 7.0 {
		t.Fatalf("criterion averages = %+v", score.CriteriaDetails[0])
	}
}

func TestScoreProjectAppliesJudgeWeights(t *testing.T) {
	project := uuid.New()
	trusted, distrusted := uuid.New(), uuid.New()
	crit := criterion("quality", 1.0)

	evals := []*types.Evaluation{
		evalFor(project, trusted, crit, 10),
		evalFor(project, distrusted, crit, 2),
	}

	weights := map[uuid.UUID]float64{
		trusted:    3.0,
		distrusted: 0.5,
	}

	score := ScoreProject(evals, weights)

	// (10*3 + 2*0.5) / (3 + 0.5) = 31/3.5 = 8.857... -> 8.86
	if score.FinalWeightedAverage != 8.86 {
		t.Fatalf("final = %v, want 8.86", score.FinalWeightedAverage)
	}
	if score.CriteriaDetails[0].RawAverage != 6.0 {
		t.Fatalf("raw = %v, want 6.0", score.CriteriaDetails[0].RawAverage)
	}
}

func TestScoreProjectCriteriaWeightRollup(t *testing.T) {
	project := uuid.New()
	judge := uuid.New()
	heavy := criterion("technical", 2.0)
	light := criterion("style", 1.0)

	evals := []*types.Evaluation{
		evalFor(project, judge, heavy, 9),
		evalFor(project, judge, light, 3),
	}

	score := ScoreProject(evals, nil)

	// (9*2 + 3*1) / 3 = 7.0
	if score.FinalWeightedAverage != 7.0 {
		t.Fatalf("final = %v, want 7.0", score.FinalWeightedAverage)
	}
}

func TestScoreProjectEmpty(t *testing.T) {
	score := ScoreProject(nil, nil)
	if score.FinalWeightedAverage != 0 || score.TotalEvaluations != 0 {
		t.Fatalf("empty project score = %+v", score)
	}
}

func TestJudgeDeviations(t *testing.T) {
	project := uuid.New()
	judge, peer1, peer2 := uuid.New(), uuid.New(), uuid.New()
	crit := criterion("quality", 1.0)

	evals := []*types.Evaluation{
		evalFor(project, judge, crit, 9),
		evalFor(project, peer1, crit, 5),
		evalFor(project, peer2, crit, 7),
	}

	devs := JudgeDeviations(evals, judge)
	if len(devs) != 1 {
		t.Fatalf("deviations = %v, want 1 entry", devs)
	}
	// others average (5+7)/2 = 6, |9-6| = 3
	if devs[0] != 3.0 {
		t.Fatalf("deviation = %v, want 3.0", devs[0])
	}
}

func TestJudgeDeviationsNoPeers(t *testing.T) {
	project := uuid.New()
	judge := uuid.New()
	crit := criterion("quality", 1.0)

	evals := []*types.Evaluation{evalFor(project, judge, crit, 9)}

	if devs := JudgeDeviations(evals, judge); len(devs) != 0 {
		t.Fatalf("deviations = %v, want none", devs)
	}
}

func TestWeightFromDeviations(t *testing.T) {
	tests := []struct {
		name       string
		deviations []float64
		want       float64
	}{
		{"no data defaults to 1.0", nil, 1.0},
		{"perfect agreement", []float64{0, 0}, 3.0},
		{"moderate deviation", []float64{5}, 1.55},
		{"clamped at floor", []float64{20}, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightFromDeviations(tt.deviations); got != tt.want {
				t.Fatalf("weight = %v, want %v", got, tt.want)
			}
		})
	}
}
