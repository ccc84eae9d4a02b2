package stats

const (
	EngagementHigh   = "high"
	EngagementMedium = "medium"
	EngagementLow    = "low"
)

// EngagementInput holds the yes/no signals engagement is scored on. The
// caller fills it from the participant's project, evaluations and session
// attendance.
type EngagementInput struct {
	HasProject           bool `json:"has_project"`
	ProjectOnTime        bool `json:"project_on_time"`
	HasEvaluations       bool `json:"has_evaluations"`
	SessionParticipation bool `json:"session_participation"`
}

type EngagementResult struct {
	EngagementScore float64         `json:"engagement_score"`
	CriteriaMet     int             `json:"criteria_met"`
	TotalCriteria   int             `json:"total_criteria"`
	CriteriaDetails EngagementInput `json:"criteria_details"`
	EngagementLevel string          `json:"engagement_level"`
}

// Engagement scores the share of met criteria as a percentage.
func Engagement(in EngagementInput) EngagementResult {
	met := 0
	for _, v := range []bool{in.HasProject, in.ProjectOnTime, in.HasEvaluations, in.SessionParticipation} {
		if v {
			met++
		}
	}

	const total = 4
	score := Round1(float64(met) / total * 100)

	return EngagementResult{
		EngagementScore: score,
		CriteriaMet:     met,
		TotalCriteria:   total,
		CriteriaDetails: in,
		EngagementLevel: EngagementLevel(score),
	}
}

func EngagementLevel(score float64) string {
	switch {
	case score >= 80:
		return EngagementHigh
	case score >= 50:
		return EngagementMedium
	default:
		return EngagementLow
	}
}
