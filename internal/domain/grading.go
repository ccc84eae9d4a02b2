package domain

import "fmt"

// GradingSystem is the tagged variant a Rating score is expressed in.
// Adding a new system means extending the switches below; callers that
// dispatch on it must handle every constant.
type GradingSystem string

const (
	GradingFivePoint GradingSystem = "five_point"
	GradingPassFail  GradingSystem = "pass_fail"
)

func (g GradingSystem) Valid() bool {
	switch g {
	case GradingFivePoint, GradingPassFail:
		return true
	default:
		return false
	}
}

// ScoreInRange reports whether score is legal under this grading system:
// 1..5 for five_point, 0 or 1 for pass_fail.
func (g GradingSystem) ScoreInRange(score int) bool {
	switch g {
	case GradingFivePoint:
		return score >= 1 && score <= 5
	case GradingPassFail:
		return score == 0 || score == 1
	default:
		return false
	}
}

func (g GradingSystem) String() string { return string(g) }

// ScoreRangeDescription is used in validation messages.
func (g GradingSystem) ScoreRangeDescription() string {
	switch g {
	case GradingFivePoint:
		return "1 to 5"
	case GradingPassFail:
		return "0 or 1"
	default:
		return fmt.Sprintf("unknown grading system %q", string(g))
	}
}
