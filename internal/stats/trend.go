package stats

const (
	TrendPositive = "positive"
	TrendNegative = "negative"
	TrendStable   = "stable"
)

type TrendResult struct {
	Trend             string  `json:"trend"`
	DataPoints        int     `json:"data_points"`
	FirstHalfAverage  float64 `json:"first_half_average"`
	SecondHalfAverage float64 `json:"second_half_average"`
	Difference        float64 `json:"difference"`
}

// Trend splits the chronologically ordered scores in half and compares the
// halves' means. With an odd count the second half gets the extra score.
func Trend(scores []float64) TrendResult {
	if len(scores) == 0 {
		return TrendResult{Trend: TrendStable}
	}

	split := len(scores) / 2
	first := scores[:split]
	second := scores[split:]

	var avgFirst, avgSecond float64
	if len(first) > 0 {
		avgFirst = meanOf(first)
	}
	if len(second) > 0 {
		avgSecond = meanOf(second)
	}

	trend := TrendStable
	if avgSecond > avgFirst {
		trend = TrendPositive
	} else if avgSecond < avgFirst {
		trend = TrendNegative
	}

	return TrendResult{
		Trend:             trend,
		DataPoints:        len(scores),
		FirstHalfAverage:  Round2(avgFirst),
		SecondHalfAverage: Round2(avgSecond),
		Difference:        Round2(avgSecond - avgFirst),
	}
}
