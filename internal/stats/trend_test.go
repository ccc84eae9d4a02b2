package stats

import "testing"

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"empty", nil, TrendStable},
		{"improving", []float64{3, 4, 7, 8}, TrendPositive},
		{"declining", []float64{8, 7, 4, 3}, TrendNegative},
		{"flat", []float64{5, 5, 5, 5}, TrendStable},
		{"single score reads positive", []float64{6}, TrendPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trend(tt.scores)
			if got.Trend != tt.want {
				t.Fatalf("trend = %q, want %q", got.Trend, tt.want)
			}
			if got.DataPoints != len(tt.scores) {
				t.Fatalf("data points = %d, want %d", got.DataPoints, len(tt.scores))
			}
		})
	}
}

func TestTrendOddCountFavorsSecondHalf(t *testing.T) {
	got := Trend([]float64{2, 4, 6})

	// first half [2], second half [4, 6]
	if got.FirstHalfAverage != 2.0 {
		t.Fatalf("first half = %v, want 2.0", got.FirstHalfAverage)
	}
	if got.SecondHalfAverage != 5.0 {
		t.Fatalf("second half = %v, want 5.0", got.SecondHalfAverage)
	}
	if got.Difference != 3.0 {
		t.Fatalf("difference = %v, want 3.0", got.Difference)
	}
}

func TestEngagement(t *testing.T) {
	full := Engagement(EngagementInput{
		HasProject:           true,
		ProjectOnTime:        true,
		HasEvaluations:       true,
		SessionParticipation: true,
	})
	if full.EngagementScore != 100.0 || full.EngagementLevel != EngagementHigh {
		t.Fatalf("full engagement = %+v", full)
	}

	half := Engagement(EngagementInput{HasProject: true, ProjectOnTime: true})
	if half.EngagementScore != 50.0 || half.EngagementLevel != EngagementMedium {
		t.Fatalf("half engagement = %+v", half)
	}

	none := Engagement(EngagementInput{})
	if none.EngagementScore != 0 || none.EngagementLevel != EngagementLow {
		t.Fatalf("zero engagement = %+v", none)
	}
	if none.TotalCriteria != 4 {
		t.Fatalf("total criteria = %d, want 4", none.TotalCriteria)
	}
}
