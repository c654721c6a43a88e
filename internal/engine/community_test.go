package engine

import (
	"testing"
	"time"

	"equisim/internal/model"
)

// cannedResponses builds twelve responses across three scenario clusters,
// submitted a minute apart in the order given.
func cannedResponses() []model.SurveyResponse {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []struct {
		scenario  string
		principle string
		lean      float64
	}{
		{"triage", "equal_access", 30},
		{"triage", "equal_access", 35},
		{"triage", "merit", 45},
		{"triage", "equal_access", 25},
		{"triage", "merit", 55},
		{"lending", "merit", 70},
		{"lending", "merit", 65},
		{"lending", "equal_access", 40},
		{"lending", "merit", 75},
		{"admissions", "need_based", 20},
		{"admissions", "need_based", 15},
		{"admissions", "equal_access", 30},
	}

	responses := make([]model.SurveyResponse, len(rows))
	for i, s := range rows {
		responses[i] = model.SurveyResponse{
			ID:                 string(rune('a' + i)),
			AccuracyVsFairness: s.lean,
			Scenario:           s.scenario,
			Principle:          s.principle,
			SubmittedAt:        base.Add(time.Duration(i) * time.Minute),
		}
	}
	return responses
}

func TestAggregateCommunityEmpty(t *testing.T) {
	weights, insights := AggregateCommunity(nil)
	if weights != model.DefaultWeights() {
		t.Errorf("empty aggregation weights = %+v, want defaults", weights)
	}
	if insights.TotalResponses != 0 || insights.TrendDirection != model.TrendStable {
		t.Errorf("empty aggregation insights = %+v", insights)
	}
}

func TestAggregateCommunityLegacyScalar(t *testing.T) {
	weights, _ := AggregateCommunity(cannedResponses())

	if weights.Sum() != 100 {
		t.Errorf("weights sum to %d, want 100 (%+v)", weights.Sum(), weights)
	}
	if weights.Robustness != robustnessFloorPoints {
		t.Errorf("robustness = %d, want the %d-point floor", weights.Robustness, robustnessFloorPoints)
	}
	// Mean lean is ~42 of 100, so fairness should edge out accuracy.
	if weights.Fairness <= weights.Accuracy {
		t.Errorf("fairness-leaning responses produced %+v", weights)
	}
}

func TestAggregateCommunityInferredWeights(t *testing.T) {
	responses := []model.SurveyResponse{
		{Weights: &model.ObjectiveWeights{Accuracy: 60, Fairness: 25, Robustness: 15}},
		{Weights: &model.ObjectiveWeights{Accuracy: 20, Fairness: 65, Robustness: 15}},
	}

	weights, _ := AggregateCommunity(responses)
	if weights.Sum() != 100 {
		t.Errorf("weights sum to %d, want 100 (%+v)", weights.Sum(), weights)
	}
	if weights.Accuracy != 40 || weights.Fairness != 45 {
		t.Errorf("averaged weights = %+v, want accuracy 40 fairness 45", weights)
	}
}

func TestAggregateCommunityPolarization(t *testing.T) {
	_, insights := AggregateCommunity(cannedResponses())

	if insights.PolarizationIndex <= 0 || insights.PolarizationIndex >= 1 {
		t.Errorf("three clusters should give polarization strictly in (0,1): %v", insights.PolarizationIndex)
	}
	if insights.ScenarioCounts["triage"] != 5 {
		t.Errorf("triage count = %d, want 5", insights.ScenarioCounts["triage"])
	}
	if insights.PrincipleCounts["merit"] != 5 {
		t.Errorf("merit count = %d, want 5", insights.PrincipleCounts["merit"])
	}
}

func TestAggregateCommunityUnanimousScenario(t *testing.T) {
	responses := []model.SurveyResponse{
		{Scenario: "triage", AccuracyVsFairness: 50},
		{Scenario: "triage", AccuracyVsFairness: 50},
		{Scenario: "triage", AccuracyVsFairness: 50},
	}

	_, insights := AggregateCommunity(responses)
	if insights.PolarizationIndex != 0 {
		t.Errorf("unanimous scenario should give zero polarization: %v", insights.PolarizationIndex)
	}
	if insights.StabilityScore != 1 {
		t.Errorf("identical leans should give full stability: %v", insights.StabilityScore)
	}
}

func TestAggregateCommunityStabilityBounds(t *testing.T) {
	// Maximum dispersion: half at 0, half at 100.
	responses := []model.SurveyResponse{
		{AccuracyVsFairness: 0}, {AccuracyVsFairness: 100},
		{AccuracyVsFairness: 0}, {AccuracyVsFairness: 100},
	}

	_, insights := AggregateCommunity(responses)
	if insights.StabilityScore < 0 || insights.StabilityScore > 1 {
		t.Errorf("stability out of [0,1]: %v", insights.StabilityScore)
	}
	if insights.StabilityScore != 0 {
		t.Errorf("maximum variance should give zero stability: %v", insights.StabilityScore)
	}
}

func TestAggregateCommunityDrift(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var responses []model.SurveyResponse
	// Lean walks from accuracy-heavy toward fairness-heavy over time.
	for i := 0; i < 12; i++ {
		responses = append(responses, model.SurveyResponse{
			AccuracyVsFairness: 80 - float64(i)*5,
			SubmittedAt:        base.Add(time.Duration(i) * time.Hour),
		})
	}

	_, insights := AggregateCommunity(responses)
	if len(insights.Drift) != driftBucketCount {
		t.Fatalf("got %d drift buckets, want %d", len(insights.Drift), driftBucketCount)
	}
	if insights.TrendDirection != model.TrendIncreasingFairness {
		t.Errorf("trend = %s, want %s", insights.TrendDirection, model.TrendIncreasingFairness)
	}

	reversed := make([]model.SurveyResponse, len(responses))
	for i, r := range responses {
		r.AccuracyVsFairness = 100 - r.AccuracyVsFairness
		reversed[i] = r
	}
	_, insights = AggregateCommunity(reversed)
	if insights.TrendDirection != model.TrendIncreasingEfficiency {
		t.Errorf("reversed trend = %s, want %s", insights.TrendDirection, model.TrendIncreasingEfficiency)
	}
}

func TestAggregateCommunityStableTrend(t *testing.T) {
	base := time.Now()
	var responses []model.SurveyResponse
	for i := 0; i < 12; i++ {
		responses = append(responses, model.SurveyResponse{
			AccuracyVsFairness: 50,
			SubmittedAt:        base.Add(time.Duration(i) * time.Minute),
		})
	}

	_, insights := AggregateCommunity(responses)
	if insights.TrendDirection != model.TrendStable {
		t.Errorf("flat leans should be stable, got %s", insights.TrendDirection)
	}
}
