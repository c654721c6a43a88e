package engine

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"equisim/internal/model"
)

const (
	// robustnessFloorPoints is reserved for robustness when aggregating
	// legacy slider responses; the remaining 85 points split between
	// accuracy and fairness by the average slider position.
	robustnessFloorPoints = 15

	// maxScalarVariance is the theoretical maximum variance of a variable
	// bounded to [0, 100].
	maxScalarVariance = 2500

	driftBucketCount = 6

	// trendThresholdPoints is the first-vs-last bucket difference in
	// fairness lean needed before a trend is flagged.
	trendThresholdPoints = 3.0
)

// AggregateCommunity reduces many individual responses into one weight set
// and distributional insights. When every response carries inferred weights
// those are averaged directly; otherwise the legacy efficiency-vs-fairness
// slider drives the split. The returned weights always sum to exactly 100.
func AggregateCommunity(responses []model.SurveyResponse) (model.ObjectiveWeights, model.CommunityInsights) {
	if len(responses) == 0 {
		return model.DefaultWeights(), model.CommunityInsights{
			ScenarioCounts:  map[string]int{},
			PrincipleCounts: map[string]int{},
			TrendDirection:  model.TrendStable,
		}
	}
	return aggregateWeights(responses), buildInsights(responses)
}

func aggregateWeights(responses []model.SurveyResponse) model.ObjectiveWeights {
	allWeighted := true
	for _, r := range responses {
		if r.Weights == nil {
			allWeighted = false
			break
		}
	}

	if allWeighted {
		var acc, fair, rob float64
		for _, r := range responses {
			acc += float64(r.Weights.Accuracy)
			fair += float64(r.Weights.Fairness)
			rob += float64(r.Weights.Robustness)
		}
		n := float64(len(responses))
		return normalizeWeights(acc/n, fair/n, rob/n)
	}

	mean, err := stats.Mean(scalarLeans(responses))
	if err != nil {
		return model.DefaultWeights()
	}

	accuracy := int(math.Round((100 - robustnessFloorPoints) * mean / 100))
	return model.ObjectiveWeights{
		Accuracy:   accuracy,
		Fairness:   (100 - robustnessFloorPoints) - accuracy,
		Robustness: robustnessFloorPoints,
	}
}

func buildInsights(responses []model.SurveyResponse) model.CommunityInsights {
	scenarioCounts := make(map[string]int)
	principleCounts := make(map[string]int)
	for _, r := range responses {
		if r.Scenario != "" {
			scenarioCounts[r.Scenario]++
		}
		if r.Principle != "" {
			principleCounts[r.Principle]++
		}
	}

	drift := driftTimeline(responses)

	return model.CommunityInsights{
		TotalResponses:    len(responses),
		ScenarioCounts:    scenarioCounts,
		PrincipleCounts:   principleCounts,
		PolarizationIndex: polarizationIndex(scenarioCounts, len(responses)),
		StabilityScore:    stabilityScore(responses),
		TrendDirection:    trendDirection(drift),
		Drift:             drift,
	}
}

// polarizationIndex is 1 minus the share of the largest scenario cluster:
// 0 when everyone picked the same scenario, approaching 1 as views fragment.
func polarizationIndex(scenarioCounts map[string]int, total int) float64 {
	if total == 0 || len(scenarioCounts) == 0 {
		return 0
	}
	largest := 0
	for _, c := range scenarioCounts {
		if c > largest {
			largest = c
		}
	}
	return 1 - float64(largest)/float64(total)
}

func stabilityScore(responses []model.SurveyResponse) float64 {
	variance, err := stats.PopulationVariance(scalarLeans(responses))
	if err != nil {
		return 0
	}
	return math.Max(0, 1-variance/maxScalarVariance)
}

// driftTimeline sorts responses by submission time and chunks them into up
// to driftBucketCount slices, reporting each slice's mean lean.
func driftTimeline(responses []model.SurveyResponse) []model.DriftBucket {
	sorted := make([]model.SurveyResponse, len(responses))
	copy(sorted, responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt.Before(sorted[j].SubmittedAt)
	})

	buckets := driftBucketCount
	if len(sorted) < buckets {
		buckets = len(sorted)
	}
	size := (len(sorted) + buckets - 1) / buckets

	var timeline []model.DriftBucket
	for b := 0; b < buckets; b++ {
		start := b * size
		if start >= len(sorted) {
			break
		}
		end := start + size
		if end > len(sorted) {
			end = len(sorted)
		}

		var sum float64
		for _, r := range sorted[start:end] {
			sum += r.AccuracyVsFairness
		}
		mean := sum / float64(end-start)

		timeline = append(timeline, model.DriftBucket{
			Bucket:       b,
			Responses:    end - start,
			AccuracyLean: mean,
			FairnessLean: 100 - mean,
		})
	}
	return timeline
}

func trendDirection(drift []model.DriftBucket) model.TrendDirection {
	if len(drift) < 2 {
		return model.TrendStable
	}
	diff := drift[len(drift)-1].FairnessLean - drift[0].FairnessLean
	switch {
	case diff > trendThresholdPoints:
		return model.TrendIncreasingFairness
	case diff < -trendThresholdPoints:
		return model.TrendIncreasingEfficiency
	default:
		return model.TrendStable
	}
}

func scalarLeans(responses []model.SurveyResponse) []float64 {
	leans := make([]float64, len(responses))
	for i, r := range responses {
		leans[i] = r.AccuracyVsFairness
	}
	return leans
}
