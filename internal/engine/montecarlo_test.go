package engine

import (
	"errors"
	"reflect"
	"testing"

	"equisim/internal/model"
)

func TestSimulateRejectsInvalidWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights model.ObjectiveWeights
	}{
		{name: "sum below 100", weights: model.ObjectiveWeights{Accuracy: 40, Fairness: 40, Robustness: 10}},
		{name: "sum above 100", weights: model.ObjectiveWeights{Accuracy: 50, Fairness: 50, Robustness: 10}},
		{name: "negative component", weights: model.ObjectiveWeights{Accuracy: 120, Fairness: -30, Robustness: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simulate(tt.weights, nil, 10, "seed")
			if !errors.Is(err, ErrInvalidWeights) {
				t.Fatalf("err = %v, want ErrInvalidWeights", err)
			}
		})
	}
}

func TestSimulateDeterminism(t *testing.T) {
	weights := model.ObjectiveWeights{Accuracy: 50, Fairness: 30, Robustness: 20}

	first, err := Simulate(weights, nil, 50, "seed-x")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Simulate(weights, nil, 50, "seed-x")
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestSimulateParetoMonotonicity(t *testing.T) {
	weights := model.ObjectiveWeights{Accuracy: 40, Fairness: 40, Robustness: 20}
	result, err := Simulate(weights, nil, 100, "frontier-seed")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.ParetoFrontier) == 0 {
		t.Fatal("empty pareto frontier")
	}

	for i := 1; i < len(result.ParetoFrontier); i++ {
		prev, cur := result.ParetoFrontier[i-1], result.ParetoFrontier[i]
		if cur.FairnessGap >= prev.FairnessGap {
			t.Errorf("frontier gap not strictly decreasing at %d: %v -> %v", i, prev.FairnessGap, cur.FairnessGap)
		}
		if cur.Outcome > prev.Outcome {
			t.Errorf("frontier outcome increased at %d: %v -> %v", i, prev.Outcome, cur.Outcome)
		}
	}
}

func TestSimulateBaselineSanity(t *testing.T) {
	seeds := []string{"a", "b", "community", "0"}
	weightSets := []model.ObjectiveWeights{
		{Accuracy: 80, Fairness: 10, Robustness: 10},
		{Accuracy: 10, Fairness: 80, Robustness: 10},
		{Accuracy: 34, Fairness: 33, Robustness: 33},
	}

	for _, seed := range seeds {
		for _, w := range weightSets {
			result, err := Simulate(w, nil, 50, seed)
			if err != nil {
				t.Fatal(err)
			}
			if result.EfficiencySacrificePct < 0 || result.EfficiencySacrificePct > 100 {
				t.Errorf("efficiency sacrifice out of range: %v", result.EfficiencySacrificePct)
			}
			if result.FairnessImprovementPct < 0 || result.FairnessImprovementPct > 100 {
				t.Errorf("fairness improvement out of range: %v", result.FairnessImprovementPct)
			}
			if result.ExpectedOutcome < 0 || result.ExpectedOutcome > 100 {
				t.Errorf("expected outcome out of range: %v", result.ExpectedOutcome)
			}
		}
	}
}

// Scenario A: accuracy-dominant weights over the fallback pair. Group B is
// both more responsive and further behind, so shifting resources toward it
// also maximizes the population-weighted outcome.
func TestSimulateAccuracyDominantScenario(t *testing.T) {
	weights := model.ObjectiveWeights{Accuracy: 80, Fairness: 10, Robustness: 10}
	result, err := Simulate(weights, nil, 200, "community")
	if err != nil {
		t.Fatal(err)
	}

	if len(result.OptimalAllocation) != 2 {
		t.Fatalf("got %d arms, want 2", len(result.OptimalAllocation))
	}
	groupA, groupB := result.OptimalAllocation[0], result.OptimalAllocation[1]
	if groupB.Fraction <= groupA.Fraction {
		t.Errorf("allocation should favor the responsive group: A=%v B=%v", groupA.Fraction, groupB.Fraction)
	}
	if result.EfficiencySacrificePct > 1.0 {
		t.Errorf("efficiency sacrifice should be near zero, got %v", result.EfficiencySacrificePct)
	}
}

// Scenario B: fairness-dominant weights over the same profiles and seed must
// shift the allocation and buy strictly more fairness improvement.
func TestSimulateFairnessDominantScenario(t *testing.T) {
	accuracyFirst := model.ObjectiveWeights{Accuracy: 80, Fairness: 10, Robustness: 10}
	fairnessFirst := model.ObjectiveWeights{Accuracy: 25, Fairness: 55, Robustness: 20}

	a, err := Simulate(accuracyFirst, nil, 200, "community")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(fairnessFirst, nil, 200, "community")
	if err != nil {
		t.Fatal(err)
	}

	if b.FairnessImprovementPct <= a.FairnessImprovementPct {
		t.Errorf("fairness-dominant run should improve fairness more: %v vs %v",
			b.FairnessImprovementPct, a.FairnessImprovementPct)
	}
}

func TestSimulateSingleGroup(t *testing.T) {
	profiles := []model.GroupProfile{
		{Name: "only", BaselineOutcome: 0.6, Responsiveness: 0.2, PopulationShare: 1},
	}
	result, err := Simulate(model.DefaultWeights(), profiles, 50, "solo")
	if err != nil {
		t.Fatal(err)
	}

	if len(result.OptimalAllocation) != 1 || result.OptimalAllocation[0].Fraction != 1.0 {
		t.Fatalf("single group should get the full allocation: %+v", result.OptimalAllocation)
	}
	if result.FairnessImprovementPct != 0 || result.EfficiencySacrificePct != 0 {
		t.Errorf("single group comparisons should be zero: %+v", result)
	}
	if len(result.ParetoFrontier) != 1 || result.ParetoFrontier[0].FairnessGap != 0 {
		t.Errorf("single group frontier should be one gap-free point: %+v", result.ParetoFrontier)
	}
}

func TestSimulateIdenticalProfiles(t *testing.T) {
	profiles := []model.GroupProfile{
		{Name: "x", BaselineOutcome: 0.7, Responsiveness: 0.2, PopulationShare: 0.5},
		{Name: "y", BaselineOutcome: 0.7, Responsiveness: 0.2, PopulationShare: 0.5},
	}

	result, err := Simulate(model.DefaultWeights(), profiles, 50, "twins")
	if err != nil {
		t.Fatal(err)
	}
	if result.FairnessImprovementPct < 0 || result.EfficiencySacrificePct < 0 {
		t.Errorf("identical profiles produced negative comparison: %+v", result)
	}
}

func TestSimulateThreeGroupSimplex(t *testing.T) {
	profiles := []model.GroupProfile{
		{Name: "a", BaselineOutcome: 0.85, Responsiveness: 0.06, PopulationShare: 0.4},
		{Name: "b", BaselineOutcome: 0.65, Responsiveness: 0.14, PopulationShare: 0.35},
		{Name: "c", BaselineOutcome: 0.45, Responsiveness: 0.22, PopulationShare: 0.25},
	}

	result, err := Simulate(model.DefaultWeights(), profiles, 20, "simplex-seed")
	if err != nil {
		t.Fatal(err)
	}

	if result.TotalRuns != defaultGridSteps*5*20 {
		t.Errorf("total runs = %d, want %d", result.TotalRuns, defaultGridSteps*5*20)
	}
	var sum float64
	for _, arm := range result.OptimalAllocation {
		sum += arm.Fraction
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("optimal allocation sums to %v, want 1", sum)
	}
}

func TestConfidenceLevels(t *testing.T) {
	weights := model.DefaultWeights()

	low, err := Simulate(weights, nil, 10, "conf")
	if err != nil {
		t.Fatal(err)
	}
	if low.Confidence != model.ConfidenceLow {
		t.Errorf("10 runs should be low confidence, got %s", low.Confidence)
	}

	moderate, err := Simulate(weights, nil, 100, "conf")
	if err != nil {
		t.Fatal(err)
	}
	if moderate.Confidence == model.ConfidenceLow {
		t.Errorf("100 runs should be at least moderate, got %s", moderate.Confidence)
	}

	deep, err := Simulate(weights, nil, 500, "conf")
	if err != nil {
		t.Fatal(err)
	}
	if deep.Confidence == model.ConfidenceLow {
		t.Errorf("500 runs should never be low, got %s", deep.Confidence)
	}
}
