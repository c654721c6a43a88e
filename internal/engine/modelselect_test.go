package engine

import (
	"math"
	"reflect"
	"testing"

	"equisim/internal/model"
)

func TestSelectModelDeterminism(t *testing.T) {
	weights := model.ObjectiveWeights{Accuracy: 55, Fairness: 30, Robustness: 15}

	first := SelectModel(weights, model.DomainLending, "seed-1")
	second := SelectModel(weights, model.DomainLending, "seed-1")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different configurations:\n%+v\n%+v", first, second)
	}
}

func TestSelectModelSeedsDiversify(t *testing.T) {
	weights := model.ObjectiveWeights{Accuracy: 34, Fairness: 33, Robustness: 33}

	families := map[string]bool{}
	for _, seed := range []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8"} {
		cfg := SelectModel(weights, model.DomainGeneral, seed)
		families[cfg.ModelFamily] = true
	}
	if len(families) < 2 {
		t.Errorf("eight seeds picked only %d distinct families", len(families))
	}
}

func TestSelectModelDecisionTable(t *testing.T) {
	interpretable := map[string]bool{
		FamilyLogisticRegression:  true,
		FamilyDecisionTree:        true,
		FamilyExplainableBoosting: true,
	}
	ensembles := map[string]bool{
		FamilyGradientBoosting: true,
		FamilyNeuralNetwork:    true,
		FamilyRandomForest:     true,
	}

	tests := []struct {
		name    string
		weights model.ObjectiveWeights
		hint    model.DomainHint
		allowed map[string]bool
	}{
		{
			name:    "regulated fairness-dominant picks interpretable",
			weights: model.ObjectiveWeights{Accuracy: 30, Fairness: 55, Robustness: 15},
			hint:    model.DomainLending,
			allowed: interpretable,
		},
		{
			name:    "healthcare fairness-dominant picks interpretable",
			weights: model.ObjectiveWeights{Accuracy: 25, Fairness: 60, Robustness: 15},
			hint:    model.DomainHealthcare,
			allowed: interpretable,
		},
		{
			name:    "accuracy-dominant picks ensembles",
			weights: model.ObjectiveWeights{Accuracy: 70, Fairness: 20, Robustness: 10},
			hint:    model.DomainGeneral,
			allowed: ensembles,
		},
		{
			name:    "robustness-heavy avoids linear families",
			weights: model.ObjectiveWeights{Accuracy: 30, Fairness: 25, Robustness: 45},
			hint:    model.DomainGeneral,
			allowed: map[string]bool{FamilyRandomForest: true, FamilyGradientBoosting: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, seed := range []string{"a", "b", "c", "d"} {
				cfg := SelectModel(tt.weights, tt.hint, seed)
				if !tt.allowed[cfg.ModelFamily] {
					t.Errorf("seed %q picked %s, outside allowed bucket", seed, cfg.ModelFamily)
				}
			}
		})
	}
}

func TestSelectModelMetricBounds(t *testing.T) {
	weights := model.ObjectiveWeights{Accuracy: 80, Fairness: 10, Robustness: 10}
	cfg := SelectModel(weights, model.DomainGeneral, "bounds")

	metrics := []float64{
		cfg.Metrics.Accuracy,
		cfg.Metrics.FairnessScore,
		cfg.Metrics.RobustnessScore,
		cfg.Metrics.InterpretabilityScore,
	}
	for _, m := range metrics {
		if m <= 0 || m > 0.99 {
			t.Errorf("metric out of bounds: %v (%+v)", m, cfg.Metrics)
		}
	}
}

func TestSelectModelComposite(t *testing.T) {
	weights := model.ObjectiveWeights{Accuracy: 50, Fairness: 30, Robustness: 20}
	cfg := SelectModel(weights, model.DomainEducation, "composite")

	want := (50*cfg.Metrics.Accuracy + 30*cfg.Metrics.FairnessScore + 20*cfg.Metrics.RobustnessScore) / 100
	if math.Abs(cfg.CompositeScore-want) > 1e-9 {
		t.Errorf("composite = %v, want %v (interpretability must be excluded)", cfg.CompositeScore, want)
	}
}

func TestSelectModelHyperparameters(t *testing.T) {
	weights := model.ObjectiveWeights{Accuracy: 70, Fairness: 20, Robustness: 10}
	cfg := SelectModel(weights, model.DomainGeneral, "hp-seed")

	if len(cfg.Hyperparameters) == 0 {
		t.Fatalf("no hyperparameters synthesized for %s", cfg.ModelFamily)
	}
}
