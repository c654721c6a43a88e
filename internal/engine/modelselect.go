package engine

import (
	"math"

	"equisim/internal/model"
)

// Model family names used by the selection table.
const (
	FamilyLogisticRegression  = "logistic_regression"
	FamilyDecisionTree        = "decision_tree"
	FamilyExplainableBoosting = "explainable_boosting"
	FamilyGradientBoosting    = "gradient_boosting"
	FamilyRandomForest        = "random_forest"
	FamilyNeuralNetwork       = "neural_network"
)

// familyTraits tunes the synthetic metrics per family: a small bonus on the
// axis the family is known for, the interpretability it offers, and the
// floor no metric may fall below.
type familyTraits struct {
	accuracyBonus    float64
	fairnessBonus    float64
	robustnessBonus  float64
	interpretability float64
	metricFloor      float64
}

var traitsByFamily = map[string]familyTraits{
	FamilyLogisticRegression:  {accuracyBonus: 0.00, fairnessBonus: 0.04, robustnessBonus: 0.01, interpretability: 0.92, metricFloor: 0.62},
	FamilyDecisionTree:        {accuracyBonus: 0.00, fairnessBonus: 0.03, robustnessBonus: 0.00, interpretability: 0.88, metricFloor: 0.60},
	FamilyExplainableBoosting: {accuracyBonus: 0.02, fairnessBonus: 0.04, robustnessBonus: 0.02, interpretability: 0.85, metricFloor: 0.64},
	FamilyGradientBoosting:    {accuracyBonus: 0.05, fairnessBonus: 0.00, robustnessBonus: 0.02, interpretability: 0.45, metricFloor: 0.66},
	FamilyRandomForest:        {accuracyBonus: 0.03, fairnessBonus: 0.01, robustnessBonus: 0.05, interpretability: 0.55, metricFloor: 0.65},
	FamilyNeuralNetwork:       {accuracyBonus: 0.06, fairnessBonus: 0.00, robustnessBonus: 0.01, interpretability: 0.25, metricFloor: 0.66},
}

// SelectModel deterministically picks a model family for the weights and
// domain, synthesizes plausible hyperparameters, and synthesizes metrics
// consistent with the weights. The same seed always yields the same
// configuration; different seeds diversify choices within a bucket.
// The metrics are functions of the weights, not measured performance.
func SelectModel(weights model.ObjectiveWeights, hint model.DomainHint, seed string) model.ModelConfiguration {
	stream := NewStream(seed + "|model")

	family := pickFamily(weights, hint, stream)
	traits := traitsByFamily[family]

	metrics := model.ModelMetrics{
		Accuracy:        syntheticMetric(weights.Accuracy, traits.accuracyBonus, traits.metricFloor, stream),
		FairnessScore:   syntheticMetric(weights.Fairness, traits.fairnessBonus, traits.metricFloor, stream),
		RobustnessScore: syntheticMetric(weights.Robustness, traits.robustnessBonus, traits.metricFloor, stream),
		// Interpretability is a family property, lightly jittered. It is
		// reported but never enters the composite.
		InterpretabilityScore: clampFloat(traits.interpretability+(stream.Next()-0.5)*0.04, 0.10, 0.99),
	}

	composite := (float64(weights.Accuracy)*metrics.Accuracy +
		float64(weights.Fairness)*metrics.FairnessScore +
		float64(weights.Robustness)*metrics.RobustnessScore) / 100

	return model.ModelConfiguration{
		ModelFamily:     family,
		Hyperparameters: synthesizeHyperparameters(family, stream),
		Metrics:         metrics,
		CompositeScore:  composite,
	}
}

// pickFamily is a flat decision table keyed on the domain hint and the
// dominant objective. Ties within a bucket break on one seeded draw.
func pickFamily(weights model.ObjectiveWeights, hint model.DomainHint, stream *Stream) string {
	var bucket []string
	switch {
	case hint.Regulated() && weights.Fairness >= 50:
		bucket = []string{FamilyLogisticRegression, FamilyExplainableBoosting, FamilyDecisionTree}
	case weights.Accuracy >= 60:
		bucket = []string{FamilyGradientBoosting, FamilyNeuralNetwork, FamilyRandomForest}
	case weights.Robustness >= 40:
		bucket = []string{FamilyRandomForest, FamilyGradientBoosting}
	default:
		bucket = []string{FamilyRandomForest, FamilyLogisticRegression, FamilyGradientBoosting}
	}

	idx := int(stream.Next() * float64(len(bucket)))
	if idx >= len(bucket) {
		idx = len(bucket) - 1
	}
	return bucket[idx]
}

// syntheticMetric builds one metric from a weight-proportional base, a
// family bonus, and bounded noise, clamped to [floor, 0.99].
func syntheticMetric(weight int, bonus, floor float64, stream *Stream) float64 {
	base := 0.70 + 0.25*float64(weight)/100
	noise := (stream.Next() - 0.5) * 0.04
	return clampFloat(base+bonus+noise, floor, 0.99)
}

func synthesizeHyperparameters(family string, stream *Stream) map[string]interface{} {
	switch family {
	case FamilyLogisticRegression:
		return map[string]interface{}{
			"penalty":  "l2",
			"C":        round2(0.1 + stream.Next()*9.9),
			"max_iter": 200 + int(stream.Next()*800),
		}
	case FamilyDecisionTree:
		return map[string]interface{}{
			"max_depth":        3 + int(stream.Next()*8),
			"min_samples_leaf": 2 + int(stream.Next()*18),
			"criterion":        "gini",
		}
	case FamilyExplainableBoosting:
		return map[string]interface{}{
			"learning_rate": round2(0.01 + stream.Next()*0.19),
			"max_bins":      256,
			"interactions":  int(stream.Next() * 5),
		}
	case FamilyGradientBoosting:
		return map[string]interface{}{
			"n_estimators":  100 + int(stream.Next()*400),
			"learning_rate": round2(0.01 + stream.Next()*0.19),
			"max_depth":     3 + int(stream.Next()*5),
			"subsample":     round2(0.6 + stream.Next()*0.4),
		}
	case FamilyRandomForest:
		return map[string]interface{}{
			"n_estimators": 100 + int(stream.Next()*400),
			"max_depth":    5 + int(stream.Next()*15),
			"max_features": "sqrt",
			"bootstrap":    true,
		}
	case FamilyNeuralNetwork:
		return map[string]interface{}{
			"hidden_layers": 2 + int(stream.Next()*3),
			"hidden_units":  64 + int(stream.Next()*192),
			"dropout":       round2(0.1 + stream.Next()*0.4),
			"activation":    "relu",
		}
	}
	return map[string]interface{}{}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
