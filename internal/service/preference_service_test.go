package service

import (
	"math"
	"testing"

	"equisim/internal/model"
)

func TestScalarLean(t *testing.T) {
	tests := []struct {
		name    string
		weights model.ObjectiveWeights
		want    float64
	}{
		{"balanced", model.ObjectiveWeights{Accuracy: 40, Fairness: 40, Robustness: 20}, 50},
		{"accuracy heavy", model.ObjectiveWeights{Accuracy: 80, Fairness: 10, Robustness: 10}, 80.0 / 90.0 * 100},
		{"fairness heavy", model.ObjectiveWeights{Accuracy: 10, Fairness: 80, Robustness: 10}, 10.0 / 90.0 * 100},
		{"all robustness", model.ObjectiveWeights{Accuracy: 0, Fairness: 0, Robustness: 100}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scalarLean(tt.weights)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("scalarLean(%+v) = %v, want %v", tt.weights, got, tt.want)
			}
		})
	}
}
