package model

// Objective identifies one of the three tradeoff axes every decision is scored on.
type Objective string

const (
	ObjectiveAccuracy   Objective = "accuracy"
	ObjectiveFairness   Objective = "fairness"
	ObjectiveRobustness Objective = "robustness"
)

// ObjectiveWeights is the three-way tradeoff that parameterizes every
// downstream decision. The three values always sum to exactly 100.
type ObjectiveWeights struct {
	Accuracy   int `json:"accuracy" bson:"accuracy"`
	Fairness   int `json:"fairness" bson:"fairness"`
	Robustness int `json:"robustness" bson:"robustness"`
}

// Sum returns the total of the three weights.
func (w ObjectiveWeights) Sum() int {
	return w.Accuracy + w.Fairness + w.Robustness
}

// DefaultWeights is the neutral starting point before any stakeholder signal.
func DefaultWeights() ObjectiveWeights {
	return ObjectiveWeights{Accuracy: 40, Fairness: 40, Robustness: 20}
}
