package model

import "time"

// ConfidenceLevel grades how stable a simulation's optimum is. It is a
// stability heuristic over the candidate scores, not a statistical guarantee.
type ConfidenceLevel string

const (
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceModerate ConfidenceLevel = "moderate"
	ConfidenceHigh     ConfidenceLevel = "high"
)

// AllocationArm is one group's slice of the allocated resource.
type AllocationArm struct {
	Group    string  `json:"group" bson:"group"`
	Fraction float64 `json:"fraction" bson:"fraction"`
}

// ParetoPoint is one non-dominated (outcome, fairness gap) candidate.
type ParetoPoint struct {
	Outcome     float64   `json:"outcome" bson:"outcome"`
	FairnessGap float64   `json:"fairnessGap" bson:"fairnessGap"`
	Allocation  []float64 `json:"allocation" bson:"allocation"`
}

// MonteCarloResult is the full outcome of one allocation simulation.
type MonteCarloResult struct {
	TotalRuns              int             `json:"totalRuns" bson:"totalRuns"`
	OptimalAllocation      []AllocationArm `json:"optimalAllocation" bson:"optimalAllocation"`
	ExpectedOutcome        float64         `json:"expectedOutcome" bson:"expectedOutcome"` // 0-100
	FairnessImprovementPct float64         `json:"fairnessImprovementPct" bson:"fairnessImprovementPct"`
	EfficiencySacrificePct float64         `json:"efficiencySacrificePct" bson:"efficiencySacrificePct"`
	Confidence             ConfidenceLevel `json:"confidence" bson:"confidence"`
	ParetoFrontier         []ParetoPoint   `json:"paretoFrontier" bson:"paretoFrontier"`
}

// ModelMetrics are the synthetic evaluation metrics of a recommended
// configuration. They are functions of the weights, not measured performance.
type ModelMetrics struct {
	Accuracy              float64 `json:"accuracy" bson:"accuracy"`
	FairnessScore         float64 `json:"fairnessScore" bson:"fairnessScore"`
	RobustnessScore       float64 `json:"robustnessScore" bson:"robustnessScore"`
	InterpretabilityScore float64 `json:"interpretabilityScore" bson:"interpretabilityScore"`
}

// ModelConfiguration is a recommended model family with synthesized
// hyperparameters and metrics consistent with the objective weights.
type ModelConfiguration struct {
	ModelFamily     string                 `json:"modelFamily" bson:"modelFamily"`
	Hyperparameters map[string]interface{} `json:"hyperparameters" bson:"hyperparameters"`
	Metrics         ModelMetrics           `json:"metrics" bson:"metrics"`
	CompositeScore  float64                `json:"compositeScore" bson:"compositeScore"`
}

// DomainHint is a pre-classified tag for the decision domain. Classification
// from raw dataset names is the caller's job, never this service's.
type DomainHint string

const (
	DomainLending    DomainHint = "lending"
	DomainHealthcare DomainHint = "healthcare"
	DomainHiring     DomainHint = "hiring"
	DomainJustice    DomainHint = "justice"
	DomainEducation  DomainHint = "education"
	DomainGeneral    DomainHint = "general"
)

// Regulated reports whether the domain carries interpretability obligations.
func (d DomainHint) Regulated() bool {
	switch d {
	case DomainLending, DomainHealthcare, DomainHiring, DomainJustice:
		return true
	}
	return false
}

// Recommendation bundles everything the engine produced for one run:
// the weights that drove it, the allocation simulation, and the model pick.
// An empty ParticipantID marks a community-level run.
type Recommendation struct {
	ID            string             `json:"id" bson:"_id,omitempty"`
	SessionCode   string             `json:"sessionCode" bson:"sessionCode"`
	ParticipantID string             `json:"participantId,omitempty" bson:"participantId,omitempty"`
	Weights       ObjectiveWeights   `json:"weights" bson:"weights"`
	Simulation    MonteCarloResult   `json:"simulation" bson:"simulation"`
	Model         ModelConfiguration `json:"model" bson:"model"`
	Seed          string             `json:"seed" bson:"seed"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
