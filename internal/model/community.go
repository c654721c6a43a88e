package model

import "time"

// SurveyResponse is one respondent's overall record in a session: the legacy
// efficiency-vs-fairness slider (0 = full fairness, 100 = full accuracy),
// the scenario and principle they sided with, and, when the respondent
// answered the value questions, their inferred weights.
type SurveyResponse struct {
	ID                 string            `json:"id" bson:"_id,omitempty"`
	SessionCode        string            `json:"sessionCode" bson:"sessionCode"`
	ParticipantID      string            `json:"participantId" bson:"participantId"`
	AccuracyVsFairness float64           `json:"accuracyVsFairness" bson:"accuracyVsFairness"` // 0-100
	Scenario           string            `json:"scenario" bson:"scenario"`
	Principle          string            `json:"principle" bson:"principle"`
	Weights            *ObjectiveWeights `json:"weights,omitempty" bson:"weights,omitempty"`
	SubmittedAt        time.Time         `json:"submittedAt" bson:"submittedAt"`
}

// TrendDirection flags where community preference is heading over time.
type TrendDirection string

const (
	TrendIncreasingFairness   TrendDirection = "increasing_fairness"
	TrendIncreasingEfficiency TrendDirection = "increasing_efficiency"
	TrendStable               TrendDirection = "stable"
)

// DriftBucket is one time slice of the community's preference timeline.
type DriftBucket struct {
	Bucket       int     `json:"bucket" bson:"bucket"`
	Responses    int     `json:"responses" bson:"responses"`
	AccuracyLean float64 `json:"accuracyLean" bson:"accuracyLean"` // mean accuracyVsFairness in slice
	FairnessLean float64 `json:"fairnessLean" bson:"fairnessLean"` // 100 - AccuracyLean
}

// CommunityInsights summarizes the distribution of a session's responses.
// It is recomputed from scratch whenever the response set changes.
type CommunityInsights struct {
	TotalResponses    int            `json:"totalResponses" bson:"totalResponses"`
	ScenarioCounts    map[string]int `json:"scenarioCounts" bson:"scenarioCounts"`
	PrincipleCounts   map[string]int `json:"principleCounts" bson:"principleCounts"`
	PolarizationIndex float64        `json:"polarizationIndex" bson:"polarizationIndex"` // 0 unanimous, ->1 fragmented
	StabilityScore    float64        `json:"stabilityScore" bson:"stabilityScore"`       // 0-1
	TrendDirection    TrendDirection `json:"trendDirection" bson:"trendDirection"`
	Drift             []DriftBucket  `json:"drift" bson:"drift"`
}
