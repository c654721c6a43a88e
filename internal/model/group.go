package model

// GroupStat is a detected population group with its observed size and,
// when the caller knows it, a measured positive-outcome rate.
type GroupStat struct {
	Name        string   `json:"name" bson:"name"`
	Count       int      `json:"count" bson:"count"`
	OutcomeRate *float64 `json:"outcomeRate,omitempty" bson:"outcomeRate,omitempty"` // 0-1 when known
}

// GroupAsymmetry describes the population split along one attribute,
// as detected by the caller from its dataset.
type GroupAsymmetry struct {
	Attribute string      `json:"attribute" bson:"attribute"`
	Groups    []GroupStat `json:"groups" bson:"groups"`
}

// GroupProfile is a simulation-ready population segment: where the group
// starts, how much it gains per unit of allocated resource, and how big it is.
// Shares across one simulation's profiles always sum to 1.
type GroupProfile struct {
	Name            string  `json:"name" bson:"name"`
	BaselineOutcome float64 `json:"baselineOutcome" bson:"baselineOutcome"` // 0-1
	Responsiveness  float64 `json:"responsiveness" bson:"responsiveness"`   // 0-1, marginal gain per allocation unit
	PopulationShare float64 `json:"populationShare" bson:"populationShare"` // (0,1]
}
