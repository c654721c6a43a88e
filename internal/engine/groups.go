package engine

import (
	"math"

	"equisim/internal/model"
)

const (
	minBaselineOutcome = 0.30
	maxBaselineOutcome = 0.95
	minResponsiveness  = 0.05
)

// BuildProfiles converts a detected population asymmetry into simulation
// inputs. With no asymmetry, or fewer than two groups, it falls back to a
// fixed advantaged/disadvantaged pair so a simulation is always runnable.
func BuildProfiles(asym *model.GroupAsymmetry) []model.GroupProfile {
	if asym == nil || len(asym.Groups) < 2 {
		return defaultProfiles()
	}

	total := 0
	for _, g := range asym.Groups {
		total += g.Count
	}
	if total <= 0 {
		return defaultProfiles()
	}

	n := len(asym.Groups)
	profiles := make([]model.GroupProfile, 0, n)
	for i, g := range asym.Groups {
		baseline := syntheticBaseline(i, n)
		if g.OutcomeRate != nil {
			baseline = *g.OutcomeRate
		}
		baseline = clampFloat(baseline, minBaselineOutcome, maxBaselineOutcome)

		profiles = append(profiles, model.GroupProfile{
			Name:            g.Name,
			BaselineOutcome: baseline,
			// Groups starting from a lower baseline have more room to
			// gain per unit of resource.
			Responsiveness:  math.Max(minResponsiveness, 0.4*(1-baseline)),
			PopulationShare: float64(g.Count) / float64(total),
		})
	}

	return normalizeShares(profiles)
}

func defaultProfiles() []model.GroupProfile {
	return []model.GroupProfile{
		{Name: "Group A", BaselineOutcome: 0.85, Responsiveness: 0.10, PopulationShare: 0.5},
		{Name: "Group B", BaselineOutcome: 0.55, Responsiveness: 0.35, PopulationShare: 0.5},
	}
}

// syntheticBaseline spaces baselines evenly, descending from 0.85 across
// the group index, for groups with no known outcome rate.
func syntheticBaseline(idx, n int) float64 {
	if n < 2 {
		return maxBaselineOutcome - 0.10
	}
	return 0.85 - 0.30*float64(idx)/float64(n-1)
}

func normalizeShares(profiles []model.GroupProfile) []model.GroupProfile {
	var sum float64
	for _, p := range profiles {
		sum += p.PopulationShare
	}
	if sum <= 0 {
		return profiles
	}
	for i := range profiles {
		profiles[i].PopulationShare /= sum
	}
	return profiles
}
