package engine

import (
	"math"
	"testing"

	"equisim/internal/model"
)

func sharesSum(profiles []model.GroupProfile) float64 {
	var sum float64
	for _, p := range profiles {
		sum += p.PopulationShare
	}
	return sum
}

func TestBuildProfilesFallback(t *testing.T) {
	tests := []struct {
		name string
		asym *model.GroupAsymmetry
	}{
		{name: "nil asymmetry", asym: nil},
		{name: "empty groups", asym: &model.GroupAsymmetry{Attribute: "region"}},
		{
			name: "single group",
			asym: &model.GroupAsymmetry{
				Attribute: "region",
				Groups:    []model.GroupStat{{Name: "north", Count: 10}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := BuildProfiles(tt.asym)
			if len(profiles) != 2 {
				t.Fatalf("fallback returned %d profiles, want 2", len(profiles))
			}
			if math.Abs(sharesSum(profiles)-1) > 1e-9 {
				t.Errorf("fallback shares sum to %v, want 1", sharesSum(profiles))
			}
			if profiles[1].Responsiveness <= profiles[0].Responsiveness {
				t.Errorf("disadvantaged group should be more responsive: %+v", profiles)
			}
		})
	}
}

func TestBuildProfilesFromCounts(t *testing.T) {
	asym := &model.GroupAsymmetry{
		Attribute: "segment",
		Groups: []model.GroupStat{
			{Name: "alpha", Count: 300},
			{Name: "beta", Count: 100},
		},
	}

	profiles := BuildProfiles(asym)
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if math.Abs(profiles[0].PopulationShare-0.75) > 1e-9 {
		t.Errorf("alpha share = %v, want 0.75", profiles[0].PopulationShare)
	}
	if math.Abs(sharesSum(profiles)-1) > 1e-9 {
		t.Errorf("shares sum to %v, want 1", sharesSum(profiles))
	}
	// First group gets the top synthetic baseline, later groups descend.
	if profiles[0].BaselineOutcome <= profiles[1].BaselineOutcome {
		t.Errorf("synthetic baselines should descend with index: %+v", profiles)
	}
}

func TestBuildProfilesKnownOutcomeRate(t *testing.T) {
	low := 0.10 // below the clamp floor
	mid := 0.62
	asym := &model.GroupAsymmetry{
		Groups: []model.GroupStat{
			{Name: "a", Count: 50, OutcomeRate: &mid},
			{Name: "b", Count: 50, OutcomeRate: &low},
		},
	}

	profiles := BuildProfiles(asym)
	if profiles[0].BaselineOutcome != 0.62 {
		t.Errorf("known outcome rate not used: %v", profiles[0].BaselineOutcome)
	}
	if profiles[1].BaselineOutcome != minBaselineOutcome {
		t.Errorf("baseline not clamped to floor: %v", profiles[1].BaselineOutcome)
	}
}

func TestBuildProfilesResponsiveness(t *testing.T) {
	rate := 0.95
	asym := &model.GroupAsymmetry{
		Groups: []model.GroupStat{
			{Name: "a", Count: 1, OutcomeRate: &rate},
			{Name: "b", Count: 1},
		},
	}

	profiles := BuildProfiles(asym)
	want := math.Max(minResponsiveness, 0.4*(1-0.95))
	if math.Abs(profiles[0].Responsiveness-want) > 1e-9 {
		t.Errorf("responsiveness = %v, want %v", profiles[0].Responsiveness, want)
	}
	if profiles[0].Responsiveness < minResponsiveness {
		t.Errorf("responsiveness below floor: %v", profiles[0].Responsiveness)
	}
}
