package engine

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/montanaflynn/stats"

	"equisim/internal/model"
)

var (
	// ErrInvalidWeights rejects weight sets that do not sum to 100 or
	// contain negatives. The simulator never renormalizes caller weights.
	ErrInvalidWeights = errors.New("objective weights must be non-negative and sum to 100")
)

const (
	// defaultGridSteps controls candidate density: steps+1 grid points for
	// two groups, steps*5 simplex samples for three or more.
	defaultGridSteps = 20

	// outcomeNoiseSigma is the per-run Gaussian noise on each group outcome.
	outcomeNoiseSigma = 0.02

	highConfidenceRuns     = 500
	moderateConfidenceRuns = 100
	highConfidenceVariance = 0.001
)

// ValidateWeights checks a weight set before it reaches the simulator.
func ValidateWeights(w model.ObjectiveWeights) error {
	if w.Accuracy < 0 || w.Fairness < 0 || w.Robustness < 0 {
		return ErrInvalidWeights
	}
	if w.Sum() != 100 {
		return ErrInvalidWeights
	}
	return nil
}

// candidate is one allocation vector with its averaged simulation results.
type candidate struct {
	allocation []float64
	outcome    float64
	gap        float64
	score      float64
}

// Simulate sweeps candidate allocations over the groups, runs runsPerPoint
// noisy simulations per candidate, and scores each against the weights.
// It returns the optimum, an equal-split comparison, the Pareto frontier of
// (outcome, fairness gap) candidates, and a confidence rating.
//
// All randomness derives from the seed: repeated calls with identical inputs
// return identical results. Candidates evaluate concurrently; each derives
// its own stream from the seed so the outcome is independent of scheduling.
func Simulate(weights model.ObjectiveWeights, profiles []model.GroupProfile, runsPerPoint int, seed string) (*model.MonteCarloResult, error) {
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		profiles = BuildProfiles(nil)
	}
	if runsPerPoint < 1 {
		runsPerPoint = 1
	}

	if len(profiles) == 1 {
		return simulateSingleGroup(profiles[0], runsPerPoint, seed), nil
	}

	allocations := generateCandidates(len(profiles), defaultGridSteps, seed)
	candidates := make([]candidate, len(allocations))

	var wg sync.WaitGroup
	for i, alloc := range allocations {
		wg.Add(1)
		go func(i int, alloc []float64) {
			defer wg.Done()
			outcome, gap := evaluateAllocation(profiles, alloc, runsPerPoint, seed)
			candidates[i] = candidate{
				allocation: alloc,
				outcome:    outcome,
				gap:        gap,
				score:      scoreCandidate(weights, outcome, gap),
			}
		}(i, alloc)
	}
	wg.Wait()

	// Strict comparison keeps the first candidate on ties, so the optimum
	// is deterministic in generation order.
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].score > candidates[best].score {
			best = i
		}
	}
	optimal := candidates[best]

	equalOutcome, equalGap := evaluateAllocation(profiles, equalSplit(len(profiles)), runsPerPoint, seed)

	result := &model.MonteCarloResult{
		TotalRuns:              len(candidates) * runsPerPoint,
		OptimalAllocation:      buildArms(profiles, optimal.allocation),
		ExpectedOutcome:        optimal.outcome * 100,
		EfficiencySacrificePct: efficiencySacrifice(equalOutcome, optimal.outcome),
		FairnessImprovementPct: fairnessImprovement(equalGap, optimal.gap),
		Confidence:             confidenceLevel(candidates, runsPerPoint),
		ParetoFrontier:         paretoFrontier(candidates),
	}
	return result, nil
}

func simulateSingleGroup(profile model.GroupProfile, runsPerPoint int, seed string) *model.MonteCarloResult {
	alloc := []float64{1.0}
	outcome, _ := evaluateAllocation([]model.GroupProfile{profile}, alloc, runsPerPoint, seed)

	confidence := model.ConfidenceLow
	if runsPerPoint >= highConfidenceRuns {
		confidence = model.ConfidenceHigh
	} else if runsPerPoint >= moderateConfidenceRuns {
		confidence = model.ConfidenceModerate
	}

	return &model.MonteCarloResult{
		TotalRuns:         runsPerPoint,
		OptimalAllocation: []model.AllocationArm{{Group: profile.Name, Fraction: 1.0}},
		ExpectedOutcome:   outcome * 100,
		Confidence:        confidence,
		ParetoFrontier:    []model.ParetoPoint{{Outcome: outcome, FairnessGap: 0, Allocation: alloc}},
	}
}

// generateCandidates produces the allocation vectors to evaluate. Two groups
// sweep the single free fraction on a uniform grid; more groups sample the
// probability simplex with normalized exponential variates, an unbiased
// cover that needs no rejection step.
func generateCandidates(groups, steps int, seed string) [][]float64 {
	if groups == 2 {
		allocations := make([][]float64, 0, steps+1)
		for i := 0; i <= steps; i++ {
			f := float64(i) / float64(steps)
			allocations = append(allocations, []float64{f, 1 - f})
		}
		return allocations
	}

	stream := NewStream(seed + "|simplex")
	points := steps * 5
	allocations := make([][]float64, 0, points)
	for p := 0; p < points; p++ {
		alloc := make([]float64, groups)
		var sum float64
		for g := range alloc {
			u := stream.Next()
			if u < 1e-12 {
				u = 1e-12
			}
			alloc[g] = -math.Log(u)
			sum += alloc[g]
		}
		for g := range alloc {
			alloc[g] /= sum
		}
		allocations = append(allocations, alloc)
	}
	return allocations
}

// evaluateAllocation averages the population-weighted outcome and the
// max-min fairness gap over runsPerPoint noisy simulations. The stream is
// keyed on the seed plus the serialized allocation so every candidate gets
// an independent, reproducible noise sequence.
func evaluateAllocation(profiles []model.GroupProfile, alloc []float64, runsPerPoint int, seed string) (float64, float64) {
	stream := NewStream(seed + "|" + serializeAllocation(alloc))

	var outcomeSum, gapSum float64
	for run := 0; run < runsPerPoint; run++ {
		var weighted float64
		minOutcome := math.MaxFloat64
		maxOutcome := -math.MaxFloat64

		for g, p := range profiles {
			outcome := clamp01(p.BaselineOutcome + alloc[g]*p.Responsiveness + stream.Gaussian()*outcomeNoiseSigma)
			weighted += p.PopulationShare * outcome
			if outcome < minOutcome {
				minOutcome = outcome
			}
			if outcome > maxOutcome {
				maxOutcome = outcome
			}
		}

		outcomeSum += weighted
		gapSum += maxOutcome - minOutcome
	}

	runs := float64(runsPerPoint)
	return outcomeSum / runs, gapSum / runs
}

func serializeAllocation(alloc []float64) string {
	parts := make([]string, len(alloc))
	for i, f := range alloc {
		parts[i] = strconv.FormatFloat(f, 'f', 4, 64)
	}
	return strings.Join(parts, ",")
}

func scoreCandidate(weights model.ObjectiveWeights, outcome, gap float64) float64 {
	return float64(weights.Accuracy)/100*outcome + float64(weights.Fairness)/100*(1-gap)
}

func equalSplit(groups int) []float64 {
	alloc := make([]float64, groups)
	for i := range alloc {
		alloc[i] = 1 / float64(groups)
	}
	return alloc
}

func buildArms(profiles []model.GroupProfile, alloc []float64) []model.AllocationArm {
	arms := make([]model.AllocationArm, len(profiles))
	for i, p := range profiles {
		arms[i] = model.AllocationArm{Group: p.Name, Fraction: alloc[i]}
	}
	return arms
}

// efficiencySacrifice reports how much population-weighted outcome the
// optimum gives up versus an equal split, as a percentage of the equal-split
// outcome, clamped to [0, 100].
func efficiencySacrifice(equalOutcome, optimalOutcome float64) float64 {
	if equalOutcome <= 0 {
		return 0
	}
	pct := (equalOutcome - optimalOutcome) / equalOutcome * 100
	return clampFloat(pct, 0, 100)
}

// fairnessImprovement reports how much the optimum shrinks the fairness gap
// versus an equal split, zero when the equal split already has no gap.
func fairnessImprovement(equalGap, optimalGap float64) float64 {
	if equalGap == 0 {
		return 0
	}
	pct := (equalGap - optimalGap) / equalGap * 100
	return clampFloat(pct, 0, 100)
}

// paretoFrontier walks candidates in descending-outcome order and keeps a
// point only when its fairness gap strictly improves on everything seen so
// far, yielding a frontier with no dominated points.
func paretoFrontier(candidates []candidate) []model.ParetoPoint {
	sorted := make([]candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].outcome > sorted[j].outcome
	})

	var frontier []model.ParetoPoint
	bestGap := math.MaxFloat64
	for _, c := range sorted {
		if c.gap < bestGap {
			frontier = append(frontier, model.ParetoPoint{
				Outcome:     c.outcome,
				FairnessGap: c.gap,
				Allocation:  c.allocation,
			})
			bestGap = c.gap
		}
	}
	return frontier
}

// confidenceLevel grades result stability: high needs both a deep run count
// and near-identical scores among the leading candidates, moderate needs
// only a reasonable run count. A heuristic, not a statistical guarantee.
func confidenceLevel(candidates []candidate, runsPerPoint int) model.ConfidenceLevel {
	if runsPerPoint >= highConfidenceRuns && topScoreVariance(candidates, 5) < highConfidenceVariance {
		return model.ConfidenceHigh
	}
	if runsPerPoint >= moderateConfidenceRuns {
		return model.ConfidenceModerate
	}
	return model.ConfidenceLow
}

func topScoreVariance(candidates []candidate, n int) float64 {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = c.score
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	if len(scores) > n {
		scores = scores[:n]
	}
	if len(scores) < 2 {
		return 0
	}

	variance, err := stats.PopulationVariance(scores)
	if err != nil {
		return math.MaxFloat64
	}
	return variance
}
