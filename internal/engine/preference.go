package engine

import (
	"math"

	"equisim/internal/model"
)

const (
	// questionInfluence caps how far a single neutral-multiplier question
	// can push its mapped objective, in points, before weighting.
	questionInfluence = 15

	// minObjectiveWeight keeps every objective in play: no amount of
	// one-sided answers may drive an axis to zero.
	minObjectiveWeight = 5
)

// InferWeights maps a participant's recorded answers onto normalized
// objective weights. Answers move the mapped objective and pull the other
// two down in a fixed ratio, preserving the zero-sum tradeoff; unanswered
// questions contribute nothing. The result always sums to exactly 100 with
// every objective at least minObjectiveWeight.
func InferWeights(questions []model.ValueQuestion, responses []model.ValueResponse) model.ObjectiveWeights {
	answers := make(map[string]int, len(responses))
	for _, r := range responses {
		answers[r.QuestionID] = r.Answer
	}

	base := model.DefaultWeights()
	acc := float64(base.Accuracy)
	fair := float64(base.Fairness)
	rob := float64(base.Robustness)

	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}

		var signal float64
		switch q.QuestionType {
		case model.QuestionTypeLikert:
			signal = (clampFloat(float64(answer), 1, 5) - 3) / 2
		case model.QuestionTypeBinary:
			if answer >= 1 {
				signal = 0.5
			} else {
				signal = -0.5
			}
		default:
			continue
		}

		delta := signal * q.WeightMultiplier * questionInfluence

		switch q.MapsTo {
		case model.ObjectiveAccuracy:
			acc += delta
			fair -= 0.6 * delta
			rob -= 0.4 * delta
		case model.ObjectiveFairness:
			fair += delta
			acc -= 0.6 * delta
			rob -= 0.4 * delta
		case model.ObjectiveRobustness:
			rob += delta
			acc -= 0.5 * delta
			fair -= 0.5 * delta
		}
	}

	return normalizeWeights(acc, fair, rob)
}

// normalizeWeights clamps each objective to the floor, scales the trio back
// to a sum of 100, and rounds with the remainder assigned to robustness.
func normalizeWeights(acc, fair, rob float64) model.ObjectiveWeights {
	acc = math.Max(acc, minObjectiveWeight)
	fair = math.Max(fair, minObjectiveWeight)
	rob = math.Max(rob, minObjectiveWeight)

	total := acc + fair + rob
	a := int(math.Round(acc / total * 100))
	f := int(math.Round(fair / total * 100))
	w := model.ObjectiveWeights{Accuracy: a, Fairness: f, Robustness: 100 - a - f}

	return enforceFloor(w)
}

// enforceFloor repairs any objective that rounding pushed under the floor,
// taking the shortfall from the largest objective so the sum stays 100.
func enforceFloor(w model.ObjectiveWeights) model.ObjectiveWeights {
	vals := [3]int{w.Accuracy, w.Fairness, w.Robustness}
	for i := range vals {
		if vals[i] >= minObjectiveWeight {
			continue
		}
		need := minObjectiveWeight - vals[i]
		vals[i] = minObjectiveWeight

		largest := 0
		for j := 1; j < 3; j++ {
			if vals[j] > vals[largest] {
				largest = j
			}
		}
		vals[largest] -= need
	}
	return model.ObjectiveWeights{Accuracy: vals[0], Fairness: vals[1], Robustness: vals[2]}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}
