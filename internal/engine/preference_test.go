package engine

import (
	"testing"

	"equisim/internal/model"
)

func likertQuestion(id string, mapsTo model.Objective, multiplier float64) model.ValueQuestion {
	return model.ValueQuestion{
		ID:               id,
		QuestionType:     model.QuestionTypeLikert,
		MapsTo:           mapsTo,
		WeightMultiplier: multiplier,
	}
}

func binaryQuestion(id string, mapsTo model.Objective, multiplier float64) model.ValueQuestion {
	return model.ValueQuestion{
		ID:               id,
		QuestionType:     model.QuestionTypeBinary,
		MapsTo:           mapsTo,
		WeightMultiplier: multiplier,
	}
}

func TestInferWeightsNormalization(t *testing.T) {
	tests := []struct {
		name      string
		questions []model.ValueQuestion
		responses []model.ValueResponse
	}{
		{
			name: "no responses keeps baseline",
		},
		{
			name: "single fairness push",
			questions: []model.ValueQuestion{
				likertQuestion("q1", model.ObjectiveFairness, 1.0),
			},
			responses: []model.ValueResponse{
				{QuestionID: "q1", Answer: 5},
			},
		},
		{
			name: "extreme one-sided answers",
			questions: []model.ValueQuestion{
				likertQuestion("q1", model.ObjectiveAccuracy, 2.0),
				likertQuestion("q2", model.ObjectiveAccuracy, 2.0),
				likertQuestion("q3", model.ObjectiveAccuracy, 2.0),
				binaryQuestion("q4", model.ObjectiveAccuracy, 2.0),
			},
			responses: []model.ValueResponse{
				{QuestionID: "q1", Answer: 5},
				{QuestionID: "q2", Answer: 5},
				{QuestionID: "q3", Answer: 5},
				{QuestionID: "q4", Answer: 1},
			},
		},
		{
			name: "mixed objectives",
			questions: []model.ValueQuestion{
				likertQuestion("q1", model.ObjectiveAccuracy, 1.2),
				likertQuestion("q2", model.ObjectiveFairness, 0.8),
				likertQuestion("q3", model.ObjectiveRobustness, 1.5),
				binaryQuestion("q4", model.ObjectiveFairness, 1.0),
			},
			responses: []model.ValueResponse{
				{QuestionID: "q1", Answer: 1},
				{QuestionID: "q2", Answer: 4},
				{QuestionID: "q3", Answer: 5},
				{QuestionID: "q4", Answer: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := InferWeights(tt.questions, tt.responses)
			if w.Sum() != 100 {
				t.Errorf("weights sum to %d, want 100 (%+v)", w.Sum(), w)
			}
			for _, v := range []int{w.Accuracy, w.Fairness, w.Robustness} {
				if v < minObjectiveWeight {
					t.Errorf("objective below floor: %+v", w)
				}
			}
		})
	}
}

func TestInferWeightsBaseline(t *testing.T) {
	w := InferWeights(nil, nil)
	want := model.DefaultWeights()
	if w != want {
		t.Fatalf("baseline weights = %+v, want %+v", w, want)
	}
}

func TestInferWeightsDirection(t *testing.T) {
	questions := []model.ValueQuestion{
		likertQuestion("q1", model.ObjectiveFairness, 1.0),
	}
	responses := []model.ValueResponse{
		{QuestionID: "q1", Answer: 5},
	}

	w := InferWeights(questions, responses)
	base := model.DefaultWeights()
	if w.Fairness <= base.Fairness {
		t.Errorf("strong agreement on a fairness question did not raise fairness: %+v", w)
	}
	if w.Accuracy >= base.Accuracy {
		t.Errorf("fairness push did not pull accuracy down: %+v", w)
	}
}

func TestInferWeightsSkipsUnanswered(t *testing.T) {
	questions := []model.ValueQuestion{
		likertQuestion("q1", model.ObjectiveFairness, 1.0),
		likertQuestion("q2", model.ObjectiveAccuracy, 1.0),
	}
	// Only q1 is answered, and neutrally: weights must stay at baseline.
	responses := []model.ValueResponse{
		{QuestionID: "q1", Answer: 3},
	}

	w := InferWeights(questions, responses)
	if w != model.DefaultWeights() {
		t.Fatalf("neutral answer plus unanswered question moved weights: %+v", w)
	}
}

func TestInferWeightsClampsOutOfRangeAnswer(t *testing.T) {
	questions := []model.ValueQuestion{
		likertQuestion("q1", model.ObjectiveAccuracy, 1.0),
	}
	high := InferWeights(questions, []model.ValueResponse{{QuestionID: "q1", Answer: 9}})
	max := InferWeights(questions, []model.ValueResponse{{QuestionID: "q1", Answer: 5}})
	if high != max {
		t.Fatalf("answer above scale not clamped: %+v vs %+v", high, max)
	}
}
