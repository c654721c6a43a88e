package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"equisim/internal/cache"
	"equisim/internal/engine"
	"equisim/internal/model"
	"equisim/internal/repository"
)

// MsgWeightsUpdated notifies a participant their inferred weights changed.
const MsgWeightsUpdated = "weights_updated"

// questionTemplate is one entry of the fixed elicitation catalog.
type questionTemplate struct {
	questionType   model.QuestionType
	prompt         string
	mapsTo         model.Objective
	groupAttribute string
}

// questionCatalog is the pool every session's question set is drawn from.
// Multipliers are synthesized per session; prompts and mappings are fixed.
var questionCatalog = []questionTemplate{
	{model.QuestionTypeLikert, "The system should make as few mistakes as possible, even if some groups are affected more than others.", model.ObjectiveAccuracy, ""},
	{model.QuestionTypeLikert, "Outcomes should be as even as possible across population groups, even at some cost to overall performance.", model.ObjectiveFairness, "group"},
	{model.QuestionTypeLikert, "The system should behave predictably when conditions shift from what it was built on.", model.ObjectiveRobustness, ""},
	{model.QuestionTypeBinary, "If two groups get different error rates, the system should be corrected even if total errors go up.", model.ObjectiveFairness, "group"},
	{model.QuestionTypeLikert, "Raw decision quality matters more to me than how decisions are distributed.", model.ObjectiveAccuracy, ""},
	{model.QuestionTypeBinary, "A system that degrades unpredictably under unusual inputs is unacceptable, whatever its average performance.", model.ObjectiveRobustness, ""},
	{model.QuestionTypeLikert, "Historically disadvantaged groups deserve extra consideration in how resources are allocated.", model.ObjectiveFairness, "group"},
	{model.QuestionTypeBinary, "I would trade a small amount of overall performance for more consistent behavior over time.", model.ObjectiveRobustness, ""},
}

// PreferenceService owns the value-question bank and weight inference
type PreferenceService struct {
	questionRepo  repository.QuestionRepo
	responseRepo  repository.ResponseRepo
	insightCache  cache.InsightCache
	decisionCache cache.DecisionCache
	broadcaster   Broadcaster
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	insightCache cache.InsightCache,
	decisionCache cache.DecisionCache,
	broadcaster Broadcaster,
) *PreferenceService {
	return &PreferenceService{
		questionRepo:  questionRepo,
		responseRepo:  responseRepo,
		insightCache:  insightCache,
		decisionCache: decisionCache,
		broadcaster:   broadcaster,
	}
}

// GenerateQuestions materializes the session's immutable question set from
// the catalog. Multipliers come from a stream seeded on the session code, so
// recreating a session with the same code yields the same questions.
func (s *PreferenceService) GenerateQuestions(ctx context.Context, session *model.Session) error {
	stream := engine.NewStream(session.Code + "|questions")

	questions := make([]model.ValueQuestion, 0, len(questionCatalog))
	for i, tmpl := range questionCatalog {
		questions = append(questions, model.ValueQuestion{
			ID:                    uuid.New().String(),
			SessionCode:           session.Code,
			QuestionType:          tmpl.questionType,
			Prompt:                tmpl.prompt,
			MapsTo:                tmpl.mapsTo,
			WeightMultiplier:      0.8 + stream.Next()*0.8, // 0.8-1.6
			RelatedGroupAttribute: tmpl.groupAttribute,
			SortOrder:             i,
		})
	}

	return s.questionRepo.CreateMany(ctx, questions)
}

// GetQuestions returns the session's question set in display order
func (s *PreferenceService) GetQuestions(ctx context.Context, sessionCode string) ([]model.ValueQuestion, error) {
	return s.questionRepo.GetBySession(ctx, sessionCode)
}

// SubmitAnswer records one answer and refreshes the participant's survey
// record with freshly inferred weights. Community insights for the session
// are invalidated since the response set changed.
func (s *PreferenceService) SubmitAnswer(ctx context.Context, sessionCode, participantID string, questionID string, answer int) (model.ObjectiveWeights, error) {
	response := &model.ValueResponse{
		QuestionID:    questionID,
		SessionCode:   sessionCode,
		ParticipantID: participantID,
		Answer:        answer,
	}
	if err := s.responseRepo.UpsertValueResponse(ctx, response); err != nil {
		return model.ObjectiveWeights{}, fmt.Errorf("failed to record answer: %w", err)
	}

	weights, err := s.InferParticipantWeights(ctx, sessionCode, participantID)
	if err != nil {
		return model.ObjectiveWeights{}, err
	}

	survey := &model.SurveyResponse{
		SessionCode:   sessionCode,
		ParticipantID: participantID,
		// The legacy slider position follows from the inferred split.
		AccuracyVsFairness: scalarLean(weights),
		Weights:            &weights,
	}
	if err := s.responseRepo.UpsertSurveyResponse(ctx, survey); err != nil {
		return model.ObjectiveWeights{}, fmt.Errorf("failed to update survey record: %w", err)
	}

	// Cached aggregates and runs are stale once the response set changes.
	s.insightCache.Invalidate(ctx, sessionCode)
	s.decisionCache.Invalidate(ctx, sessionCode, participantID)
	s.decisionCache.Invalidate(ctx, sessionCode, "")

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToParticipant(sessionCode, participantID, MsgWeightsUpdated, weights)
	}

	return weights, nil
}

// InferParticipantWeights runs inference over everything the participant
// has answered so far.
func (s *PreferenceService) InferParticipantWeights(ctx context.Context, sessionCode, participantID string) (model.ObjectiveWeights, error) {
	questions, err := s.questionRepo.GetBySession(ctx, sessionCode)
	if err != nil {
		return model.ObjectiveWeights{}, err
	}
	responses, err := s.responseRepo.GetValueResponses(ctx, sessionCode, participantID)
	if err != nil {
		return model.ObjectiveWeights{}, err
	}
	return engine.InferWeights(questions, responses), nil
}

// DisplayAnswers returns the participant's answers keyed by question,
// defaulting unanswered likert questions to neutral for display. Inference
// never sees these defaults.
func (s *PreferenceService) DisplayAnswers(ctx context.Context, sessionCode, participantID string) (map[string]int, error) {
	questions, err := s.questionRepo.GetBySession(ctx, sessionCode)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.GetValueResponses(ctx, sessionCode, participantID)
	if err != nil {
		return nil, err
	}

	answered := make(map[string]int, len(responses))
	for _, r := range responses {
		answered[r.QuestionID] = r.Answer
	}

	display := make(map[string]int, len(questions))
	for _, q := range questions {
		if answer, ok := answered[q.ID]; ok {
			display[q.ID] = answer
			continue
		}
		if q.QuestionType == model.QuestionTypeLikert {
			display[q.ID] = model.NeutralAnswer
		} else {
			display[q.ID] = 0
		}
	}
	return display, nil
}

// scalarLean projects weights onto the legacy 0-100 efficiency-vs-fairness
// axis: the accuracy share of the accuracy+fairness mass.
func scalarLean(w model.ObjectiveWeights) float64 {
	mass := w.Accuracy + w.Fairness
	if mass == 0 {
		return 50
	}
	return float64(w.Accuracy) / float64(mass) * 100
}
