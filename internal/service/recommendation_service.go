package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"equisim/internal/cache"
	"equisim/internal/engine"
	"equisim/internal/model"
	"equisim/internal/repository"
)

// WebSocket message types emitted by recommendation runs
const (
	MsgSimulationCompleted = "simulation_completed"
	MsgInsightsUpdated     = "insights_updated"
)

// DefaultRunsPerPoint is used when the caller does not ask for a depth.
const DefaultRunsPerPoint = 200

// RecommendationService orchestrates full engine runs: weights in,
// allocation simulation plus model configuration out. Personal and
// community runs share the same pure functions and differ only in the
// weights and seed fed in.
type RecommendationService struct {
	sessionRepo   repository.SessionRepo
	responseRepo  repository.ResponseRepo
	recRepo       repository.RecommendationRepo
	decisionCache cache.DecisionCache
	insightCache  cache.InsightCache
	preferenceSvc *PreferenceService
	broadcaster   Broadcaster
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	sessionRepo repository.SessionRepo,
	responseRepo repository.ResponseRepo,
	recRepo repository.RecommendationRepo,
	decisionCache cache.DecisionCache,
	insightCache cache.InsightCache,
	preferenceSvc *PreferenceService,
	broadcaster Broadcaster,
) *RecommendationService {
	return &RecommendationService{
		sessionRepo:   sessionRepo,
		responseRepo:  responseRepo,
		recRepo:       recRepo,
		decisionCache: decisionCache,
		insightCache:  insightCache,
		preferenceSvc: preferenceSvc,
		broadcaster:   broadcaster,
	}
}

// RunForParticipant runs the engine on one participant's inferred weights.
func (s *RecommendationService) RunForParticipant(ctx context.Context, sessionCode, participantID string, runsPerPoint int) (*model.Recommendation, error) {
	weights, err := s.preferenceSvc.InferParticipantWeights(ctx, sessionCode, participantID)
	if err != nil {
		return nil, err
	}

	seed := sessionCode + ":" + participantID
	return s.run(ctx, sessionCode, participantID, weights, runsPerPoint, seed)
}

// RunForCommunity aggregates the session's responses and runs the engine on
// the community weights under the shared "community" seed.
func (s *RecommendationService) RunForCommunity(ctx context.Context, sessionCode string, runsPerPoint int) (*model.Recommendation, error) {
	weights, _, err := s.CommunityView(ctx, sessionCode)
	if err != nil {
		return nil, err
	}

	rec, err := s.run(ctx, sessionCode, "", weights, runsPerPoint, "community")
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAllParticipants(sessionCode, MsgInsightsUpdated, rec.Weights)
	}
	return rec, nil
}

// CommunityView returns the session's aggregate weights and insights,
// recomputing and caching when the cache is cold.
func (s *RecommendationService) CommunityView(ctx context.Context, sessionCode string) (model.ObjectiveWeights, *model.CommunityInsights, error) {
	if weights, insights, err := s.insightCache.Get(ctx, sessionCode); err == nil && insights != nil {
		return *weights, insights, nil
	}

	responses, err := s.responseRepo.GetSurveyResponses(ctx, sessionCode)
	if err != nil {
		return model.ObjectiveWeights{}, nil, fmt.Errorf("failed to load responses: %w", err)
	}

	weights, insights := engine.AggregateCommunity(responses)
	if err := s.insightCache.Set(ctx, sessionCode, weights, insights); err != nil {
		log.Printf("warning: failed to cache insights for %s: %v", sessionCode, err)
	}
	return weights, &insights, nil
}

// History returns every stored run for the session, newest first.
func (s *RecommendationService) History(ctx context.Context, sessionCode string) ([]*model.Recommendation, error) {
	return s.recRepo.GetBySession(ctx, sessionCode)
}

// GetLatest returns the newest stored run, trying the cache first.
func (s *RecommendationService) GetLatest(ctx context.Context, sessionCode, participantID string) (*model.Recommendation, error) {
	if rec, err := s.decisionCache.Get(ctx, sessionCode, participantID); err == nil && rec != nil {
		return rec, nil
	}
	return s.recRepo.GetLatest(ctx, sessionCode, participantID)
}

func (s *RecommendationService) run(ctx context.Context, sessionCode, participantID string, weights model.ObjectiveWeights, runsPerPoint int, seed string) (*model.Recommendation, error) {
	if runsPerPoint <= 0 {
		runsPerPoint = DefaultRunsPerPoint
	}

	session, err := s.sessionRepo.GetByCode(ctx, sessionCode)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session not found")
	}

	profiles := engine.BuildProfiles(session.Asymmetry)

	simulation, err := engine.Simulate(weights, profiles, runsPerPoint, seed)
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	configuration := engine.SelectModel(weights, session.DomainHint, seed)

	rec := &model.Recommendation{
		ID:            uuid.New().String(),
		SessionCode:   sessionCode,
		ParticipantID: participantID,
		Weights:       weights,
		Simulation:    *simulation,
		Model:         configuration,
		Seed:          seed,
	}

	if err := s.recRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store recommendation: %w", err)
	}
	if err := s.decisionCache.Set(ctx, rec); err != nil {
		log.Printf("warning: failed to cache recommendation %s: %v", rec.ID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToHost(sessionCode, MsgSimulationCompleted, rec)
	}

	return rec, nil
}
