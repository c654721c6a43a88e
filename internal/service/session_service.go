package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"

	"github.com/google/uuid"

	"equisim/internal/cache"
	"equisim/internal/model"
	"equisim/internal/repository"
)

// SessionService handles deliberation session lifecycle
type SessionService struct {
	sessionRepo   repository.SessionRepo
	sessionCache  cache.SessionCache
	preferenceSvc *PreferenceService
	authSvc       *AuthService
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepo,
	sessionCache cache.SessionCache,
	preferenceSvc *PreferenceService,
	authSvc *AuthService,
) *SessionService {
	return &SessionService{
		sessionRepo:   sessionRepo,
		sessionCache:  sessionCache,
		preferenceSvc: preferenceSvc,
		authSvc:       authSvc,
	}
}

// CreateSession opens a session and generates its immutable question set
func (s *SessionService) CreateSession(ctx context.Context, hostID, title string, hint model.DomainHint, asym *model.GroupAsymmetry) (*model.Session, error) {
	if hint == "" {
		hint = model.DomainGeneral
	}

	code, err := s.generateSessionCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session code: %w", err)
	}

	session := &model.Session{
		Code:       code,
		HostID:     hostID,
		Title:      title,
		DomainHint: hint,
		Asymmetry:  asym,
		Status:     model.SessionOpen,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Questions are generated exactly once, at session creation.
	if err := s.preferenceSvc.GenerateQuestions(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	if err := s.sessionCache.Set(ctx, session); err != nil {
		// Lookups fall back to Mongo on a cold cache.
		log.Printf("warning: failed to cache session %s: %v", session.Code, err)
	}

	return session, nil
}

// GetSession fetches a session, preferring the cache
func (s *SessionService) GetSession(ctx context.Context, code string) (*model.Session, error) {
	if session, err := s.sessionCache.Get(ctx, code); err == nil && session != nil {
		return session, nil
	}

	session, err := s.sessionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if session != nil {
		s.sessionCache.Set(ctx, session)
	}
	return session, nil
}

// ListSessions returns the host's sessions
func (s *SessionService) ListSessions(ctx context.Context, hostID string) ([]*model.Session, error) {
	return s.sessionRepo.GetByHostID(ctx, hostID)
}

// Join registers a participant and issues their token
func (s *SessionService) Join(ctx context.Context, code, nickname string) (*model.JoinResponse, error) {
	session, err := s.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session not found")
	}
	if session.Status != model.SessionOpen {
		return nil, fmt.Errorf("session is closed")
	}

	participant := &model.Participant{
		ID:          "p_" + uuid.New().String()[:8],
		SessionCode: code,
		Nickname:    nickname,
	}
	if err := s.sessionRepo.AddParticipant(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	s.sessionCache.IncrParticipants(ctx, code)

	token, err := s.authSvc.IssueParticipantToken(participant.ID, code)
	if err != nil {
		return nil, err
	}

	return &model.JoinResponse{
		Token:         token,
		ParticipantID: participant.ID,
		SessionCode:   code,
	}, nil
}

// Participants returns the session's joined participants with a live
// count from the cache counter. The counter can run ahead of the list
// briefly; the list is authoritative.
func (s *SessionService) Participants(ctx context.Context, code string) ([]*model.Participant, int64, error) {
	participants, err := s.sessionRepo.GetParticipants(ctx, code)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.sessionCache.ParticipantCount(ctx, code)
	if err != nil || count < int64(len(participants)) {
		count = int64(len(participants))
	}
	return participants, count, nil
}

// Close marks a session closed; no further joins or submissions
func (s *SessionService) Close(ctx context.Context, code string) error {
	if err := s.sessionRepo.SetStatus(ctx, code, model.SessionClosed); err != nil {
		return err
	}
	return s.sessionCache.Delete(ctx, code)
}

// generateSessionCode returns a 6-character code not already in use
func (s *SessionService) generateSessionCode(ctx context.Context) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	for attempt := 0; attempt < 10; attempt++ {
		buf := make([]byte, 6)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for i := range buf {
			buf[i] = alphabet[int(buf[i])%len(alphabet)]
		}
		code := string(buf)

		existing, err := s.sessionRepo.GetByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique session code")
}
