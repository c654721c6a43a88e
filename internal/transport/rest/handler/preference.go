package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"equisim/internal/service"
	"equisim/internal/transport/rest/middleware"
)

// PreferenceHandler handles value-question and answer endpoints
type PreferenceHandler struct {
	preferenceSvc *service.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferenceSvc *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceSvc: preferenceSvc}
}

// SubmitAnswerRequest is the request body for answering a value question
type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Answer     int    `json:"answer"`
}

// GetQuestions handles GET /v1/sessions/{code}/questions
func (h *PreferenceHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	questions, err := h.preferenceSvc.GetQuestions(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// SubmitAnswer handles POST /v1/sessions/{code}/answers
func (h *PreferenceHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	participantID := middleware.GetParticipantID(r.Context())
	if participantID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if middleware.GetSessionCode(r.Context()) != code {
		writeError(w, http.StatusForbidden, "token not valid for this session")
		return
	}

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	weights, err := h.preferenceSvc.SubmitAnswer(r.Context(), code, participantID, req.QuestionID, req.Answer)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"weights": weights})
}

// GetWeights handles GET /v1/sessions/{code}/weights
func (h *PreferenceHandler) GetWeights(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	participantID := middleware.GetParticipantID(r.Context())
	if participantID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	weights, err := h.preferenceSvc.InferParticipantWeights(r.Context(), code, participantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"weights": weights})
}

// GetAnswers handles GET /v1/sessions/{code}/answers
func (h *PreferenceHandler) GetAnswers(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	participantID := middleware.GetParticipantID(r.Context())
	if participantID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	answers, err := h.preferenceSvc.DisplayAnswers(r.Context(), code, participantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
}
