package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"equisim/internal/service"
	"equisim/internal/transport/rest/middleware"
)

// RecommendationHandler handles engine-run and insight endpoints
type RecommendationHandler struct {
	recommendationSvc *service.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationSvc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationSvc: recommendationSvc}
}

// RunRequest optionally overrides the simulation depth
type RunRequest struct {
	RunsPerPoint int `json:"runsPerPoint"`
}

// RunParticipant handles POST /v1/sessions/{code}/recommendations
func (h *RecommendationHandler) RunParticipant(w http.ResponseWriter, r *http.Request) {
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

	var req RunRequest
	if r.Body != nil {
		// Body is optional; a missing or empty body means default depth.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	rec, err := h.recommendationSvc.RunForParticipant(r.Context(), code, participantID, req.RunsPerPoint)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// RunCommunity handles POST /v1/sessions/{code}/recommendations/community
func (h *RecommendationHandler) RunCommunity(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req RunRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	rec, err := h.recommendationSvc.RunForCommunity(r.Context(), code, req.RunsPerPoint)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GetLatestParticipant handles GET /v1/sessions/{code}/recommendations/latest
func (h *RecommendationHandler) GetLatestParticipant(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	participantID := middleware.GetParticipantID(r.Context())
	if participantID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.recommendationSvc.GetLatest(r.Context(), code, participantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no recommendation yet")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GetLatestCommunity handles GET /v1/sessions/{code}/recommendations/community/latest
func (h *RecommendationHandler) GetLatestCommunity(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	rec, err := h.recommendationSvc.GetLatest(r.Context(), code, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no community recommendation yet")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// History handles GET /v1/sessions/{code}/recommendations/history
func (h *RecommendationHandler) History(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	recs, err := h.recommendationSvc.History(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"recommendations": recs})
}

// GetInsights handles GET /v1/sessions/{code}/insights
func (h *RecommendationHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	weights, insights, err := h.recommendationSvc.CommunityView(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weights":  weights,
		"insights": insights,
	})
}
