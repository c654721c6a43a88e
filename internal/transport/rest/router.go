package rest

import (
	"equisim/internal/service"
	"equisim/internal/transport/rest/handler"
	"equisim/internal/transport/rest/middleware"
	"equisim/internal/transport/ws"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService           *service.AuthService
	SessionService        *service.SessionService
	PreferenceService     *service.PreferenceService
	RecommendationService *service.RecommendationService
	WSHub                 *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	preferenceHandler := handler.NewPreferenceHandler(c.PreferenceService)
	recommendationHandler := handler.NewRecommendationHandler(c.RecommendationService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{code}/join", sessionHandler.Join).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/sessions/{code}/host", wsHandler.HostWS).Methods("GET")
	v1.HandleFunc("/ws/sessions/{code}/participant", wsHandler.ParticipantWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/sessions", sessionHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/sessions/{code}", sessionHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/sessions/{code}/close", sessionHandler.Close).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/sessions/{code}/participants", sessionHandler.Participants).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/sessions/{code}/recommendations/history", recommendationHandler.History).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/sessions/{code}/recommendations/community", recommendationHandler.RunCommunity).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/sessions/{code}/recommendations/community/latest", recommendationHandler.GetLatestCommunity).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/sessions/{code}/insights", recommendationHandler.GetInsights).Methods("GET", "OPTIONS")

	// Participant routes (require participant auth)
	participantRoutes := v1.NewRoute().Subrouter()
	participantRoutes.Use(authMW.RequireParticipant)

	participantRoutes.HandleFunc("/sessions/{code}/questions", preferenceHandler.GetQuestions).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{code}/answers", preferenceHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{code}/answers", preferenceHandler.GetAnswers).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{code}/weights", preferenceHandler.GetWeights).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{code}/recommendations", recommendationHandler.RunParticipant).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/sessions/{code}/recommendations/latest", recommendationHandler.GetLatestParticipant).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
