package main

import (
	"context"
	"equisim/config"
	"equisim/internal/cache"
	"equisim/internal/repository"
	"equisim/internal/service"
	"equisim/internal/transport/rest"
	"equisim/internal/transport/ws"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	sessionRepo := repository.NewSessionRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	recRepo := repository.NewRecommendationRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	decisionCache := cache.NewDecisionCache(rdb)
	insightCache := cache.NewInsightCache(rdb)

	// Initialize services (wsHub implements service.Broadcaster)
	authSvc := service.NewAuthService()
	preferenceSvc := service.NewPreferenceService(questionRepo, responseRepo, insightCache, decisionCache, wsHub)
	sessionSvc := service.NewSessionService(sessionRepo, sessionCache, preferenceSvc, authSvc)
	recommendationSvc := service.NewRecommendationService(sessionRepo, responseRepo, recRepo, decisionCache, insightCache, preferenceSvc, wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:           authSvc,
		SessionService:        sessionSvc,
		PreferenceService:     preferenceSvc,
		RecommendationService: recommendationSvc,
		WSHub:                 wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/sessions")
		log.Println("  POST /v1/sessions/{code}/join")
		log.Println("  GET  /v1/sessions/{code}/questions")
		log.Println("  POST /v1/sessions/{code}/answers")
		log.Println("  POST /v1/sessions/{code}/recommendations")
		log.Println("  POST /v1/sessions/{code}/recommendations/community")
		log.Println("  GET  /v1/sessions/{code}/insights")
		log.Println("  WS  /v1/ws/sessions/{code}/host")
		log.Println("  WS  /v1/ws/sessions/{code}/participant")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
