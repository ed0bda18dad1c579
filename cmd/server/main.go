// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/spadearena/spades/internal/auth"
	"github.com/spadearena/spades/internal/cache"
	"github.com/spadearena/spades/internal/database"
	"github.com/spadearena/spades/internal/handlers"
	"github.com/spadearena/spades/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := auth.Init(); err != nil {
		log.Fatalf("init auth keys: %v", err)
	}

	// Leaderboard storage is optional: without it the match endpoints
	// still work and /leaderboard returns 503.
	if os.Getenv("DATABASE_URL") != "" || os.Getenv("PG_HOST") != "" {
		ctx := context.Background()
		if err := database.Connect(ctx); err != nil {
			log.Fatalf("connect database: %v", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
	} else {
		logger.Warn("no database configured, leaderboard disabled")
	}

	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			logger.Warnf("redis unavailable, standings cache disabled: %v", err)
		}
	}

	srv := handlers.NewServer(logger)

	mux := http.NewServeMux()

	// match endpoints
	mux.Handle("/match/create", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.CreateMatchHandler(srv),
	)))
	mux.Handle("/match/list", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.ListMatchesHandler(srv),
	)))

	// spectator websocket
	mux.Handle("/match/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.MatchWSHandler(logger, srv),
	)))

	// leaderboard endpoints
	mux.Handle("/leaderboard", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.LeaderboardHandler(srv),
	)))
	mux.Handle("/leaderboard/h2h", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.HeadToHeadHandler(srv),
	)))

	mux.Handle("/agents", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.AgentsHandler(),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
