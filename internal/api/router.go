package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/diceduel/diceduel/internal/api/handler"
	"github.com/diceduel/diceduel/internal/api/middleware"
	"github.com/diceduel/diceduel/internal/broadcast"
	"github.com/diceduel/diceduel/internal/services/auth"
	"github.com/diceduel/diceduel/internal/services/game"
	"github.com/diceduel/diceduel/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	GameCoordinator *game.Coordinator
	StatsService    *stats.Service
	Hub             *broadcast.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.StatsService)
	gameHandler := handler.NewGameHandler(cfg.GameCoordinator, cfg.StatsService)
	wsHandler := handler.NewWSHandler(cfg.Hub)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", authHandler.Verify).Methods(http.MethodPost)

	// Player routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/game/start", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/game/roll", gameHandler.Roll).Methods(http.MethodPost)
	api.HandleFunc("/game/finish", gameHandler.Finish).Methods(http.MethodPost)
	api.HandleFunc("/games/recent", gameHandler.Recent).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Websocket endpoint on the root router; the upgrade needs the raw
	// http.ResponseWriter, so no wrapping middleware applies here
	r.HandleFunc("/ws", wsHandler.Serve).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
