// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitss/sondaj-live/board"
	"github.com/fitss/sondaj-live/cliparse"
	"github.com/fitss/sondaj-live/db"
	"github.com/fitss/sondaj-live/handlers"
	"github.com/fitss/sondaj-live/live"
	"github.com/fitss/sondaj-live/middleware"
)

const apiPrefix = "/api/v1"

// NewRouter returns the full handler tree, CORS included
func NewRouter(conn *sql.DB, dialect db.Dialect, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserQuestionHandler(board.New(conn, dialect))
	liveHandler := handlers.NewLiveQuestionHandler(live.New(conn, dialect))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// User-question board
	mux.HandleFunc("GET "+apiPrefix+"/user-questions", middleware.WithLogging(userHandler.List))
	mux.HandleFunc("POST "+apiPrefix+"/user-questions", middleware.WithLogging(userHandler.Submit))
	mux.HandleFunc("POST "+apiPrefix+"/user-questions/{id}/vote", middleware.WithLogging(userHandler.Vote))
	mux.HandleFunc("DELETE "+apiPrefix+"/user-questions/{id}", middleware.WithLogging(userHandler.Delete))

	// Live-question session
	mux.HandleFunc("GET "+apiPrefix+"/live-question", middleware.WithLogging(liveHandler.Get))
	mux.HandleFunc("POST "+apiPrefix+"/live-question", middleware.WithLogging(liveHandler.Activate))
	mux.HandleFunc("POST "+apiPrefix+"/live-question/vote", middleware.WithLogging(liveHandler.Vote))
	mux.HandleFunc("GET "+apiPrefix+"/live-question/history", middleware.WithLogging(liveHandler.History))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Sondaj Live API v1"))
	})

	return middleware.CORS(cfg.AllowedOrigins, cfg.OriginRegex)(mux)
}
