// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/handlers"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/poll"
	"github.com/danielhkuo/livepoll/realtime"
)

func NewRouter(svc *poll.Service, hub *realtime.Hub, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(svc, cfg)
	liveHandler := handlers.NewLiveHandler(svc, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll operations
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("POST /api/polls/{id}/vote", middleware.WithLogging(pollHandler.SubmitVote))

	// Live tally updates (websocket; logging middleware would hold the
	// connection's log entry open for its whole lifetime, so it is skipped)
	mux.HandleFunc("GET /api/polls/{id}/live", liveHandler.Watch)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livepoll API v1"))
	})

	return middleware.CORS(mux)
}
