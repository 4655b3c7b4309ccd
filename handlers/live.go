// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/poll"
	"github.com/danielhkuo/livepoll/realtime"
	"github.com/danielhkuo/livepoll/store"
)

// LiveHandler upgrades watchers to websocket connections and subscribes
// them to a poll's tally updates.
type LiveHandler struct {
	svc *poll.Service
	hub *realtime.Hub

	upgrader websocket.Upgrader
}

func NewLiveHandler(svc *poll.Service, hub *realtime.Hub) *LiveHandler {
	return &LiveHandler{
		svc: svc,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Votes require no credentials, so watching a public poll
			// from any origin is fine.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Watch handles GET /api/polls/{id}/live
//
// The client is expected to have fetched the current tally over HTTP first;
// updates published before the upgrade completes are not replayed.
func (h *LiveHandler) Watch(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	if _, err := h.svc.Get(pollID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found.")
			return
		}
		slog.Error("failed to fetch poll for watch", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Unable to fetch poll.")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		slog.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	realtime.NewClient(h.hub, conn).Start(pollID)
}
