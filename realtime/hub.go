// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/danielhkuo/livepoll/models"
)

// Message types pushed to subscribers.
const (
	MessageVoteUpdate = "voteUpdate"
)

// TallyUpdate is the envelope delivered to every subscriber of a poll after
// a vote commits.
type TallyUpdate struct {
	Type    string          `json:"type"`
	PollID  string          `json:"poll_id"`
	Options []models.Option `json:"options"`
}

// Hub maintains the per-poll subscriber rooms and fans tally updates out to
// them. Membership changes arrive from arbitrary connection goroutines;
// publishes see a consistent snapshot of a room via the lock. Delivery is
// fire-and-forget: a subscriber that cannot keep up or is mid-disconnect is
// dropped, never waited on.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

// Subscribe adds a client to a poll's room. Idempotent; a client may be in
// several rooms at once. Subscribers receive only updates published after
// they join - there is no replay, so callers fetch current state first.
func (h *Hub) Subscribe(pollID string, c *Client) {
	if pollID == "" {
		return
	}

	h.mu.Lock()
	room, ok := h.rooms[pollID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[pollID] = room
	}
	room[c] = true
	h.mu.Unlock()

	slog.Info("subscriber joined", "poll_id", pollID, "connection_id", c.id)
}

// Unsubscribe removes a client from every room it belongs to and drops empty
// rooms. Called on disconnect; safe to call more than once.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	for pollID, room := range h.rooms {
		if room[c] {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, pollID)
			}
		}
	}
	h.mu.Unlock()

	c.shutdown()
}

// Publish delivers the updated tally to every current subscriber of the
// poll. Per subscriber, updates arrive in the order they were published;
// the buffered send channel is drained by a single writer goroutine.
func (h *Hub) Publish(pollID string, options []models.Option) {
	payload, err := json.Marshal(TallyUpdate{
		Type:    MessageVoteUpdate,
		PollID:  pollID,
		Options: options,
	})
	if err != nil {
		slog.Error("failed to encode tally update", "error", err, "poll_id", pollID)
		return
	}

	h.mu.RLock()
	subscribers := make([]*Client, 0, len(h.rooms[pollID]))
	for c := range h.rooms[pollID] {
		subscribers = append(subscribers, c)
	}
	h.mu.RUnlock()

	for _, c := range subscribers {
		if !c.trySend(payload) {
			// Slow or dead connection; drop it rather than block the
			// publish path.
			slog.Warn("dropping slow subscriber", "poll_id", pollID, "connection_id", c.id)
			h.Unsubscribe(c)
		}
	}
}

// RoomSize returns the number of current subscribers for a poll.
func (h *Hub) RoomSize(pollID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[pollID])
}
