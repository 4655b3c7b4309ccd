// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/identity"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/poll"
	"github.com/danielhkuo/livepoll/store"
)

type PollHandler struct {
	svc *poll.Service
	cfg cliparse.Config
}

func NewPollHandler(svc *poll.Service, cfg cliparse.Config) *PollHandler {
	return &PollHandler{svc: svc, cfg: cfg}
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pollID, err := h.svc.Create(req.Title, req.Options)
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "A poll requires a title and at least two options.")
			return
		}
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Unable to create poll at this time.")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		Message: "Poll created successfully.",
		PollID:  pollID,
	})
}

// GetPoll handles GET /api/polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	result, err := h.svc.Get(pollID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found.")
			return
		}
		slog.Error("failed to fetch poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Unable to fetch poll.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// SubmitVote handles POST /api/polls/{id}/vote
func (h *PollHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionID == "" || req.VoterToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid vote request.")
		return
	}

	voter := h.resolveVoter(r, req.VoterToken)

	options, err := h.svc.SubmitVote(pollID, req.OptionID, voter)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll does not exist.")
		case errors.Is(err, store.ErrAlreadyVoted):
			middleware.ErrorResponse(w, http.StatusForbidden, "You have already voted in this poll.")
		case errors.Is(err, store.ErrInvalidOption):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Selected option is invalid.")
		default:
			slog.Error("failed to process vote", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Unable to process vote.")
		}
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Message: "Vote recorded successfully.",
		Options: options,
	})
}

// resolveVoter builds the duplicate-check fingerprint for a request. The
// origin address is hashed before it goes anywhere near storage; when no
// address can be determined the fingerprint carries only the token.
func (h *PollHandler) resolveVoter(r *http.Request, token string) identity.Voter {
	addr := identity.ClientAddress(
		r.Header.Get("X-Forwarded-For"),
		r.Header.Get("X-Real-IP"),
		r.RemoteAddr,
	)
	if addr != "" {
		addr = auth.HashIP(addr, h.cfg.IPHashSalt)
	}
	return identity.Resolve(addr, token)
}
