// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Live Poll API.

# Handlers

  - PollHandler: poll creation, retrieval, and vote submission
  - LiveHandler: websocket upgrade for live tally watching

Handlers delegate to the poll service facade and only translate its typed
errors into HTTP statuses:

	store.ErrInvalidInput  → 400
	store.ErrNotFound      → 404
	store.ErrInvalidOption → 400
	store.ErrAlreadyVoted  → 403
	anything else          → 500

# Voting Flow

	POST /api/polls            → CreatePoll
	GET  /api/polls/{id}       → GetPoll (also the catch-up read for watchers)
	POST /api/polls/{id}/vote  → SubmitVote
	GET  /api/polls/{id}/live  → Watch (websocket)

A vote carries the client-held voterToken in the body; the origin address is
taken from the connection and hashed before storage.
*/
package handlers
