package models

import "time"

// Request types

type CreatePollRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

type SubmitVoteRequest struct {
	OptionID   string `json:"optionId"`
	VoterToken string `json:"voterToken"`
}

// Response types

type CreatePollResponse struct {
	Message string `json:"message"`
	PollID  string `json:"pollId"`
}

type SubmitVoteResponse struct {
	Message string   `json:"message"`
	Options []Option `json:"options"`
}

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Option is one selectable choice within a poll. Votes is the running tally;
// it must always equal the number of committed vote rows referencing the
// option.
type Option struct {
	ID          string `json:"id"`
	PollID      string `json:"poll_id"`
	Text        string `json:"text"`
	OptionOrder int    `json:"option_order"`
	Votes       int    `json:"votes"`
}

type PollWithOptions struct {
	Poll    Poll     `json:"poll"`
	Options []Option `json:"options"`
}

type Vote struct {
	ID         string    `json:"id"`
	PollID     string    `json:"poll_id"`
	OptionID   string    `json:"option_id"`
	VoterIP    *string   `json:"-"` // Never expose in JSON
	VoterToken string    `json:"-"` // Never expose in JSON
	CreatedAt  time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
