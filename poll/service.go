// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"log/slog"

	"github.com/danielhkuo/livepoll/identity"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// Broadcaster pushes an updated tally to every live subscriber of a poll.
type Broadcaster interface {
	Publish(pollID string, options []models.Option)
}

// Service is the thin orchestration the request layer talks to: it composes
// the store and the broadcaster and owns the commit-then-notify ordering.
type Service struct {
	store       *store.Store
	broadcaster Broadcaster
}

func NewService(st *store.Store, b Broadcaster) *Service {
	return &Service{store: st, broadcaster: b}
}

// Create validates and persists a new poll. No broadcast is involved.
func (s *Service) Create(title string, optionTexts []string) (string, error) {
	pollID, err := s.store.CreatePoll(title, optionTexts)
	if err != nil {
		return "", err
	}

	slog.Info("poll created", "poll_id", pollID, "options", len(optionTexts))
	return pollID, nil
}

// Get returns a poll with its current tally. New subscribers call this
// before joining the live room so they never miss the state preceding their
// first update.
func (s *Service) Get(id string) (models.PollWithOptions, error) {
	return s.store.GetPoll(id)
}

// SubmitVote commits a vote and, only after the commit is durable, publishes
// the returned tally to the poll's subscribers. The two steps are sequential
// and non-transactional: a broadcast problem never rolls back a vote, and a
// failed vote publishes nothing.
func (s *Service) SubmitVote(pollID, optionID string, voter identity.Voter) ([]models.Option, error) {
	options, err := s.store.RecordVote(pollID, optionID, voter)
	if err != nil {
		return nil, err
	}

	slog.Info("vote recorded", "poll_id", pollID, "option_id", optionID)
	s.broadcaster.Publish(pollID, options)

	return options, nil
}
