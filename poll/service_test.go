// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"sync"
	"testing"

	"github.com/danielhkuo/livepoll/identity"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/testutil"
)

// recordingBroadcaster captures publishes instead of fanning them out.
type recordingBroadcaster struct {
	mu        sync.Mutex
	published []publishCall
}

type publishCall struct {
	pollID  string
	options []models.Option
}

func (b *recordingBroadcaster) Publish(pollID string, options []models.Option) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, publishCall{pollID: pollID, options: options})
}

func (b *recordingBroadcaster) calls() []publishCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]publishCall(nil), b.published...)
}

func newTestService(t *testing.T) (*Service, *recordingBroadcaster) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	b := &recordingBroadcaster{}
	return NewService(store.New(conn), b), b
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)

	pollID, err := svc.Create("Favorite color?", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := svc.Get(pollID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.Poll.Title != "Favorite color?" {
		t.Errorf("Expected title to round-trip, got %q", result.Poll.Title)
	}
	if len(result.Options) != 2 {
		t.Errorf("Expected 2 options, got %d", len(result.Options))
	}
}

func TestCreateDoesNotPublish(t *testing.T) {
	svc, b := newTestService(t)

	if _, err := svc.Create("Favorite color?", []string{"Red", "Blue"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(b.calls()) != 0 {
		t.Errorf("Create must not broadcast, got %d publishes", len(b.calls()))
	}
}

// TestSubmitVotePublishesCommittedTally covers the broadcast scenario: a
// successful vote publishes exactly once, the published tally carries the
// new count, and an independent read returns the same numbers.
func TestSubmitVotePublishesCommittedTally(t *testing.T) {
	svc, b := newTestService(t)

	pollID, err := svc.Create("Favorite color?", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	result, err := svc.Get(pollID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	redID := result.Options[0].ID

	options, err := svc.SubmitVote(pollID, redID, identity.Resolve("addr-1", "token-1"))
	if err != nil {
		t.Fatalf("SubmitVote failed: %v", err)
	}

	calls := b.calls()
	if len(calls) != 1 {
		t.Fatalf("Expected exactly 1 publish per commit, got %d", len(calls))
	}
	if calls[0].pollID != pollID {
		t.Errorf("Published to wrong poll: %s", calls[0].pollID)
	}
	if calls[0].options[0].Votes != 1 || calls[0].options[1].Votes != 0 {
		t.Errorf("Published tally [%d %d], want [1 0]",
			calls[0].options[0].Votes, calls[0].options[1].Votes)
	}

	// Synchronous response, publish, and independent fetch all agree
	if options[0].Votes != 1 {
		t.Errorf("Returned tally has %d votes for Red, want 1", options[0].Votes)
	}
	fetched, err := svc.Get(pollID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched.Options[0].Votes != 1 || fetched.Options[1].Votes != 0 {
		t.Errorf("Fetched tally [%d %d], want [1 0]",
			fetched.Options[0].Votes, fetched.Options[1].Votes)
	}
}

func TestFailedVoteDoesNotPublish(t *testing.T) {
	svc, b := newTestService(t)

	pollID, err := svc.Create("Favorite color?", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	result, _ := svc.Get(pollID)
	redID := result.Options[0].ID

	voter := identity.Resolve("addr-1", "token-1")
	if _, err := svc.SubmitVote(pollID, redID, voter); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}

	// Duplicate vote
	if _, err := svc.SubmitVote(pollID, redID, voter); !errors.Is(err, store.ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted, got %v", err)
	}
	// Invalid option
	if _, err := svc.SubmitVote(pollID, "bogus-option", identity.Resolve("addr-2", "token-2")); !errors.Is(err, store.ErrInvalidOption) {
		t.Errorf("Expected ErrInvalidOption, got %v", err)
	}
	// Missing poll
	if _, err := svc.SubmitVote("bogus-poll", redID, identity.Resolve("addr-3", "token-3")); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if len(b.calls()) != 1 {
		t.Errorf("Expected only the successful vote to publish, got %d publishes", len(b.calls()))
	}
}
