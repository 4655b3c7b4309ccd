// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/identity"
	"github.com/danielhkuo/livepoll/models"
)

var (
	// ErrInvalidInput reports malformed or insufficient poll-creation data.
	ErrInvalidInput = errors.New("invalid poll input")

	// ErrNotFound reports a missing poll.
	ErrNotFound = errors.New("poll not found")

	// ErrInvalidOption reports an option that does not belong to the poll.
	ErrInvalidOption = errors.New("option does not belong to poll")

	// ErrAlreadyVoted reports a voter identity that already has a committed
	// vote for the poll.
	ErrAlreadyVoted = errors.New("already voted in this poll")
)

// Store owns all durable poll, option, and vote state. It is the only
// writer of vote rows and vote counts.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreatePoll persists a poll and its options atomically and returns the new
// poll ID. Option texts are trimmed and blanks discarded before validation.
// Fails with ErrInvalidInput on an empty title, fewer than two surviving
// options, or duplicate option text.
func (s *Store) CreatePoll(title string, optionTexts []string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	cleaned := make([]string, 0, len(optionTexts))
	seen := make(map[string]bool, len(optionTexts))
	for _, text := range optionTexts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if seen[text] {
			return "", fmt.Errorf("%w: duplicate option %q", ErrInvalidInput, text)
		}
		seen[text] = true
		cleaned = append(cleaned, text)
	}
	if len(cleaned) < 2 {
		return "", fmt.Errorf("%w: at least two options are required", ErrInvalidInput)
	}

	pollID, err := auth.GenerateID(16)
	if err != nil {
		return "", err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO polls (id, title, created_at)
		VALUES ($1, $2, $3)
	`, pollID, title, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to insert poll: %w", err)
	}

	for order, text := range cleaned {
		optionID, err := auth.GenerateID(12)
		if err != nil {
			return "", err
		}
		_, err = tx.Exec(`
			INSERT INTO options (id, poll_id, text, option_order, votes)
			VALUES ($1, $2, $3, $4, 0)
		`, optionID, pollID, text, order)
		if err != nil {
			return "", fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit poll: %w", err)
	}

	return pollID, nil
}

// GetPoll returns a poll and its options ordered by display order.
func (s *Store) GetPoll(id string) (models.PollWithOptions, error) {
	var result models.PollWithOptions

	err := s.db.QueryRow(`
		SELECT id, title, created_at FROM polls WHERE id = $1
	`, id).Scan(&result.Poll.ID, &result.Poll.Title, &result.Poll.CreatedAt)
	if err == sql.ErrNoRows {
		return models.PollWithOptions{}, ErrNotFound
	}
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to query poll: %w", err)
	}

	result.Options, err = listOptions(s.db, id)
	if err != nil {
		return models.PollWithOptions{}, err
	}

	return result, nil
}

// HasPriorVote reports whether any committed vote for the poll matches
// either identity signal of the voter.
func (s *Store) HasPriorVote(pollID string, voter identity.Voter) (bool, error) {
	return hasPriorVote(s.db, pollID, voter)
}

// RecordVote commits a single vote for the given option. The vote row insert
// and the option counter increment happen in one transaction; no caller ever
// observes one without the other. The counter moves via a server-side
// votes = votes + 1, and the per-poll uniqueness constraints on voter_token
// and voter_ip reject concurrent duplicates that slip past the early check.
// On success it returns the poll's options with current counts in display
// order; the read-back runs inside the same transaction, so it reflects at
// least this vote's own increment.
func (s *Store) RecordVote(pollID, optionID string, voter identity.Voter) ([]models.Option, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists string
	err = tx.QueryRow(`SELECT id FROM polls WHERE id = $1`, pollID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	// Early exit only; the uniqueness constraints are the real guard.
	voted, err := hasPriorVote(tx, pollID, voter)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	var optionOK bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM options WHERE id = $1 AND poll_id = $2)
	`, optionID, pollID).Scan(&optionOK)
	if err != nil {
		return nil, fmt.Errorf("failed to verify option: %w", err)
	}
	if !optionOK {
		return nil, ErrInvalidOption
	}

	voteID, err := auth.GenerateID(16)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO votes (id, poll_id, option_id, voter_ip, voter_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, pollID, optionID, voter.Address, voter.Token, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE options SET votes = votes + 1 WHERE id = $1 AND poll_id = $2
	`, optionID, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to increment vote count: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrInvalidOption
	}

	options, err := listOptions(tx, pollID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return options, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func hasPriorVote(q querier, pollID string, voter identity.Voter) (bool, error) {
	// voter_ip = NULL is never true, so an absent address contributes
	// nothing to the check.
	var voted bool
	err := q.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM votes
			WHERE poll_id = $1
			AND (voter_token = $2 OR voter_ip = $3)
		)
	`, pollID, voter.Token, voter.Address).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("failed to check prior vote: %w", err)
	}
	return voted, nil
}

func listOptions(q querier, pollID string) ([]models.Option, error) {
	rows, err := q.Query(`
		SELECT id, poll_id, text, option_order, votes
		FROM options
		WHERE poll_id = $1
		ORDER BY option_order ASC
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.OptionOrder, &opt.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return options, nil
}

// isUniqueViolation recognizes unique-constraint errors from both engines:
// class 23505 from postgres, the "UNIQUE constraint failed" message from
// sqlite.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
