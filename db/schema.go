// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The SQL below is engine-neutral across postgres and sqlite: TEXT ids,
// timestamps supplied by the application, $1 placeholders everywhere.
//
// The two UNIQUE constraints on votes back the disjunctive duplicate-vote
// check: a voter is blocked when either the address or the token was seen
// before for the poll. Both engines treat NULL voter_ip values as distinct,
// so an absent address never collides.
const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS polls (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Options
CREATE TABLE IF NOT EXISTS options (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    option_order INTEGER NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0,
    UNIQUE (poll_id, text),
    UNIQUE (poll_id, option_order)
);

CREATE INDEX IF NOT EXISTS idx_options_poll_id ON options(poll_id);

-- Votes
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES options(id) ON DELETE CASCADE,
    voter_ip TEXT,
    voter_token TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (poll_id, voter_token),
    UNIQUE (poll_id, voter_ip)
);

CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id);
CREATE INDEX IF NOT EXISTS idx_votes_option_id ON votes(option_id);
`
