// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db manages database schema creation.

# Schema

Three tables:

  - polls: id, title, created_at
  - options: ordered choices with a running votes counter,
    UNIQUE(poll_id, text) and UNIQUE(poll_id, option_order)
  - votes: one row per committed ballot, UNIQUE(poll_id, voter_token)
    and UNIQUE(poll_id, voter_ip)

The vote uniqueness constraints are load-bearing: they make the
duplicate-vote check race-free under concurrent submissions. The
application-level existence check in the store is only an early exit.

# Engine Support

The DDL runs unchanged on PostgreSQL (lib/pq) and SQLite
(modernc.org/sqlite). Timestamps are always written by the application so
neither engine's NOW()/CURRENT_TIMESTAMP quirks leak into the data.
*/
package db
