// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements durable poll persistence and the vote registrar.

# Vote Protocol

RecordVote runs one logical transaction per vote attempt:

 1. poll existence check (ErrNotFound)
 2. prior-vote check on voter address OR token (ErrAlreadyVoted)
 3. option ownership check (ErrInvalidOption)
 4. vote insert + server-side counter increment, atomically
 5. ordered read-back of the poll's options

Step 2 is an early exit, not the guard: the per-poll UNIQUE constraints on
(poll_id, voter_token) and (poll_id, voter_ip) reject a concurrent duplicate
at insert time, and the increment is votes = votes + 1 evaluated by the
engine, so racing commits never lose updates. Any storage failure rolls the
whole attempt back; the caller may safely retry.

All four sentinel errors (ErrInvalidInput, ErrNotFound, ErrInvalidOption,
ErrAlreadyVoted) are matched with errors.Is at the request layer. Everything
else is a storage failure wrapped with context.
*/
package store
