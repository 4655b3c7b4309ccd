// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity derives the voter fingerprint used for duplicate-vote
detection.

The fingerprint is a pair of signals: the connection's best-known origin
address and a client-supplied opaque token. Both are best-effort anti-abuse
heuristics, not authentication - shared networks reuse addresses and clients
can clear tokens. The store treats a match on either signal as a prior vote.

Everything here is pure; no persistence, no side effects.
*/
package identity
