// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll is the service facade composing the store and the realtime
broadcaster.

It exposes the three operations the request layer needs - Create, Get, and
SubmitVote - and enforces one ordering rule: a tally is published to live
subscribers only after the vote behind it has durably committed, exactly
once per commit.
*/
package poll
