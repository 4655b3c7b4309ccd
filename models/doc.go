// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared across
the Live Poll API.

Domain types mirror the persisted relations: a Poll owns an ordered set of
Options, each Option carries its running vote tally, and a Vote links one
voter fingerprint to one option. Voter identity fields (VoterIP, VoterToken)
are never serialized to JSON.
*/
package models
