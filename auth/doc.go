// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifier generation and voter-address hashing.

GenerateID produces random hex identifiers for polls, options, and votes.
HashIP turns a client address into a salted HMAC digest before it is stored;
the raw address never reaches the database, while equality-based duplicate
detection keeps working over the digest.
*/
package auth
