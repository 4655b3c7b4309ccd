// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import "database/sql"

// Voter is the identity fingerprint used for duplicate-vote checks: the
// best-known origin address paired with a client-supplied opaque token.
// Either signal matching a prior vote blocks a new one.
type Voter struct {
	// Address is the (hashed) origin address. Invalid when the address
	// could not be determined, in which case it contributes nothing to
	// the duplicate check.
	Address sql.NullString

	// Token is the opaque client-held token. Required; enforced by the
	// request layer before a vote reaches the registrar.
	Token string
}

// ClientAddress picks the best-known origin address for a request:
// the first entry of the X-Forwarded-For chain, then X-Real-IP, then the
// raw transport peer address with any port stripped. Returns "" when none
// is available.
func ClientAddress(forwardedFor, realIP, remoteAddr string) string {
	if forwardedFor != "" {
		// Take first IP in chain
		for i := 0; i < len(forwardedFor); i++ {
			if forwardedFor[i] == ',' || forwardedFor[i] == ' ' {
				return forwardedFor[:i]
			}
		}
		return forwardedFor
	}

	if realIP != "" {
		return realIP
	}

	// Strip port if present
	for i := len(remoteAddr) - 1; i >= 0; i-- {
		if remoteAddr[i] == ':' {
			return remoteAddr[:i]
		}
	}
	return remoteAddr
}

// Resolve builds the voter fingerprint from an already-derived address and
// the client token. An empty address resolves to a null signal.
func Resolve(address, token string) Voter {
	v := Voter{Token: token}
	if address != "" {
		v.Address = sql.NullString{String: address, Valid: true}
	}
	return v
}
