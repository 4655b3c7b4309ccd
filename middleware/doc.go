// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

  - WithLogging: request start/completion logging with duration
  - CORS: cross-origin headers and preflight handling
  - JSONResponse / ErrorResponse / ParseJSONBody: JSON plumbing shared by
    all handlers
*/
package middleware
