// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Live Poll API server.

Live Poll lets an operator create a poll with a fixed set of choices, share
its link, and let visitors cast one vote each while every connected watcher
sees the tally move in real time over websockets.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 5000 -d "postgres://..." -ip-salt "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - IP_HASH_SALT (--ip-salt): secret for voter address hashing

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)

A .env file in the working directory is loaded at startup.

# Architecture

	- store:      durable polls/options/votes and the vote registrar
	- identity:   voter fingerprint (origin address + client token)
	- realtime:   per-poll websocket rooms and tally fan-out
	- poll:       service facade composing store and realtime
	- handlers:   HTTP handlers and the websocket upgrade endpoint
	- router:     route definitions using Go 1.22+ routing
	- middleware: CORS, logging, JSON helpers
	- models:     request/response and domain types
	- auth:       id generation and address hashing
	- db:         schema creation
	- cliparse:   configuration parsing

See package documentation for each component.
*/
package main
