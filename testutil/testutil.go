// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. One connection only: the database lives exactly as long as that
// connection, and serializing through it keeps sqlite's write locking out
// of the tests' way.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		IPHashSalt:   "test-ip-salt",
	}
}

// CreateTestPoll inserts a poll with the given option texts directly and
// returns the poll ID plus option IDs in display order.
func CreateTestPoll(t *testing.T, conn *sql.DB, title string, optionTexts ...string) (pollID string, optionIDs []string) {
	t.Helper()

	pollID, _ = auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO polls (id, title, created_at)
		VALUES ($1, $2, $3)
	`, pollID, title, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, text := range optionTexts {
		optionID, _ := auth.GenerateID(12)
		_, err := conn.Exec(`
			INSERT INTO options (id, poll_id, text, option_order, votes)
			VALUES ($1, $2, $3, $4, 0)
		`, optionID, pollID, text, i)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
		optionIDs = append(optionIDs, optionID)
	}

	return pollID, optionIDs
}

// CastTestVote inserts a committed vote row and bumps the option counter,
// mirroring what the registrar persists.
func CastTestVote(t *testing.T, conn *sql.DB, pollID, optionID, voterIP, voterToken string) {
	t.Helper()

	voteID, _ := auth.GenerateID(16)
	var ip *string
	if voterIP != "" {
		ip = &voterIP
	}
	_, err := conn.Exec(`
		INSERT INTO votes (id, poll_id, option_id, voter_ip, voter_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, pollID, optionID, ip, voterToken, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	_, err = conn.Exec(`UPDATE options SET votes = votes + 1 WHERE id = $1`, optionID)
	if err != nil {
		t.Fatalf("Failed to bump test vote count: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
