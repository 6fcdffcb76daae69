// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/fitss/sondaj-live/cliparse"
	"github.com/fitss/sondaj-live/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call returns an independent database.
func SetupTestDB(t *testing.T) (*sql.DB, db.Dialect) {
	t.Helper()

	conn, dialect, err := db.Open(GetTestConfig())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn, dialect
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           8002,
		DatabaseURL:    ":memory:",
		DatabaseType:   cliparse.DatabaseSQLite,
		AllowedOrigins: []string{"http://localhost:3000"},
		OriginRegex:    regexp.MustCompile(`^(?:https.*\.(fitss.ro))$`),
	}
}

// CountRows returns the number of rows in table matching where
func CountRows(t *testing.T, conn *sql.DB, table, where string, args ...interface{}) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var count int
	if err := conn.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return count
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
