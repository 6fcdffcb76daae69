// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/fitss/sondaj-live/cliparse"
)

// Dialect isolates the few statements that differ between backends
type Dialect string

const (
	SQLite   Dialect = cliparse.DatabaseSQLite
	Postgres Dialect = cliparse.DatabasePostgres
)

// ForUpdate is appended to SELECTs that must lock the rows they read.
// SQLite has no row locks; its transactions are opened IMMEDIATE instead.
func (d Dialect) ForUpdate() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// LockLiveQuestions returns the statement serializing activations, or "".
func (d Dialect) LockLiveQuestions() string {
	if d == Postgres {
		return "LOCK TABLE live_question IN EXCLUSIVE MODE"
	}
	return ""
}

// Open connects to the configured database and verifies the connection
func Open(cfg cliparse.Config) (*sql.DB, Dialect, error) {
	dialect := Dialect(cfg.DatabaseType)

	var conn *sql.DB
	var err error
	switch dialect {
	case Postgres:
		conn, err = sql.Open("postgres", cfg.DatabaseURL)
	case SQLite:
		conn, err = sql.Open("sqlite", sqliteDSN(cfg.DatabaseURL))
		if err == nil {
			// One writer at a time; also keeps :memory: databases alive
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, "", fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, dialect, nil
}

// sqliteDSN adds the options every connection needs unless already present
func sqliteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "_txlock=") {
		params = append(params, "_txlock=immediate")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		params = append(params, "_pragma=busy_timeout(5000)")
	}
	if !strings.Contains(dsn, "foreign_keys") {
		params = append(params, "_pragma=foreign_keys(1)")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// IsUniqueViolation reports whether err came from a primary key or unique constraint
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// extended result codes disabled
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}

	return false
}
