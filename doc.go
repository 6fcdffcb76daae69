// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Sondaj Live API server.

Sondaj Live is a small live-polling backend. The audience submits and
upvotes questions on the user-question board, and the presenter runs one
live multiple-choice question at a time.

# Starting the Server

With no configuration the server listens on :8002 and stores data in a
local SQLite file:

	go run .

PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 8002 -t postgres -d "postgres://..."

A .env file in the working directory is read if present; variables already
set in the environment win.

# Configuration

  - PORT (-p): Server port (default: 8002)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): connection string, default sondaj.db for sqlite
  - BACKEND_CORS_ORIGINS (-cors-origins): allowed origins
  - BACKEND_CORS_ORIGIN_REGEX (-cors-origin-regex): allowed origin pattern

# Architecture

  - board: user-question board (submit, upvote once, delete)
  - live: live-question session (activate, vote, revote)
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, process time, JSON helpers
  - metrics: Prometheus collectors
  - models: Request/response and domain types, error kinds
  - ident: Record ids and input validation
  - db: Connections, dialects and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
