// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Sondaj Live API.

# Route Registration

NewRouter creates the handler tree with CORS applied:

	handler := router.NewRouter(conn, dialect, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

User questions:

	GET    /api/v1/user-questions           - List active questions
	POST   /api/v1/user-questions           - Submit a question
	POST   /api/v1/user-questions/{id}/vote - Upvote
	DELETE /api/v1/user-questions/{id}      - Delete

Live question:

	GET  /api/v1/live-question         - Active question with counts
	POST /api/v1/live-question         - Activate a new question
	POST /api/v1/live-question/vote    - Vote or change vote
	GET  /api/v1/live-question/history - All live questions, newest first

API routes are wrapped with middleware.WithLogging.
*/
package router
