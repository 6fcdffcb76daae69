// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Sondaj Live API.

# Handler Types

Each handler wraps one board:

  - UserQuestionHandler: audience questions (list, submit, upvote, delete)
  - LiveQuestionHandler: the presenter's live question (get, activate, vote, history)

Handlers are created from their board:

	userHandler := handlers.NewUserQuestionHandler(board.New(conn, dialect))

# User Questions

	GET    /api/v1/user-questions           → List
	POST   /api/v1/user-questions           → Submit (submitter casts the first vote)
	POST   /api/v1/user-questions/{id}/vote → Vote (once per local_user_id)
	DELETE /api/v1/user-questions/{id}      → Delete (idempotent)

# Live Question

	GET  /api/v1/live-question?localUserID= → Get (counts per answer)
	POST /api/v1/live-question              → Activate (retires the previous one)
	POST /api/v1/live-question/vote         → Vote (revoting moves the vote)
	GET  /api/v1/live-question/history      → History

# Errors

Board errors map to status codes: models.ErrValidation is 400,
models.ErrNotFound is 404 and models.ErrDuplicateVote is 409. Anything
else is logged and returned as 500 without detail.
*/
package handlers
