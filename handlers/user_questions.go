// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fitss/sondaj-live/board"
	"github.com/fitss/sondaj-live/middleware"
	"github.com/fitss/sondaj-live/models"
)

type UserQuestionHandler struct {
	board *board.Board
}

func NewUserQuestionHandler(b *board.Board) *UserQuestionHandler {
	return &UserQuestionHandler{board: b}
}

// List handles GET /api/v1/user-questions
func (h *UserQuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.board.ListActive(r.Context())
	if err != nil {
		writeError(w, err, "list user questions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// Submit handles POST /api/v1/user-questions
func (h *UserQuestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitUserQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	q, err := h.board.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err, "submit user question")
		return
	}

	slog.Info("user question submitted", "question_id", q.ID)

	writeSuccess(w)
}

// Vote handles POST /api/v1/user-questions/{id}/vote
func (h *UserQuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	var req models.VoteUserQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.board.Vote(r.Context(), questionID, req.LocalUserID); err != nil {
		writeError(w, err, "vote user question")
		return
	}

	slog.Info("user question vote registered", "question_id", questionID)

	writeSuccess(w)
}

// Delete handles DELETE /api/v1/user-questions/{id}
func (h *UserQuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	if err := h.board.Delete(r.Context(), questionID); err != nil {
		writeError(w, err, "delete user question")
		return
	}

	slog.Info("user question deleted", "question_id", questionID)

	writeSuccess(w)
}
