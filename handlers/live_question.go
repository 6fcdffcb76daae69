// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fitss/sondaj-live/live"
	"github.com/fitss/sondaj-live/middleware"
	"github.com/fitss/sondaj-live/models"
)

type LiveQuestionHandler struct {
	session *live.Session
}

func NewLiveQuestionHandler(s *live.Session) *LiveQuestionHandler {
	return &LiveQuestionHandler{session: s}
}

// Get handles GET /api/v1/live-question?localUserID=...
func (h *LiveQuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.GetActive(r.Context(), r.URL.Query().Get("localUserID"))
	if err != nil {
		writeError(w, err, "get live question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// Activate handles POST /api/v1/live-question
// The previous live question is retired, not deleted.
func (h *LiveQuestionHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req models.ActivateLiveQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	q, err := h.session.Activate(r.Context(), req)
	if err != nil {
		writeError(w, err, "activate live question")
		return
	}

	slog.Info("live question activated", "question_id", q.ID, "answers", len(q.Answers))

	writeSuccess(w)
}

// Vote handles POST /api/v1/live-question/vote
func (h *LiveQuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteLiveQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Index == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "index is required")
		return
	}

	if err := h.session.Vote(r.Context(), *req.Index, req.LocalUserID); err != nil {
		writeError(w, err, "vote live question")
		return
	}

	slog.Info("live question vote registered", "index", *req.Index)

	writeSuccess(w)
}

// History handles GET /api/v1/live-question/history
func (h *LiveQuestionHandler) History(w http.ResponseWriter, r *http.Request) {
	views, err := h.session.History(r.Context())
	if err != nil {
		writeError(w, err, "list live questions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}
