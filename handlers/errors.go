// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fitss/sondaj-live/middleware"
	"github.com/fitss/sondaj-live/models"
)

// writeError maps an error kind to its status code. Unknown errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "You already voted on this question")
	default:
		slog.Error("request failed", "action", action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

func writeSuccess(w http.ResponseWriter) {
	middleware.JSONResponse(w, http.StatusOK, models.ResultResponse{Result: models.ResultSuccess})
}
