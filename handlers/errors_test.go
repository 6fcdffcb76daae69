// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitss/sondaj-live/models"
	"github.com/fitss/sondaj-live/testutil"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", fmt.Errorf("%w: title is required", models.ErrValidation), http.StatusBadRequest, "title is required"},
		{"not found", fmt.Errorf("%w: question x", models.ErrNotFound), http.StatusNotFound, "not found"},
		{"duplicate", fmt.Errorf("%w: question x", models.ErrDuplicateVote), http.StatusConflict, "already voted"},
		{"storage", errors.New("disk I/O error"), http.StatusInternalServerError, "Database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, tt.err, "test")

			testutil.AssertStatus(t, w, tt.wantStatus)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if !strings.Contains(resp.Message, tt.wantMsg) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMsg, resp.Message)
			}
			if strings.Contains(resp.Message, "disk") {
				t.Errorf("Storage details must not leak, got %q", resp.Message)
			}
		})
	}
}

func TestHandlers_BadRequests(t *testing.T) {
	userHandler, liveHandler := newHandlers(t)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		path    string
		body    string
		status  int
	}{
		{"submit invalid JSON", userHandler.Submit, "POST", "/api/v1/user-questions", "{", http.StatusBadRequest},
		{"submit empty title", userHandler.Submit, "POST", "/api/v1/user-questions", `{"title":"","local_user_id":"a"}`, http.StatusBadRequest},
		{"submit missing voter", userHandler.Submit, "POST", "/api/v1/user-questions", `{"title":"Q"}`, http.StatusBadRequest},
		{"activate invalid JSON", liveHandler.Activate, "POST", "/api/v1/live-question", "not json", http.StatusBadRequest},
		{"activate no answers", liveHandler.Activate, "POST", "/api/v1/live-question", `{"title":"Q","answers":[]}`, http.StatusBadRequest},
		{"live vote missing index", liveHandler.Vote, "POST", "/api/v1/live-question/vote", `{"local_user_id":"a"}`, http.StatusBadRequest},
		{"live vote no question", liveHandler.Vote, "POST", "/api/v1/live-question/vote", `{"index":0,"local_user_id":"a"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			tt.handler(w, req)
			testutil.AssertStatus(t, w, tt.status)
		})
	}
}

func TestUserQuestionVote_UnknownID(t *testing.T) {
	userHandler, _ := newHandlers(t)

	for _, id := range []string{"not-a-uuid", "6f1c2a4e-8b7d-4c3e-9a55-0d2f1e3b4c5d"} {
		req := httptest.NewRequest("POST", "/api/v1/user-questions/"+id+"/vote", strings.NewReader(`{"local_user_id":"a"}`))
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		userHandler.Vote(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	}
}

func TestLiveQuestionGet_MissingVoter(t *testing.T) {
	_, liveHandler := newHandlers(t)

	w := httptest.NewRecorder()
	liveHandler.Get(w, httptest.NewRequest("GET", "/api/v1/live-question", nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
