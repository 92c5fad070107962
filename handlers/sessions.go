// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/voice-interview/middleware"
	"github.com/danielhkuo/voice-interview/models"
	"github.com/danielhkuo/voice-interview/session"
)

// SessionHandler exposes read-only views of stored sessions.
type SessionHandler struct {
	store *session.Store
}

func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// List handles GET /sessions?call_sid=&status=&limit=
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := session.Filter{
		CallSID: q.Get("call_sid"),
		Status:  q.Get("status"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	sessions, err := h.store.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list sessions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionListResponse{
		Sessions: sessions,
		Count:    len(sessions),
	})
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Session ID required")
		return
	}

	cs, err := h.store.Get(r.Context(), id)
	if session.IsNotFound(err) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to get session", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, cs)
}

// Stats handles GET /sessions/stats
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
