// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voice-interview/cliparse"
	"github.com/danielhkuo/voice-interview/gateway"
	"github.com/danielhkuo/voice-interview/middleware"
	"github.com/danielhkuo/voice-interview/models"
	"github.com/danielhkuo/voice-interview/phone"
	"github.com/danielhkuo/voice-interview/session"
)

type CallHandler struct {
	store *session.Store
	gw    gateway.Gateway
	urls  gateway.URLs
	cfg   cliparse.Config
}

func NewCallHandler(store *session.Store, gw gateway.Gateway, cfg cliparse.Config) *CallHandler {
	return &CallHandler{
		store: store,
		gw:    gw,
		urls:  gateway.URLs{Base: cfg.PublicURL},
		cfg:   cfg,
	}
}

// MakeCall handles POST /calls
func (h *CallHandler) MakeCall(w http.ResponseWriter, r *http.Request) {
	var req models.MakeCallRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	number, err := phone.Normalize(req.PhoneNumber, h.cfg.DefaultRegion)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	callSID, err := h.gw.PlaceCall(r.Context(), number, h.urls.Answer())
	if err != nil {
		slog.Error("failed to place call", "to", number, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to place call")
		return
	}

	// The call is already ringing; a failed seed must not undo it
	seeded := true
	if _, _, err := h.store.GetOrCreate(r.Context(), session.NewRecord{
		CallSID:     callSID,
		PhoneNumber: number,
		Question:    models.QuestionCallInitiated,
		CallStatus:  models.CallStatusInitiated,
	}); err != nil {
		seeded = false
		slog.Warn("failed to seed session", "call_sid", callSID, "error", err)
	}

	slog.Info("call placed", "call_sid", callSID, "to", number)

	middleware.JSONResponse(w, http.StatusCreated, models.MakeCallResponse{
		CallSID:     callSID,
		PhoneNumber: number,
		Seeded:      seeded,
	})
}
