// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/voice-interview/cliparse"
	"github.com/danielhkuo/voice-interview/engine"
	"github.com/danielhkuo/voice-interview/gateway"
	"github.com/danielhkuo/voice-interview/middleware"
	"github.com/danielhkuo/voice-interview/questions"
	"github.com/danielhkuo/voice-interview/session"
)

// VoiceHandler serves the gateway's webhooks. Every response to a live call
// is a call-control document, even when the store or gateway is failing.
//
// The question bank is loaded once, so a live call never sees it change.
type VoiceHandler struct {
	store    *session.Store
	engine   *engine.Engine
	bank     []string
	renderer gateway.Renderer
	cfg      cliparse.Config
}

func NewVoiceHandler(store *session.Store, gw gateway.Gateway, loader questions.Loader, cfg cliparse.Config) *VoiceHandler {
	bank := loader.Load()
	slog.Info("question bank loaded", "path", loader.Path, "questions", len(bank))

	return &VoiceHandler{
		store:  store,
		engine: engine.New(store, gw),
		bank:   bank,
		renderer: gateway.Renderer{
			URLs:  gateway.URLs{Base: cfg.PublicURL},
			Voice: cfg.Voice,
		},
		cfg: cfg,
	}
}

// Answer handles POST /answer/
func (h *VoiceHandler) Answer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	callSID := r.PostForm.Get("CallSid")
	if callSID == "" {
		http.Error(w, "CallSid is required", http.StatusBadRequest)
		return
	}

	slog.Info("call answered",
		"call_sid", callSID,
		"from", r.PostForm.Get("From"),
		"to", r.PostForm.Get("To"),
	)

	h.respond(w, engine.Instruction{
		Action:   engine.ActionRedirect,
		NextStep: 0,
		Name:     callerName(r),
	})
}

// Voice handles POST /voice/?q=<step>&name=<name>
func (h *VoiceHandler) Voice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("unreadable voice callback", "error", err)
	}

	step := engine.ParseStep(r.URL.Query().Get("q"))
	call := engine.Call{
		SID:  r.Form.Get("CallSid"),
		From: r.Form.Get("From"),
	}

	res := h.engine.Advance(r.Context(), call, step, callerName(r), h.bank)
	if res.StoreErr != nil {
		slog.Warn("session not persisted, continuing call",
			"call_sid", call.SID,
			"step", step,
			"error", res.StoreErr,
		)
	}
	if res.Created {
		slog.Info("session record created", "call_sid", call.SID, "step", step, "id", res.Record.ID)
	}
	if res.Completed {
		slog.Info("interview completed", "call_sid", call.SID, "questions", len(h.bank))
	}

	h.respond(w, res.Instruction)
}

// RecordingStatus handles POST /recording-status/?response_id=<id>
func (h *VoiceHandler) RecordingStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	responseID := r.URL.Query().Get("response_id")
	recordingSID := r.PostForm.Get("RecordingSid")
	callSID := r.PostForm.Get("CallSid")
	if responseID == "" || recordingSID == "" || callSID == "" {
		http.Error(w, "response_id, RecordingSid and CallSid are required", http.StatusBadRequest)
		return
	}

	ev := engine.RecordingEvent{
		ResponseID:   responseID,
		CallSID:      callSID,
		RecordingSID: recordingSID,
		RecordingURL: r.PostForm.Get("RecordingUrl"),
		CallerName:   callerName(r),
	}
	if d, err := strconv.Atoi(r.PostForm.Get("RecordingDuration")); err == nil {
		ev.RecordingDuration = &d
	}

	out, err := h.engine.Reconcile(r.Context(), ev, h.bank)
	if session.IsNotFound(err) {
		slog.Warn("recording for unknown session", "response_id", responseID, "call_sid", callSID)
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to load session for recording", "response_id", responseID, "error", err)
		middleware.TwiMLResponse(w, http.StatusOK, h.renderer.Apology())
		return
	}
	if out.Degraded != nil {
		slog.Warn("recording reconciled with errors",
			"response_id", responseID,
			"recording_sid", recordingSID,
			"error", out.Degraded,
		)
	}

	slog.Info("recording reconciled",
		"response_id", responseID,
		"recording_sid", recordingSID,
		"transcript_status", out.TranscriptStatus,
		"step", out.Step,
	)

	h.respond(w, out.Instruction)
}

// Transcription handles POST /transcription/
// The gateway expects a bare acknowledgement, not a call-control document.
func (h *VoiceHandler) Transcription(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	recordingSID := r.PostForm.Get("RecordingSid")
	if recordingSID == "" {
		http.Error(w, "RecordingSid is required", http.StatusBadRequest)
		return
	}

	created, err := h.store.UpsertTranscript(r.Context(),
		recordingSID,
		r.PostForm.Get("CallSid"),
		r.PostForm.Get("RecordingUrl"),
		r.PostForm.Get("TranscriptionText"),
	)
	if err != nil {
		slog.Error("failed to store transcript", "recording_sid", recordingSID, "error", err)
		http.Error(w, "failed to store transcript", http.StatusInternalServerError)
		return
	}

	slog.Info("transcript stored", "recording_sid", recordingSID, "placeholder", created)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *VoiceHandler) respond(w http.ResponseWriter, in engine.Instruction) {
	doc, err := h.renderer.Render(in)
	if err != nil {
		slog.Error("failed to render instruction", "action", in.Action, "error", err)
		doc = h.renderer.Apology()
	}
	middleware.TwiMLResponse(w, http.StatusOK, doc)
}

func callerName(r *http.Request) string {
	if name := r.URL.Query().Get("name"); name != "" {
		return name
	}
	return engine.DefaultName
}
