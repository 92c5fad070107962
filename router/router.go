// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/voice-interview/cliparse"
	"github.com/danielhkuo/voice-interview/gateway"
	"github.com/danielhkuo/voice-interview/handlers"
	"github.com/danielhkuo/voice-interview/middleware"
	"github.com/danielhkuo/voice-interview/questions"
	"github.com/danielhkuo/voice-interview/session"
)

func NewRouter(db *sql.DB, gw gateway.Gateway, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	store := session.NewStore(db, cfg.StoreTimeout)
	loader := questions.Loader{Path: cfg.QuestionsPath}

	// Initialize handlers
	voiceHandler := handlers.NewVoiceHandler(store, gw, loader, cfg)
	callHandler := handlers.NewCallHandler(store, gw, cfg)
	sessionHandler := handlers.NewSessionHandler(store)

	apology := gateway.Renderer{URLs: gateway.URLs{Base: cfg.PublicURL}, Voice: cfg.Voice}.Apology()

	signed := func(h http.HandlerFunc) http.HandlerFunc {
		if cfg.ValidateSignatures {
			h = middleware.RequireTwilioSignature(cfg.TwilioAuthToken, cfg.PublicURL, h)
		}
		return middleware.WithLogging(h)
	}

	// Call-control webhooks always answer with a document, even on panic
	webhook := func(h http.HandlerFunc) http.HandlerFunc {
		return signed(middleware.RecoverTwiML(apology, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Call progression (gateway webhooks)
	mux.HandleFunc("POST /answer/", webhook(voiceHandler.Answer))
	mux.HandleFunc("POST /voice/", webhook(voiceHandler.Voice))
	mux.HandleFunc("GET /voice/", webhook(voiceHandler.Voice))
	mux.HandleFunc("POST /recording-status/", webhook(voiceHandler.RecordingStatus))
	mux.HandleFunc("POST /transcription/", signed(middleware.RecoverStatus(voiceHandler.Transcription)))

	// Operator API
	mux.HandleFunc("POST /calls", middleware.WithLogging(callHandler.MakeCall))
	mux.HandleFunc("GET /sessions", middleware.WithLogging(sessionHandler.List))
	mux.HandleFunc("GET /sessions/stats", middleware.WithLogging(sessionHandler.Stats))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.Get))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voice-interview API v1"))
	})

	return mux
}
