// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Webhooks

Gateway callbacks are wrapped so that a panic still produces a valid
call-control document, and optionally so that unsigned requests are refused:

	h := middleware.RecoverTwiML(renderer.Apology(), voiceHandler.Voice)
	h = middleware.RequireTwilioSignature(cfg.TwilioAuthToken, cfg.PublicURL, h)

Webhooks that only acknowledge, such as the transcript callback, use
RecoverStatus instead, which answers a panic with 500 so the gateway retries.

TwiMLResponse writes a document with the text/xml content type.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.MakeCallRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# CORS

	server := http.Server{Handler: middleware.CORS(mux)}
*/
package middleware
