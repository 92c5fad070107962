// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the interview server.

# Route Registration

	mux := router.NewRouter(db, gw, cfg)

# Endpoints

Health:

	GET /health

Gateway webhooks (form-encoded, answer with TwiML):

	POST /answer/            - Call connected, redirect to step 0
	POST /voice/?q=&name=    - Advance the interview (GET also accepted)
	POST /recording-status/  - Attach a finished recording
	POST /transcription/     - Store an asynchronous transcript

Call-control webhooks are wrapped in middleware.RecoverTwiML; the
transcript webhook uses middleware.RecoverStatus and answers a panic with
500. When cfg.ValidateSignatures is set, all four also pass through
middleware.RequireTwilioSignature.

Operator API (JSON):

	POST /calls           - Place an outbound call
	GET  /sessions        - List records (call_sid, status, limit)
	GET  /sessions/stats  - Call counters
	GET  /sessions/{id}   - One record
*/
package router
