// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the interview server.

# Handler Types

  - VoiceHandler: gateway webhooks that drive a call through the interview
  - CallHandler: outbound call placement
  - SessionHandler: read-only session listing and stats

Handlers are created via constructor functions that take the session store,
the gateway, and the config:

	voiceHandler := handlers.NewVoiceHandler(store, gw, loader, cfg)

# Call Flow

	POST /answer/                       → redirect to /voice/?q=0
	POST /voice/?q=0                    → greeting, redirect to q=1
	POST /voice/?q=i   (1 ≤ i < N)      → ask question i, record answer
	POST /recording-status/?response_id → attach recording, plan next step
	POST /voice/?q=N                    → closing, hang up, mark completed

The recording callback for question N-1 takes step N itself, so the call is
marked completed even if the gateway never requests /voice/?q=N.

Store failures on these routes are logged and the call continues with the
same document a healthy store would have produced. Only an unknown
response_id (404) or a malformed callback (400) is refused.

# Transcripts

	POST /transcription/ → 200 OK once stored, 500 if the store fails

A transcript for a recording no question record has claimed yet is kept on
a placeholder record until the recording callback arrives.
*/
package handlers
