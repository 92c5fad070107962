// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types.

# Call Sessions

A CallSession is one row per (call, question), not one row per call:

	type CallSession struct {
	    ID               string  // also the response_id in callbacks
	    CallSID          string  // gateway call id
	    Question         string  // exact question text
	    CallStatus       string  // initiated, in-progress, completed
	    RecordingSID     *string
	    Transcript       *string
	    TranscriptStatus string  // pending, completed, failed
	    ...
	}

Optional columns are pointers so NULL survives a round trip through the
store and is omitted from JSON.

# Status Constants

	CallStatusInitiated  = "initiated"
	CallStatusInProgress = "in-progress"
	CallStatusCompleted  = "completed"

	TranscriptPending   = "pending"
	TranscriptCompleted = "completed"
	TranscriptFailed    = "failed"

# Non-question Labels

Rows created outside the interview flow use fixed labels:

	QuestionCallInitiated  = "Call initiated"            // outbound seed
	QuestionAutoTranscribe = "Auto-transcribed response" // transcript placeholder prefix

Progress counting only looks at bank questions, so these never advance a call.

# Operator API Types

	MakeCallRequest     → POST /calls
	MakeCallResponse    ← POST /calls
	SessionListResponse ← GET /sessions
	SessionStats        ← GET /sessions/stats

# Error Response

All operator API errors return:

	{"error": "Bad Request", "message": "phone_number is required"}
*/
package models
