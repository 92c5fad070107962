// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package gateway talks to Twilio and renders engine instructions as TwiML.
package gateway

import (
	"context"
	"fmt"

	"github.com/danielhkuo/voice-interview/models"
)

// Gateway is the telephony provider: it places calls and reports on calls,
// recordings, and transcripts.
type Gateway interface {
	PlaceCall(ctx context.Context, to, callbackURL string) (string, error)
	FetchCall(ctx context.Context, callSID string) (models.CallInfo, error)
	FetchRecording(ctx context.Context, recordingSID string) (models.RecordingInfo, error)
	// FetchTranscript reports found=false when no transcript exists yet.
	FetchTranscript(ctx context.Context, recordingSID string) (text string, found bool, err error)
}

// Error wraps any failure talking to the gateway.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
