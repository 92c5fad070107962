// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Call status constants
const (
	CallStatusInitiated  = "initiated"
	CallStatusInProgress = "in-progress"
	CallStatusCompleted  = "completed"
)

// Transcript status constants
const (
	TranscriptPending   = "pending"
	TranscriptCompleted = "completed"
	TranscriptFailed    = "failed"
)

// Question labels for records that do not answer a bank question.
// They never count toward a call's progress.
const (
	QuestionCallInitiated  = "Call initiated"
	QuestionAutoTranscribe = "Auto-transcribed response"
)

// Request types

type MakeCallRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// Response types

type MakeCallResponse struct {
	CallSID     string `json:"call_sid"`
	PhoneNumber string `json:"phone_number"`
	Seeded      bool   `json:"seeded"`
}

type SessionListResponse struct {
	Sessions []CallSession `json:"sessions"`
	Count    int           `json:"count"`
}

type SessionStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
}

// Domain types

// CallSession is one question's progress within one call.
// (CallSID, Question) is its natural key.
type CallSession struct {
	ID                string    `json:"id"`
	CallSID           string    `json:"call_sid"`
	PhoneNumber       string    `json:"phone_number"`
	Question          string    `json:"step_question"`
	CallStatus        string    `json:"call_status"`
	RecordingSID      *string   `json:"recording_sid,omitempty"`
	RecordingURL      *string   `json:"recording_url,omitempty"`
	RecordingDuration *int      `json:"recording_duration,omitempty"`
	CallDuration      *int      `json:"call_duration,omitempty"`
	Transcript        *string   `json:"transcript,omitempty"`
	TranscriptStatus  string    `json:"transcript_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RecordingUpdate carries the fields reconciliation attaches to a record.
// Nil fields are left untouched.
type RecordingUpdate struct {
	RecordingSID      string
	RecordingURL      *string
	RecordingDuration *int
	CallStatus        *string
	CallDuration      *int
}

// TranscriptUpdate is the outcome of a transcript fetch.
type TranscriptUpdate struct {
	Status string
	Text   *string
}

// CallInfo is the gateway's view of a call.
type CallInfo struct {
	Status   string
	Duration *int
}

// RecordingInfo is the gateway's view of a recording.
type RecordingInfo struct {
	URL      string
	Duration *int
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
