// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"

	"github.com/danielhkuo/voice-interview/auth"
	"github.com/danielhkuo/voice-interview/models"
	"github.com/danielhkuo/voice-interview/session"
)

// Store is the persistence the engine needs. *session.Store implements it.
type Store interface {
	GetOrCreate(ctx context.Context, rec session.NewRecord) (models.CallSession, bool, error)
	CompleteCall(ctx context.Context, callSID string) (int64, error)
	Get(ctx context.Context, id string) (models.CallSession, error)
	ListByCall(ctx context.Context, callSID string) ([]models.CallSession, error)
	AttachRecording(ctx context.Context, id string, u models.RecordingUpdate) error
	SetTranscript(ctx context.Context, id string, u models.TranscriptUpdate) error
}

// Enricher fetches call and recording details from the gateway.
type Enricher interface {
	FetchCall(ctx context.Context, callSID string) (models.CallInfo, error)
	FetchRecording(ctx context.Context, recordingSID string) (models.RecordingInfo, error)
	FetchTranscript(ctx context.Context, recordingSID string) (string, bool, error)
}

// Engine drives a call through the question bank.
type Engine struct {
	store Store
	gw    Enricher
}

func New(store Store, gw Enricher) *Engine {
	return &Engine{store: store, gw: gw}
}

// Call identifies the call a callback belongs to.
type Call struct {
	SID  string
	From string
}

// Result is the outcome of Advance. Instruction is always usable; StoreErr
// reports persistence failures the caller should log and otherwise ignore.
type Result struct {
	Instruction Instruction
	Record      *models.CallSession
	Created     bool
	Completed   bool
	StoreErr    error
}

// Advance plans step and records that the call reached it.
//
// For a bank question the record keyed by (call, question) is created if
// missing; at the last step every record of the call is marked completed.
// The returned instruction is the same whether or not the store succeeds.
func (e *Engine) Advance(ctx context.Context, call Call, step int, name string, bank []string) Result {
	res := Result{Instruction: Plan(step, name, bank)}
	if call.SID == "" || step < 1 || step > len(bank) {
		return res
	}

	question := bank[step-1]
	id := auth.RecordID(call.SID, question)
	if res.Instruction.Action == ActionRecord {
		res.Instruction.ResponseID = id
	}

	rec, created, err := e.store.GetOrCreate(ctx, session.NewRecord{
		ID:          id,
		CallSID:     call.SID,
		PhoneNumber: call.From,
		Question:    question,
		CallStatus:  models.CallStatusInProgress,
	})
	if err != nil {
		res.StoreErr = err
	} else {
		res.Record = &rec
		res.Created = created
	}

	if step == len(bank) {
		if _, err := e.store.CompleteCall(ctx, call.SID); err != nil {
			res.StoreErr = errors.Join(res.StoreErr, err)
		} else {
			res.Completed = true
		}
	}

	return res
}

// DeriveStep returns how far a call has progressed: the number of distinct
// bank questions with a stored record. Seed and placeholder records do not
// count. After the callback for step q has been stored, DeriveStep is q.
func DeriveStep(records []models.CallSession, bank []string) int {
	inBank := make(map[string]bool, len(bank))
	for _, q := range bank {
		inBank[q] = true
	}

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if inBank[r.Question] {
			seen[r.Question] = true
		}
	}
	return len(seen)
}
