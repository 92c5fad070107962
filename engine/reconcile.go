// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/danielhkuo/voice-interview/auth"
	"github.com/danielhkuo/voice-interview/models"
)

// RecordingEvent is a "recording finished" callback for one session record.
type RecordingEvent struct {
	ResponseID        string
	CallSID           string
	RecordingSID      string
	RecordingURL      string
	RecordingDuration *int
	CallerName        string
}

// Reconciliation is the outcome of Reconcile.
type Reconciliation struct {
	Instruction      Instruction
	Record           models.CallSession
	Step             int
	TranscriptStatus string
	// Degraded collects gateway and store failures that were skipped over.
	Degraded error
}

// Reconcile attaches a finished recording and its transcript to the record
// named by ev.ResponseID, then plans the call's next step from the stored
// record count.
//
// The only errors returned come from looking up the record: a KindNotFound
// session error for an unknown id, or a storage error. Everything after the
// lookup degrades instead of failing.
func (e *Engine) Reconcile(ctx context.Context, ev RecordingEvent, bank []string) (Reconciliation, error) {
	rec, err := e.store.Get(ctx, ev.ResponseID)
	if err != nil {
		return Reconciliation{}, err
	}

	out := Reconciliation{Record: rec}
	var degraded []error

	// The record decides which call advances
	callSID := rec.CallSID
	if ev.CallSID != "" && ev.CallSID != rec.CallSID {
		slog.Warn("recording callback call mismatch", "response_id", rec.ID, "record_call_sid", rec.CallSID, "callback_call_sid", ev.CallSID)
	}

	upd := models.RecordingUpdate{
		RecordingSID:      ev.RecordingSID,
		RecordingDuration: ev.RecordingDuration,
	}
	if ev.RecordingURL != "" {
		upd.RecordingURL = &ev.RecordingURL
	}

	if info, err := e.gw.FetchRecording(ctx, ev.RecordingSID); err != nil {
		degraded = append(degraded, err)
	} else {
		if upd.RecordingURL == nil && info.URL != "" {
			upd.RecordingURL = &info.URL
		}
		if upd.RecordingDuration == nil {
			upd.RecordingDuration = info.Duration
		}
	}

	if info, err := e.gw.FetchCall(ctx, callSID); err != nil {
		degraded = append(degraded, err)
	} else {
		if info.Status != "" {
			upd.CallStatus = &info.Status
		}
		upd.CallDuration = info.Duration
	}

	if err := e.store.AttachRecording(ctx, rec.ID, upd); err != nil {
		degraded = append(degraded, err)
	}

	// The transcript outcome is saved whichever way the fetch goes
	tu := models.TranscriptUpdate{Status: models.TranscriptPending}
	text, found, err := e.gw.FetchTranscript(ctx, ev.RecordingSID)
	switch {
	case err != nil:
		tu.Status = models.TranscriptFailed
		degraded = append(degraded, err)
	case found:
		tu.Status = models.TranscriptCompleted
		tu.Text = &text
	}
	out.TranscriptStatus = tu.Status
	if err := e.store.SetTranscript(ctx, rec.ID, tu); err != nil {
		degraded = append(degraded, err)
	}

	records, err := e.store.ListByCall(ctx, callSID)
	if err != nil {
		degraded = append(degraded, err)
		// The record being reconciled answers its own question, so the
		// call has at least reached that step.
		out.Step = slices.Index(bank, rec.Question) + 1
	} else {
		out.Step = DeriveStep(records, bank)
	}

	out.Instruction = e.next(ctx, Call{SID: callSID, From: rec.PhoneNumber}, out.Step, ev.CallerName, bank, &degraded)
	out.Degraded = errors.Join(degraded...)
	return out, nil
}

// next plans the step after cursor. Question steps are only planned, so a
// late status callback cannot move the cursor. When the next step is the
// last one it is taken here exactly as the voice callback would take it.
func (e *Engine) next(ctx context.Context, call Call, cursor int, name string, bank []string, degraded *[]error) Instruction {
	n := len(bank)
	if n == 0 {
		return Plan(-1, name, bank)
	}

	if cursor+1 >= n {
		res := e.Advance(ctx, call, n, name, bank)
		if res.StoreErr != nil {
			*degraded = append(*degraded, fmt.Errorf("complete call: %w", res.StoreErr))
		}
		return res.Instruction
	}

	in := Plan(cursor+1, name, bank)
	if in.Action == ActionRecord {
		in.ResponseID = auth.RecordID(call.SID, in.Question)
	}
	return in
}
