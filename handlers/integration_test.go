// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/voice-interview/auth"
	"github.com/danielhkuo/voice-interview/engine"
	"github.com/danielhkuo/voice-interview/models"
	"github.com/danielhkuo/voice-interview/questions"
	"github.com/danielhkuo/voice-interview/session"
	"github.com/danielhkuo/voice-interview/testutil"
)

// TestFullInterviewWorkflow drives one call end to end:
// 1. Operator places the call
// 2. Gateway answers and is redirected to step 0
// 3. Greeting, then each question is asked and recorded
// 4. Recording and transcript callbacks arrive for each answer
// 5. Last step closes the call and marks it completed
// 6. Operator views the sessions and stats
func TestFullInterviewWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	cfg := testutil.GetTestConfig()
	store := session.NewStore(db, cfg.StoreTimeout)
	gw := &testutil.FakeGateway{
		NextCallSID: "CAflow",
		CallStatus:  "in-progress",
		Transcripts: map[string]string{"RE1": "John Smith"},
	}
	loader := questions.Loader{Path: testutil.WriteQuestions(t, testutil.TestQuestions)}

	callHandler := NewCallHandler(store, gw, cfg)
	voiceHandler := NewVoiceHandler(store, gw, loader, cfg)
	sessionHandler := NewSessionHandler(store)
	bank := testutil.TestQuestions

	// Step 1: Place the call
	req := testutil.MakeRequest("POST", "/calls", models.MakeCallRequest{PhoneNumber: "+91 98765 43210"}, nil)
	w := httptest.NewRecorder()
	callHandler.MakeCall(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Place call failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 2: Answer
	form := url.Values{"CallSid": {"CAflow"}, "From": {"+919876543210"}}
	w = httptest.NewRecorder()
	voiceHandler.Answer(w, testutil.MakeFormRequest("POST", "/answer/", form))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Answer failed: %d", w.Code)
	}

	// Step 3: Greeting
	w = httptest.NewRecorder()
	voiceHandler.Voice(w, testutil.MakeFormRequest("POST", "/voice/?q=0&name=John", form))
	testutil.AssertContains(t, w, "Hello John")

	// Steps 3-4: each question, then its recording callback
	for step := 1; step < len(bank); step++ {
		w = httptest.NewRecorder()
		voiceHandler.Voice(w, testutil.MakeFormRequest("POST", "/voice/?q="+itoa(step)+"&name=John", form))
		testutil.AssertContains(t, w, bank[step-1], "<Record")

		recordingSID := "RE" + itoa(step)
		responseID := auth.RecordID("CAflow", bank[step-1])
		w = httptest.NewRecorder()
		voiceHandler.RecordingStatus(w, testutil.MakeFormRequest("POST",
			"/recording-status/?response_id="+responseID+"&name=John",
			url.Values{"CallSid": {"CAflow"}, "RecordingSid": {recordingSID}}))
		testutil.AssertStatus(t, w, http.StatusOK)

		records, err := store.ListByCall(ctx, "CAflow")
		if err != nil {
			t.Fatalf("Step %d - ListByCall failed: %v", step, err)
		}
		// The last answer's callback takes the closing step itself
		want := step
		if step == len(bank)-1 {
			want = len(bank)
			testutil.AssertContains(t, w, "Thanks John for your answers. Goodbye!", "<Hangup")
		}
		if got := engine.DeriveStep(records, bank); got != want {
			t.Errorf("Step %d - cursor is %d, want %d", step, got, want)
		}
	}

	// A late transcript for the second answer
	w = httptest.NewRecorder()
	voiceHandler.Transcription(w, testutil.MakeFormRequest("POST", "/transcription/", url.Values{
		"CallSid": {"CAflow"}, "RecordingSid": {"RE2"}, "TranscriptionText": {"Five years in retail"},
	}))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 5: Closing
	w = httptest.NewRecorder()
	voiceHandler.Voice(w, testutil.MakeFormRequest("POST", "/voice/?q=4&name=John", form))
	testutil.AssertContains(t, w, "Thanks John for your answers. Goodbye!", "<Hangup")

	// Step 6: Operator views
	w = httptest.NewRecorder()
	sessionHandler.List(w, httptest.NewRequest("GET", "/sessions?call_sid=CAflow", nil))
	var list models.SessionListResponse
	testutil.AssertJSON(t, w, &list)

	// Seed + four questions, no placeholder since RE2 was already claimed
	if list.Count != 5 {
		t.Errorf("Step 6 - expected 5 records, got %d", list.Count)
	}
	for _, cs := range list.Sessions {
		if cs.CallStatus != models.CallStatusCompleted {
			t.Errorf("Step 6 - record %q has status %s", cs.Question, cs.CallStatus)
		}
		switch cs.Question {
		case bank[0]:
			if cs.Transcript == nil || *cs.Transcript != "John Smith" {
				t.Errorf("Step 6 - expected first transcript, got %v", cs.Transcript)
			}
		case bank[1]:
			if cs.Transcript == nil || *cs.Transcript != "Five years in retail" {
				t.Errorf("Step 6 - expected late transcript, got %v", cs.Transcript)
			}
		}
	}

	w = httptest.NewRecorder()
	sessionHandler.Stats(w, httptest.NewRequest("GET", "/sessions/stats", nil))
	var stats models.SessionStats
	testutil.AssertJSON(t, w, &stats)
	if stats.Total != 1 || stats.Completed != 1 {
		t.Errorf("Step 6 - unexpected stats %+v", stats)
	}
}
