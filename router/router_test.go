// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/voice-interview/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, &testutil.FakeGateway{}, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, &testutil.FakeGateway{}, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	expected := "voice-interview API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, &testutil.FakeGateway{}, testutil.GetTestConfig())

	// 400 and 404 are valid handler responses; 405 means no route
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/answer/"},
		{"POST", "/voice/"},
		{"GET", "/voice/"},
		{"POST", "/recording-status/"},
		{"POST", "/transcription/"},

		{"POST", "/calls"},
		{"GET", "/sessions"},
		{"GET", "/sessions/stats"},
		{"GET", "/sessions/some-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, &testutil.FakeGateway{}, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/sessions/some-id"},
		{"PUT", "/calls"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestStatsNotCapturedByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, &testutil.FakeGateway{}, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/sessions/stats", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"total":0`) {
		t.Errorf("Expected stats body, got %s", w.Body.String())
	}
}

func TestWebhookSignatureEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.ValidateSignatures = true
	mux := NewRouter(db, &testutil.FakeGateway{}, cfg)

	form := url.Values{"CallSid": {"CA1"}}
	req := testutil.MakeFormRequest("POST", "/voice/?q=0", form)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for unsigned webhook, got %d", w.Code)
	}

	// Operator routes are not gateway webhooks
	req = httptest.NewRequest("GET", "/sessions", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for operator route, got %d", w.Code)
	}
}

func TestWebhookFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, &testutil.FakeGateway{}, testutil.GetTestConfig())

	req := testutil.MakeFormRequest("POST", "/voice/?q=0&name=John", url.Values{"CallSid": {"CA1"}})
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Hello John") {
		t.Errorf("Expected greeting, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "error processing") {
		t.Error("Expected a normal document, got the apology")
	}
}

func TestTranscriptionFailureIsNotTwiML(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, &testutil.FakeGateway{}, testutil.GetTestConfig())
	db.Close()

	form := url.Values{"RecordingSid": {"RE1"}, "CallSid": {"CA1"}, "TranscriptionText": {"hello"}}
	req := testutil.MakeFormRequest("POST", "/transcription/", form)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	// A failed acknowledgement must let the gateway retry
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "<Response") {
		t.Errorf("Expected a bare error, got %s", w.Body.String())
	}
}
