// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/voice-interview/cliparse"
	"github.com/danielhkuo/voice-interview/db"
	"github.com/danielhkuo/voice-interview/models"
)

// TestQuestions is the four-question bank used across handler tests
var TestQuestions = []string{
	"What is your full name?",
	"What is your work experience?",
	"What was your previous job role?",
	"Why do you want to join our company?",
}

// SetupTestDB opens a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, "sqlite", "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Migrate(ctx, conn, "sqlite"); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// WriteQuestions writes a JSON question bank to a temp file and returns its path
func WriteQuestions(t *testing.T, qs []string) string {
	t.Helper()

	data, err := json.Marshal(qs)
	if err != nil {
		t.Fatalf("Failed to encode questions: %v", err)
	}
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write questions: %v", err)
	}
	return path
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               3318,
		DatabaseType:       "sqlite",
		PublicURL:          "https://interview.example.com",
		TwilioAuthToken:    "test-auth-token",
		TwilioPhoneNumber:  "+15005550006",
		DefaultRegion:      "IN",
		Voice:              "Polly.Amy",
		ValidateSignatures: false,
		StoreTimeout:       time.Second,
		GatewayTimeout:     time.Second,
	}
}

// ErrGatewayDown is returned by a FakeGateway configured to fail
var ErrGatewayDown = errors.New("gateway unavailable")

// PlacedCall is one PlaceCall invocation seen by a FakeGateway
type PlacedCall struct {
	To          string
	CallbackURL string
}

// FakeGateway is an in-memory gateway. Zero value answers every fetch
// with empty data; set the Fail fields to simulate outages.
type FakeGateway struct {
	mu sync.Mutex

	NextCallSID    string
	CallStatus     string
	CallDuration   *int
	RecordingURL   string
	Transcripts    map[string]string
	FailPlace      bool
	FailFetch      bool
	FailTranscript bool

	Placed []PlacedCall
}

func (g *FakeGateway) PlaceCall(ctx context.Context, to, callbackURL string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Placed = append(g.Placed, PlacedCall{To: to, CallbackURL: callbackURL})
	if g.FailPlace {
		return "", ErrGatewayDown
	}
	if g.NextCallSID == "" {
		return "CAfake0000000000000000000000000001", nil
	}
	return g.NextCallSID, nil
}

func (g *FakeGateway) FetchCall(ctx context.Context, callSID string) (models.CallInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailFetch {
		return models.CallInfo{}, ErrGatewayDown
	}
	return models.CallInfo{Status: g.CallStatus, Duration: g.CallDuration}, nil
}

func (g *FakeGateway) FetchRecording(ctx context.Context, recordingSID string) (models.RecordingInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailFetch {
		return models.RecordingInfo{}, ErrGatewayDown
	}
	return models.RecordingInfo{URL: g.RecordingURL}, nil
}

func (g *FakeGateway) FetchTranscript(ctx context.Context, recordingSID string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailTranscript {
		return "", false, ErrGatewayDown
	}
	text, ok := g.Transcripts[recordingSID]
	return text, ok, nil
}

// PlacedCount returns how many calls were attempted
func (g *FakeGateway) PlacedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Placed)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form-encoded webhook request the way the gateway sends them
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertContains checks that the response body contains every fragment
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := w.Body.String()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("Expected body to contain %q. Body: %s", f, body)
		}
	}
}

// AssertNotContains checks that the response body contains none of the fragments
func AssertNotContains(t *testing.T, w *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := w.Body.String()
	for _, f := range fragments {
		if strings.Contains(body, f) {
			t.Errorf("Expected body not to contain %q. Body: %s", f, body)
		}
	}
}
