// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"sort"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("GenerateID() returned invalid UUID %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("GenerateID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestRecordID(t *testing.T) {
	a := RecordID("CA123", "What is your work experience?")
	b := RecordID("CA123", "What is your work experience?")
	if a != b {
		t.Errorf("RecordID not deterministic: %s != %s", a, b)
	}

	tests := []struct {
		name     string
		callSID  string
		question string
	}{
		{"different call", "CA999", "What is your work experience?"},
		{"different question", "CA123", "Why do you want to join our company?"},
		// Separator keeps ("ab","c") apart from ("a","bc")
		{"shifted boundary", "CA12", "3What is your work experience?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecordID(tt.callSID, tt.question); got == a {
				t.Errorf("RecordID(%q, %q) collided with base id", tt.callSID, tt.question)
			}
		})
	}

	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("RecordID returned invalid UUID: %v", err)
	}
	if parsed.Version() != 5 {
		t.Errorf("Expected version 5 UUID, got %d", parsed.Version())
	}
}

// sign computes a Twilio request signature: HMAC-SHA1 over the URL followed
// by each POST parameter name and value in sorted order.
func sign(token, url string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := url
	for _, k := range keys {
		data += k + params[k]
	}
	mac := hmac.New(sha1.New, []byte(token))
	mac.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidateTwilioSignature(t *testing.T) {
	token := "test-auth-token"
	url := "https://interview.example.com/voice/?q=1&name=there"
	params := map[string]string{"CallSid": "CA123", "From": "+919876543210"}
	valid := sign(token, url, params)

	tests := []struct {
		name      string
		token     string
		url       string
		params    map[string]string
		signature string
		wantErr   error
	}{
		{"valid signature", token, url, params, valid, nil},
		{"missing signature", token, url, params, "", ErrMissingSignature},
		{"wrong token", "other-token", url, params, valid, ErrInvalidSignature},
		{"tampered param", token, url, map[string]string{"CallSid": "CA999", "From": "+919876543210"}, valid, ErrInvalidSignature},
		{"tampered url", token, "https://interview.example.com/voice/?q=4&name=there", params, valid, ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTwilioSignature(tt.token, tt.url, tt.params, tt.signature)
			if err != tt.wantErr {
				t.Errorf("ValidateTwilioSignature() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
