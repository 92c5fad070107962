// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gateway

import (
	"context"
	"errors"
	"testing"
	"time"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *int
	}{
		{"nil", nil, nil},
		{"empty", strp(""), nil},
		{"malformed", strp("12s"), nil},
		{"zero", strp("0"), intp(0)},
		{"value", strp("42"), intp(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seconds(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("seconds() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("seconds() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestTwilioCancelledContext(t *testing.T) {
	tw := NewTwilio("ACtest", "token", "+15005550006", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := tw.FetchTranscript(ctx, "RE1")
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *gateway.Error, got %v", err)
	}
	if gwErr.Op != "fetch_transcript" {
		t.Errorf("Op = %q, want fetch_transcript", gwErr.Op)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestPlaceCallWithoutCallerID(t *testing.T) {
	tw := NewTwilio("ACtest", "token", "", time.Second)

	_, err := tw.PlaceCall(context.Background(), "+919876543210", "https://example.com/answer/")
	var gwErr *Error
	if !errors.As(err, &gwErr) || gwErr.Op != "place_call" {
		t.Fatalf("expected place_call gateway error, got %v", err)
	}
}
