// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gateway

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/danielhkuo/voice-interview/models"
)

const apiBaseURL = "https://api.twilio.com"

// Twilio is the Gateway backed by the Twilio REST API.
type Twilio struct {
	rest *twilio.RestClient
	from string
}

// NewTwilio builds a client whose every request is bounded by timeout.
func NewTwilio(accountSID, authToken, from string, timeout time.Duration) *Twilio {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	if timeout > 0 {
		rest.SetTimeout(timeout)
	}
	return &Twilio{rest: rest, from: from}
}

func (t *Twilio) PlaceCall(ctx context.Context, to, callbackURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Op: "place_call", Err: err}
	}
	if t.from == "" {
		return "", &Error{Op: "place_call", Err: errors.New("no caller ID configured")}
	}

	params := &twilioApi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetUrl(callbackURL)

	call, err := t.rest.Api.CreateCall(params)
	if err != nil {
		return "", &Error{Op: "place_call", Err: err}
	}
	if call.Sid == nil || *call.Sid == "" {
		return "", &Error{Op: "place_call", Err: errors.New("response has no call sid")}
	}
	return *call.Sid, nil
}

func (t *Twilio) FetchCall(ctx context.Context, callSID string) (models.CallInfo, error) {
	if err := ctx.Err(); err != nil {
		return models.CallInfo{}, &Error{Op: "fetch_call", Err: err}
	}

	call, err := t.rest.Api.FetchCall(callSID, &twilioApi.FetchCallParams{})
	if err != nil {
		return models.CallInfo{}, &Error{Op: "fetch_call", Err: err}
	}

	var info models.CallInfo
	if call.Status != nil {
		info.Status = *call.Status
	}
	info.Duration = seconds(call.Duration)
	return info, nil
}

func (t *Twilio) FetchRecording(ctx context.Context, recordingSID string) (models.RecordingInfo, error) {
	if err := ctx.Err(); err != nil {
		return models.RecordingInfo{}, &Error{Op: "fetch_recording", Err: err}
	}

	rec, err := t.rest.Api.FetchRecording(recordingSID, &twilioApi.FetchRecordingParams{})
	if err != nil {
		return models.RecordingInfo{}, &Error{Op: "fetch_recording", Err: err}
	}

	var info models.RecordingInfo
	if rec.Uri != nil {
		// The API returns the JSON resource path; the audio lives beside it
		info.URL = apiBaseURL + strings.TrimSuffix(*rec.Uri, ".json")
	}
	info.Duration = seconds(rec.Duration)
	return info, nil
}

func (t *Twilio) FetchTranscript(ctx context.Context, recordingSID string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, &Error{Op: "fetch_transcript", Err: err}
	}

	list, err := t.rest.Api.ListRecordingTranscription(recordingSID, &twilioApi.ListRecordingTranscriptionParams{})
	if err != nil {
		return "", false, &Error{Op: "fetch_transcript", Err: err}
	}
	for _, tr := range list {
		if tr.TranscriptionText != nil && *tr.TranscriptionText != "" {
			return *tr.TranscriptionText, true, nil
		}
	}
	return "", false, nil
}

// seconds parses the API's string durations; missing or malformed is nil.
func seconds(s *string) *int {
	if s == nil {
		return nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil
	}
	return &n
}
