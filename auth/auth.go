// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go/client"
)

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// recordNamespace scopes RecordID so ids never collide with other v5 UUIDs.
var recordNamespace = uuid.MustParse("6f1d2c8e-3b7a-5e4f-9a0b-2c4d6e8f0a1b")

// GenerateID creates a random UUID string
func GenerateID() string {
	return uuid.NewString()
}

// RecordID derives the id of the session record for one question of one call.
// The same (callSID, question) always yields the same id, so the id is known
// before the record is written and survives redelivery.
func RecordID(callSID, question string) string {
	return uuid.NewSHA1(recordNamespace, []byte(callSID+"\x00"+question)).String()
}

// ValidateTwilioSignature checks the X-Twilio-Signature header against the
// full callback URL and the POSTed form parameters.
func ValidateTwilioSignature(authToken, url string, params map[string]string, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}

	validator := client.NewRequestValidator(authToken)
	if !validator.Validate(url, params, signature) {
		return ErrInvalidSignature
	}
	return nil
}
