// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides record identifiers and webhook signature checks.

# Identifiers

GenerateID returns a random UUID, used for records that have no natural key:

	id := auth.GenerateID()

RecordID derives a name-based (v5) UUID from a call and a question:

	id := auth.RecordID(callSID, question)

Because the id is a pure function of the record's natural key, the interview
flow can put it in a recording callback URL before (or without) writing the
record, and a redelivered callback produces the same id.

# Webhook Signatures

The gateway signs every webhook with X-Twilio-Signature: an HMAC-SHA1 of the
full request URL followed by the sorted POST parameters, keyed by the account
auth token.

	err := auth.ValidateTwilioSignature(token, fullURL, formParams, signature)

Returns ErrMissingSignature when the header is empty and ErrInvalidSignature
when it does not match. The middleware package wraps this for routes.
*/
package auth
