// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (default: file:interview.db for sqlite)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - TwilioAccountSID, TwilioAuthToken, TwilioPhoneNumber: Gateway credentials
  - PublicURL: Base URL the gateway calls back on (required)
  - QuestionsPath: Question bank file (default: questions.json)
  - DefaultRegion: Region used to normalize local numbers (default: IN)
  - Voice: Voice for spoken prompts (default: Polly.Amy)
  - ValidateSignatures: Check X-Twilio-Signature on webhooks (default: true)
  - StoreTimeout: Bound on each session store call (default: 3s)
  - GatewayTimeout: Bound on each gateway API request (default: 5s)

# CLI Flags

	-p                   Server port
	-d                   Database URL
	-t                   Database type
	-public-url          Public base URL
	-twilio-sid          Twilio account SID
	-twilio-token        Twilio auth token
	-twilio-from         Caller ID for outbound calls
	-questions           Question bank path
	-region              Default phone region
	-voice               Prompt voice
	-validate-signatures true/false
	-store-timeout       Duration
	-gateway-timeout     Duration

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	PUBLIC_URL          → -public-url
	TWILIO_ACCOUNT_SID  → -twilio-sid
	TWILIO_AUTH_TOKEN   → -twilio-token
	TWILIO_PHONE_NUMBER → -twilio-from
	QUESTIONS_PATH      → -questions
	DEFAULT_REGION      → -region
	VOICE               → -voice
	VALIDATE_SIGNATURES → -validate-signatures
	STORE_TIMEOUT       → -store-timeout
	GATEWAY_TIMEOUT     → -gateway-timeout

CLI flags take precedence over environment variables. main loads an optional
.env file before parsing, so values there behave like real environment
variables.

# Validation

ParseFlags returns an error if:

  - PUBLIC_URL is missing
  - DATABASE_URL is missing for postgres
  - TWILIO_AUTH_TOKEN is missing while signature validation is on
  - a timeout or boolean cannot be parsed
*/
package cliparse
