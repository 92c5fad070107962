// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voice interview server.

The server runs automated phone interviews: it places or receives a call
through Twilio, asks a fixed list of questions, records each spoken answer,
and tracks each call's progress in the database.

# Starting the Server

	PUBLIC_URL=https://example.ngrok.app TWILIO_ACCOUNT_SID=AC... TWILIO_AUTH_TOKEN=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -public-url https://example.ngrok.app

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - PUBLIC_URL (-public-url): base URL the gateway calls back on
  - TWILIO_AUTH_TOKEN (-twilio-token): required while signatures are validated

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:interview.db)
  - TWILIO_ACCOUNT_SID, TWILIO_PHONE_NUMBER: needed to place outbound calls
  - QUESTIONS_PATH (-questions): JSON or YAML question list
  - DEFAULT_REGION (-region): region for numbers without a country code (IN)
  - VOICE (-voice), STORE_TIMEOUT, GATEWAY_TIMEOUT, VALIDATE_SIGNATURES

# Architecture

  - engine: call progression and recording reconciliation
  - session: call session records
  - gateway: Twilio client and TwiML rendering
  - handlers, router, middleware: HTTP surface
  - questions, phone, auth, db, cliparse, models: supporting packages

The interviewctl command (cmd/interviewctl) talks to the operator API.
*/
package main
