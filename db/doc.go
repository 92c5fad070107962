// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and applies schema migrations.

# Connecting

Open selects the driver from the configured type:

	conn, err := db.Open(ctx, "sqlite", "file:interview.db")
	conn, err := db.Open(ctx, "postgres", "postgres://...")

SQLite uses modernc.org/sqlite (pure Go, no cgo) and is limited to one open
connection. PostgreSQL uses lib/pq.

# Migrations

Migrate runs the embedded goose migrations in migrations/:

	if err := db.Migrate(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Applied versions are tracked in goose_db_version, so repeated calls are
no-ops. The SQL is written to run unchanged on both dialects.

# Tables

	call_session: one row per (call_sid, step_question)

# Constraints

  - UNIQUE (call_sid, step_question): idempotent record creation
  - UNIQUE (recording_sid): one record per recording
  - transcript_status IN ('pending', 'completed', 'failed')

# Indexes

  - call_session.call_sid
  - call_session.call_status
  - call_session.created_at
*/
package db
