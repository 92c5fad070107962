// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, "sqlite", "file:"+filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(ctx, conn, "sqlite"); err != nil {
			t.Fatalf("Migrate run %d failed: %v", i+1, err)
		}
	}

	now := time.Now().UTC()
	insert := `
		INSERT INTO call_session (id, call_sid, step_question, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := conn.Exec(insert, "a", "CA1", "Q1", now, now); err != nil {
		t.Fatalf("Failed to insert row: %v", err)
	}

	// (call_sid, step_question) is unique
	if _, err := conn.Exec(insert, "b", "CA1", "Q1", now, now); err == nil {
		t.Error("Expected unique violation for duplicate (call_sid, step_question)")
	}

	var status, transcriptStatus string
	err = conn.QueryRow("SELECT call_status, transcript_status FROM call_session WHERE id = $1", "a").
		Scan(&status, &transcriptStatus)
	if err != nil {
		t.Fatalf("Failed to read row: %v", err)
	}
	if status != "initiated" || transcriptStatus != "pending" {
		t.Errorf("Unexpected defaults: call_status=%s transcript_status=%s", status, transcriptStatus)
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "x"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}
