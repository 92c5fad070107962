// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session persists per-question call session records.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/voice-interview/auth"
	"github.com/danielhkuo/voice-interview/models"
)

const sessionColumns = `
	id, call_sid, phone_number, step_question, call_status,
	recording_sid, recording_url, recording_duration, call_duration,
	transcript, transcript_status, created_at, updated_at`

// Store persists call session records.
type Store struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

// NewStore returns a Store that bounds every operation by timeout.
// A zero timeout leaves the caller's context untouched.
func NewStore(db *sql.DB, timeout time.Duration) *Store {
	return &Store{
		db:      db,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NewRecord describes a record to create if its (CallSID, Question) key is free.
type NewRecord struct {
	ID          string
	CallSID     string
	PhoneNumber string
	Question    string
	CallStatus  string
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	CallSID string
	Status  string
	Limit   int
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// GetOrCreate inserts rec unless a record with the same (CallSID, Question)
// already exists, and returns the stored record. created is true only for
// the call that performed the insert.
func (s *Store) GetOrCreate(ctx context.Context, rec NewRecord) (models.CallSession, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if rec.ID == "" {
		rec.ID = auth.RecordID(rec.CallSID, rec.Question)
	}
	now := s.now()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO call_session (id, call_sid, phone_number, step_question, call_status, transcript_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT DO NOTHING
	`, rec.ID, rec.CallSID, rec.PhoneNumber, rec.Question, rec.CallStatus, models.TranscriptPending, now, now)
	if err != nil {
		return models.CallSession{}, false, storageErr("get_or_create", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.CallSession{}, false, storageErr("get_or_create", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+`
		FROM call_session
		WHERE call_sid = $1 AND step_question = $2
	`, rec.CallSID, rec.Question)
	cs, err := scanSession(row)
	if err != nil {
		return models.CallSession{}, false, storageErr("get_or_create", err)
	}

	return cs, n == 1, nil
}

// CompleteCall marks every record of the call as completed.
// Records already completed are left alone, so repeats change nothing.
func (s *Store) CompleteCall(ctx context.Context, callSID string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE call_session
		SET call_status = $1, updated_at = $2
		WHERE call_sid = $3 AND call_status <> $1
	`, models.CallStatusCompleted, s.now(), callSID)
	if err != nil {
		return 0, storageErr("complete_call", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("complete_call", err)
	}
	return n, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (models.CallSession, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM call_session WHERE id = $1`, id)
	cs, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CallSession{}, notFound("get")
	}
	if err != nil {
		return models.CallSession{}, storageErr("get", err)
	}
	return cs, nil
}

// ListByCall returns all records of a call, oldest first.
func (s *Store) ListByCall(ctx context.Context, callSID string) ([]models.CallSession, error) {
	return s.List(ctx, Filter{CallSID: callSID})
}

// List returns records matching f. Records of a single call are ordered
// oldest first; unfiltered listings are newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.CallSession, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var where []string
	var args []any
	if f.CallSID != "" {
		args = append(args, f.CallSID)
		where = append(where, fmt.Sprintf("call_sid = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("call_status = $%d", len(args)))
	}

	query := `SELECT ` + sessionColumns + ` FROM call_session`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.CallSID != "" {
		query += " ORDER BY created_at ASC, id ASC"
	} else {
		query += " ORDER BY created_at DESC, id ASC"
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer rows.Close()

	sessions := []models.CallSession{}
	for rows.Next() {
		cs, err := scanSession(rows)
		if err != nil {
			return nil, storageErr("list", err)
		}
		sessions = append(sessions, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", err)
	}
	return sessions, nil
}

// AttachRecording stores recording and call details on a record. A call
// already marked completed keeps that status.
//
// If another record (a transcript placeholder) already holds the recording
// sid, its transcript is copied onto this record and the placeholder
// releases the sid.
func (s *Store) AttachRecording(ctx context.Context, id string, u models.RecordingUpdate) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("attach_recording", err)
	}
	defer tx.Rollback()

	now := s.now()

	var otherID string
	var otherTranscript *string
	err = tx.QueryRowContext(ctx, `
		SELECT id, transcript FROM call_session
		WHERE recording_sid = $1 AND id <> $2
	`, u.RecordingSID, id).Scan(&otherID, &otherTranscript)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, `
			UPDATE call_session SET recording_sid = NULL, updated_at = $1 WHERE id = $2
		`, now, otherID); err != nil {
			return storageErr("attach_recording", err)
		}
		if otherTranscript != nil {
			if _, err := tx.ExecContext(ctx, `
				UPDATE call_session
				SET transcript = $1, transcript_status = $2
				WHERE id = $3 AND transcript IS NULL
			`, *otherTranscript, models.TranscriptCompleted, id); err != nil {
				return storageErr("attach_recording", err)
			}
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return storageErr("attach_recording", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE call_session
		SET recording_sid = $1,
		    recording_url = COALESCE($2, recording_url),
		    recording_duration = COALESCE($3, recording_duration),
		    call_status = CASE WHEN call_status = $8 THEN call_status ELSE COALESCE($4, call_status) END,
		    call_duration = COALESCE($5, call_duration),
		    updated_at = $6
		WHERE id = $7
	`, u.RecordingSID, u.RecordingURL, u.RecordingDuration, u.CallStatus, u.CallDuration, now, id, models.CallStatusCompleted)
	if err != nil {
		return storageErr("attach_recording", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("attach_recording", err)
	}
	if n == 0 {
		return notFound("attach_recording")
	}

	if err := tx.Commit(); err != nil {
		return storageErr("attach_recording", err)
	}
	return nil
}

// SetTranscript records a transcript fetch outcome. A completed transcript
// is never downgraded to pending or failed.
func (s *Store) SetTranscript(ctx context.Context, id string, u models.TranscriptUpdate) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE call_session
		SET transcript = COALESCE($1, transcript),
		    transcript_status = CASE
		        WHEN transcript_status = $2 AND $3 <> $2 THEN transcript_status
		        ELSE $3
		    END,
		    updated_at = $4
		WHERE id = $5
	`, u.Text, models.TranscriptCompleted, u.Status, s.now(), id)
	if err != nil {
		return storageErr("set_transcript", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("set_transcript", err)
	}
	if n == 0 {
		return notFound("set_transcript")
	}
	return nil
}

// UpsertTranscript finds the record holding recordingSID and stores the
// transcript on it, creating a placeholder record when none exists yet.
func (s *Store) UpsertTranscript(ctx context.Context, recordingSID, callSID, recordingURL, text string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, storageErr("upsert_transcript", err)
	}
	defer tx.Rollback()

	now := s.now()
	label := PlaceholderQuestion(recordingSID)

	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM call_session WHERE recording_sid = $1`, recordingSID).Scan(&existingID)
	created := false
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// A placeholder joins its call in whatever state the call is in
		status := models.CallStatusInProgress
		var done int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM call_session WHERE call_sid = $1 AND call_status = $2
		`, callSID, models.CallStatusCompleted).Scan(&done); err != nil {
			return false, storageErr("upsert_transcript", err)
		}
		if done > 0 {
			status = models.CallStatusCompleted
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO call_session (
				id, call_sid, phone_number, step_question, call_status,
				recording_sid, recording_url, transcript, transcript_status, created_at, updated_at
			)
			VALUES ($1, $2, '', $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT DO NOTHING
		`, auth.GenerateID(), callSID, label, status,
			recordingSID, nullable(recordingURL), text, models.TranscriptCompleted, now, now)
		if err != nil {
			return false, storageErr("upsert_transcript", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, storageErr("upsert_transcript", err)
		}
		created = n == 1
	case err != nil:
		return false, storageErr("upsert_transcript", err)
	}

	if !created {
		// Either the recording is already claimed, or an earlier placeholder
		// for it lost the sid to the question record it was merged into.
		if _, err := tx.ExecContext(ctx, `
			UPDATE call_session
			SET transcript = $1,
			    transcript_status = $2,
			    recording_url = COALESCE(recording_url, $3),
			    updated_at = $4
			WHERE recording_sid = $5 OR (call_sid = $6 AND step_question = $7)
		`, text, models.TranscriptCompleted, nullable(recordingURL), now, recordingSID, callSID, label); err != nil {
			return false, storageErr("upsert_transcript", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, storageErr("upsert_transcript", err)
	}
	return created, nil
}

// Stats counts distinct calls overall and by status.
func (s *Store) Stats(ctx context.Context) (models.SessionStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var stats models.SessionStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT call_sid),
		       COUNT(DISTINCT CASE WHEN call_status = $1 THEN call_sid END),
		       COUNT(DISTINCT CASE WHEN call_status = $2 THEN call_sid END)
		FROM call_session
	`, models.CallStatusCompleted, models.CallStatusInProgress).Scan(&stats.Total, &stats.Completed, &stats.InProgress)
	if err != nil {
		return models.SessionStats{}, storageErr("stats", err)
	}
	return stats, nil
}

// PlaceholderQuestion is the label of a record created by a transcript that
// arrived before any question record claimed its recording.
func PlaceholderQuestion(recordingSID string) string {
	return models.QuestionAutoTranscribe + " (" + recordingSID + ")"
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (models.CallSession, error) {
	var cs models.CallSession
	err := row.Scan(
		&cs.ID, &cs.CallSID, &cs.PhoneNumber, &cs.Question, &cs.CallStatus,
		&cs.RecordingSID, &cs.RecordingURL, &cs.RecordingDuration, &cs.CallDuration,
		&cs.Transcript, &cs.TranscriptStatus, &cs.CreatedAt, &cs.UpdatedAt,
	)
	return cs, err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
