// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure so callers can decide whether to continue.
type Kind int

const (
	// KindStorage is any database failure, including timeouts.
	KindStorage Kind = iota + 1
	// KindNotFound means the addressed record does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

var ErrNotFound = errors.New("session record not found")

// Error is returned by every Store method.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("session %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a KindNotFound store error.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindNotFound
}

func storageErr(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

func notFound(op string) error {
	return &Error{Kind: KindNotFound, Op: op, Err: ErrNotFound}
}
