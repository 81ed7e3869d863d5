// Package common defines shared constants and sentinel errors used across
// client and server layers of the todolist. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// ErrPersistence wraps every failure reported by the underlying store.
	ErrPersistence = errors.New("db error")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
)
