package db

import "errors"

var (
	// ErrDatabaseError wraps driver failures so callers can branch on a
	// single sentinel.
	ErrDatabaseError = errors.New("database error")
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate document")
)
