package service

import "fmt"

// ValidationError flags missing or malformed caller input. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "validation: " + e.Msg }

// NotFoundError flags a reference to a category or transaction that
// does not exist. No mutation happens.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Kind, e.ID) }

// UnsupportedFormatError flags an unknown bank type or a structurally
// malformed CSV. The whole batch is aborted.
type UnsupportedFormatError struct {
	Err error
}

func (e *UnsupportedFormatError) Error() string { return "unsupported format: " + e.Err.Error() }
func (e *UnsupportedFormatError) Unwrap() error { return e.Err }

// StoreError wraps a persistence failure. Ingestion and category
// creation treat it as fatal; assignment learning and backfill degrade
// instead (see the services).
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "store: " + e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }
