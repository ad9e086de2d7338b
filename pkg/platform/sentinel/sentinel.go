package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors.
//
// These represent factual states about stored rows, not validation failures:
// - ErrNotFound: the row does not exist
// - ErrConflict: a uniqueness or foreign-key constraint rejected the write
// - ErrInvalidState: the row is in the wrong state for the requested operation
// - ErrUnavailable: the store is temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
