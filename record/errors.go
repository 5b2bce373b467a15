/*
errors.go - Centralized error types for record access

PURPOSE:
  All expected-failure types in one place. Callers branch with errors.Is
  or the Is* helpers; only genuinely exceptional conditions (identity
  provider unreachable) propagate as plain faults.

TAXONOMY:
  FieldErrors:     Validation failures, keyed by field. Recoverable.
  ErrUnauthorized: No resolved identity. Terminal for the session.
  ErrNotFound:     Id absent OR owned by someone else. The two cases are
                   deliberately indistinguishable so that probing ids
                   cannot reveal the existence of other users' records.
  ErrStoreFailure: Transport/backend fault. Recoverable by retry.

SEE ALSO:
  - repository.go: Produces these errors
*/
package record

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when no record matches id AND owner. A record
	// that exists under a different owner reports this same error.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned when no identity could be resolved.
	// It is produced before the store is touched.
	ErrUnauthorized = errors.New("no authenticated user")

	// ErrStoreFailure is returned when the record store itself failed.
	ErrStoreFailure = errors.New("record store failure")
)

// =============================================================================
// FIELD ERRORS - Validation results, one message per failing field
// =============================================================================

// FieldErrors maps a field name to a human-readable message. Validators
// populate it in a single pass so every failing field is reported at once.
// A nil FieldErrors means the draft is valid.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// StoreError wraps a backend fault with the operation that hit it.
// The underlying cause appears in Error() for logs; API boundaries must
// surface only a sanitized message.
type StoreError struct {
	Op    string // "select", "insert", "update", "delete"
	Table string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s on %s: %v", e.Op, e.Table, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return ErrStoreFailure
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error means "no such record for this caller".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether the error means the caller has no session.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRetryable reports whether the operation might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}

// IsValidation reports whether the error carries field-level messages.
func IsValidation(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}

// ValidationFields extracts the field->message map, or nil.
func ValidationFields(err error) FieldErrors {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
