/*
store.go - Persistence interface for owner-keyed records

PURPOSE:
  Defines the interface between the domain logic and the record store.
  The store is a dumb collaborator: it matches equality filters and
  orders by creation time. It does NOT know who is asking.

KEY TYPES:
  Entity: What a storable record must expose (id, owner, created-at).
  Filter: Equality predicate on id and/or owner. Conjunctive.
  Order:  Creation-time ordering for listings.
  Store:  CRUD keyed by the concrete record type (one type per table).

OWNERSHIP:
  The store never enforces ownership. Every call that reaches a Store
  goes through the Repository, which conjoins the resolved caller's id
  into the Filter. A Store implementation must treat a zero Filter
  field as "not part of the predicate" and nothing more.

IMPLEMENTATIONS:
  - record/store/memory.go: In-memory, for tests and development
  - store/sqlite/sqlite.go: Production SQLite

SEE ALSO:
  - repository.go: Owner-scoped layer over Store
  - errors.go: Error taxonomy
*/
package record

import (
	"context"
	"time"
)

// =============================================================================
// ENTITY - What the store needs from a record
// =============================================================================

// Entity is implemented by storable record types. The type parameter is the
// implementing type itself, so the With* builders can return value copies.
type Entity[T any] interface {
	// RecordID returns the server-assigned id, or "" before insert.
	RecordID() string

	// RecordOwner returns the owning user's id.
	RecordOwner() string

	// RecordCreatedAt returns the server-assigned creation time.
	RecordCreatedAt() time.Time

	// WithID returns a copy with the id set.
	WithID(id string) T

	// WithOwner returns a copy with the owner set.
	WithOwner(owner string) T

	// WithCreatedAt returns a copy with the creation time set.
	WithCreatedAt(at time.Time) T
}

// Normalizer is optionally implemented by record types that carry derived
// fields. The Repository normalizes every row before it is written, so a
// caller that skips the validator cannot persist a desynchronized record.
type Normalizer[T any] interface {
	Normalize() T
}

// Patch applies a partial update to a record and returns the result.
// Applying the same patch twice yields the same record.
type Patch[T any] interface {
	Apply(rec T) T
}

// =============================================================================
// FILTER AND ORDER
// =============================================================================

// Filter is a conjunctive equality predicate. Zero-valued fields are not
// part of the predicate.
type Filter struct {
	ID    string
	Owner string
}

// Order selects creation-time ordering for listings.
type Order int

const (
	// CreatedDesc returns newest records first. The default everywhere.
	CreatedDesc Order = iota
	// CreatedAsc returns oldest records first.
	CreatedAsc
)

// =============================================================================
// STORE - One instance per table
// =============================================================================

// Store persists records of a single type (one type maps to one table).
// Implementations return transport/backend faults as plain errors; the
// Repository wraps them. Absence of a matching row is NOT an error at this
// layer: SelectOne reports it with ok=false, Update/Delete with matched=false.
type Store[T Entity[T]] interface {
	// SelectOne returns the single record matching the filter.
	SelectOne(ctx context.Context, f Filter) (rec T, ok bool, err error)

	// Select returns all records matching the filter in the given order.
	Select(ctx context.Context, f Filter, ord Order) ([]T, error)

	// Insert writes a fully-populated record.
	Insert(ctx context.Context, rec T) error

	// Update replaces the record matching the filter. The filter is the
	// mutation predicate itself: zero matched rows means nothing was written.
	Update(ctx context.Context, f Filter, rec T) (matched bool, err error)

	// Delete removes the record matching the filter.
	Delete(ctx context.Context, f Filter) (matched bool, err error)
}
