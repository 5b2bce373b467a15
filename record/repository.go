/*
repository.go - Owner-scoped mediation between callers and the Store

PURPOSE:
  Every read and write of seller data goes through here. The Repository
  resolves the acting user on EVERY operation and conjoins their id into
  the store filter, so ownership scoping is auditable at each call site
  rather than hidden in ambient session state.

OWNERSHIP IS PART OF EXISTENCE:
  A record that exists under a different owner is reported as ErrNotFound,
  exactly like a record that does not exist at all. Update and Delete use
  the compound (id AND owner) filter as the mutation predicate itself, so
  a forged id belonging to someone else matches zero rows. Do not "improve"
  this into an Unauthorized response: distinguishing the two would let a
  caller probe for the existence of other users' records.

STAMPING:
  Insert stamps id, owner and created-at server-side. Whatever the caller
  put in those fields is discarded; the owner is always the resolved
  caller, never a client-supplied value.

NORMALIZATION:
  Rows are normalized (derived fields recomputed) before every write.
  See Normalizer in store.go.

SEE ALSO:
  - store.go: The dumb persistence interface underneath
  - identity/: Resolution of the acting user
*/
package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/seller-core/identity"
)

// Repository mediates all access to one table's records, scoped to the
// resolved caller.
type Repository[T Entity[T]] struct {
	table string
	store Store[T]
	ids   *identity.Resolver
	log   *zap.Logger

	// Overridable for tests.
	now   func() time.Time
	newID func() string
}

// NewRepository creates an owner-scoped repository over store. The table
// name is used only for logs and error context.
func NewRepository[T Entity[T]](table string, store Store[T], ids *identity.Resolver, log *zap.Logger) *Repository[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository[T]{
		table: table,
		store: store,
		ids:   ids,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// owner resolves the acting user, failing closed before the store is touched.
func (r *Repository[T]) owner(ctx context.Context, op string) (string, error) {
	uid, err := r.ids.Resolve(ctx)
	if err != nil {
		if errors.Is(err, identity.ErrUnauthenticated) {
			r.log.Warn("unauthenticated record access denied",
				zap.String("table", r.table), zap.String("op", op))
			return "", fmt.Errorf("%s on %s: %w", op, r.table, ErrUnauthorized)
		}
		// Provider unreachable: a genuine fault, not an auth decision.
		return "", fmt.Errorf("resolve caller for %s on %s: %w", op, r.table, err)
	}
	return string(uid), nil
}

// FetchOne returns the caller's record with the given id.
// Records owned by anyone else are ErrNotFound.
func (r *Repository[T]) FetchOne(ctx context.Context, id string) (T, error) {
	var zero T
	owner, err := r.owner(ctx, "fetch")
	if err != nil {
		return zero, err
	}

	rec, ok, err := r.store.SelectOne(ctx, Filter{ID: id, Owner: owner})
	if err != nil {
		return zero, &StoreError{Op: "select", Table: r.table, Cause: err}
	}
	if !ok {
		return zero, ErrNotFound
	}
	return rec, nil
}

// FetchAll returns every record the caller owns, newest first.
// A caller with no records gets an empty slice, not an error.
func (r *Repository[T]) FetchAll(ctx context.Context) ([]T, error) {
	return r.FetchAllOrdered(ctx, CreatedDesc)
}

// FetchAllOrdered is FetchAll with explicit ordering.
func (r *Repository[T]) FetchAllOrdered(ctx context.Context, ord Order) ([]T, error) {
	owner, err := r.owner(ctx, "list")
	if err != nil {
		return nil, err
	}

	recs, err := r.store.Select(ctx, Filter{Owner: owner}, ord)
	if err != nil {
		return nil, &StoreError{Op: "select", Table: r.table, Cause: err}
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// Insert writes a new record owned by the caller. Id, owner and creation
// time are stamped here; client-supplied values for them are discarded.
func (r *Repository[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	owner, err := r.owner(ctx, "insert")
	if err != nil {
		return zero, err
	}

	rec = rec.WithID(r.newID()).WithOwner(owner).WithCreatedAt(r.now().UTC())
	rec = normalize(rec)

	if err := r.store.Insert(ctx, rec); err != nil {
		return zero, &StoreError{Op: "insert", Table: r.table, Cause: err}
	}
	r.log.Debug("record inserted",
		zap.String("table", r.table), zap.String("id", rec.RecordID()))
	return rec, nil
}

// Update applies patch to the caller's record with the given id and returns
// the persisted result. The compound (id AND owner) filter is the write
// predicate: a matching id under another owner updates zero rows and
// reports ErrNotFound, leaving that record untouched.
func (r *Repository[T]) Update(ctx context.Context, id string, patch Patch[T]) (T, error) {
	var zero T
	owner, err := r.owner(ctx, "update")
	if err != nil {
		return zero, err
	}

	f := Filter{ID: id, Owner: owner}
	current, ok, err := r.store.SelectOne(ctx, f)
	if err != nil {
		return zero, &StoreError{Op: "select", Table: r.table, Cause: err}
	}
	if !ok {
		return zero, ErrNotFound
	}

	next := normalize(patch.Apply(current))
	// Identity fields are not patchable.
	next = next.
		WithID(current.RecordID()).
		WithOwner(current.RecordOwner()).
		WithCreatedAt(current.RecordCreatedAt())

	matched, err := r.store.Update(ctx, f, next)
	if err != nil {
		return zero, &StoreError{Op: "update", Table: r.table, Cause: err}
	}
	if !matched {
		// Row vanished between read and write. Same outcome as never there.
		return zero, ErrNotFound
	}
	return next, nil
}

// Delete removes the caller's record with the given id.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	owner, err := r.owner(ctx, "delete")
	if err != nil {
		return err
	}

	matched, err := r.store.Delete(ctx, Filter{ID: id, Owner: owner})
	if err != nil {
		return &StoreError{Op: "delete", Table: r.table, Cause: err}
	}
	if !matched {
		return ErrNotFound
	}
	r.log.Debug("record deleted", zap.String("table", r.table), zap.String("id", id))
	return nil
}

func normalize[T Entity[T]](rec T) T {
	if n, ok := any(rec).(Normalizer[T]); ok {
		return n.Normalize()
	}
	return rec
}
