// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/seller-core/record"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps one table's records in a map. Safe for concurrent use.
// Like any Store, it is deliberately dumb: zero filter fields are simply
// not part of the predicate, and ownership enforcement lives a layer up.
type Memory[T record.Entity[T]] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func NewMemory[T record.Entity[T]]() *Memory[T] {
	return &Memory[T]{rows: make(map[string]T)}
}

func (m *Memory[T]) SelectOne(_ context.Context, f record.Filter) (T, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.rows {
		if matches(rec, f) {
			return rec, true, nil
		}
	}
	var zero T
	return zero, false, nil
}

func (m *Memory[T]) Select(_ context.Context, f record.Filter, ord record.Order) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []T
	for _, rec := range m.rows {
		if matches(rec, f) {
			result = append(result, rec)
		}
	}

	// Creation-time ordering, id as tiebreak for determinism.
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.RecordCreatedAt().Equal(b.RecordCreatedAt()) {
			if ord == record.CreatedAsc {
				return a.RecordCreatedAt().Before(b.RecordCreatedAt())
			}
			return a.RecordCreatedAt().After(b.RecordCreatedAt())
		}
		if ord == record.CreatedAsc {
			return a.RecordID() < b.RecordID()
		}
		return a.RecordID() > b.RecordID()
	})
	return result, nil
}

func (m *Memory[T]) Insert(_ context.Context, rec T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[rec.RecordID()] = rec
	return nil
}

func (m *Memory[T]) Update(_ context.Context, f record.Filter, rec T) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.rows {
		if matches(existing, f) {
			m.rows[id] = rec
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory[T]) Delete(_ context.Context, f record.Filter) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.rows {
		if matches(existing, f) {
			delete(m.rows, id)
			return true, nil
		}
	}
	return false, nil
}

// Len reports the number of stored rows. Test helper.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

func matches[T record.Entity[T]](rec T, f record.Filter) bool {
	if f.ID != "" && rec.RecordID() != f.ID {
		return false
	}
	if f.Owner != "" && rec.RecordOwner() != f.Owner {
		return false
	}
	return true
}
