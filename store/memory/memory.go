// Package memory provides an in-memory RecordStore (for testing/dev).
package memory

import (
	"context"
	"sync"

	"github.com/warp/reservation-engine/booking"
)

// =============================================================================
// MEMORY STORE - In-memory implementation of booking.RecordStore
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	collections map[string][]booking.Record
}

func New() *Store {
	return &Store{collections: make(map[string][]booking.Record)}
}

// Load returns a copy of the collection so callers cannot mutate stored state.
func (m *Store) Load(_ context.Context, collection string) []booking.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.collections[collection]
	result := make([]booking.Record, len(stored))
	for i, rec := range stored {
		result[i] = booking.CloneRecord(rec)
	}
	return result
}

// Save replaces the collection. The memory store has no failure mode, so the
// absorb-and-log contract is trivially satisfied.
func (m *Store) Save(_ context.Context, collection string, records []booking.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]booking.Record, len(records))
	for i, rec := range records {
		stored[i] = booking.CloneRecord(rec)
	}
	m.collections[collection] = stored
}
