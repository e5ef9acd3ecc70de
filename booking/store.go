/*
store.go - Persistence contract for record collections

PURPOSE:
  Defines the interface between the booking service and storage. State is
  three independent collections (hotels, customers, reservations), each an
  ordered sequence of records, read and written whole on every operation
  (read-modify-write, no partial update, no cross-collection transaction).

FAULT ABSORPTION CONTRACT:
  Storage faults never cross this boundary:
  - Load: a missing file, malformed content, or a wrong root shape degrades
    to an empty sequence; individual non-object elements are dropped. Every
    degradation is logged by the implementation, never returned.
  - Save: on failure the previous persisted content stays intact and the
    fault is logged. Save is atomic (write temp, then replace) so a crash
    mid-write never leaves a truncated collection behind.
  This is why neither method returns an error.

CONSISTENCY NOTE:
  There is no locking. Two concurrent writers can interleave load/save and
  over-commit a hotel; the design accepts this for single-user scope. A
  multi-writer deployment needs to serialize access per collection first.

IMPLEMENTATIONS:
  - store/jsonfile: JSON array per collection on disk (primary)
  - store/sqlite:   ordered JSON documents in SQLite
  - store/memory:   in-memory, for tests

SEE ALSO:
  - service.go: The only consumer of this interface
*/
package booking

import "context"

// Record is the raw key-value form of one persisted entity.
type Record map[string]any

// Collection names used by the service.
const (
	CollectionHotels       = "hotels"
	CollectionCustomers    = "customers"
	CollectionReservations = "reservations"
)

// RecordStore persists ordered record collections. See the fault-absorption
// contract above: Load and Save never report errors to the caller.
type RecordStore interface {
	// Load returns every valid record in the collection, in stored order.
	// Degrades to an empty slice on any storage fault.
	Load(ctx context.Context, collection string) []Record

	// Save replaces the collection's persisted content with exactly these
	// records, in order. On failure the previous content is left intact.
	Save(ctx context.Context, collection string, records []Record)
}

// CloneRecord returns a copy of a record deep enough for the flat entity
// records this system persists (scalar values only).
func CloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
