/*
Package jsonfile persists record collections as JSON arrays on disk.

PURPOSE:
  The primary RecordStore: one file per collection (<dir>/<name>.json),
  each file a JSON array of objects. Built to survive whatever it finds
  on disk: a damaged file costs the damaged data, never the process.

FAULT ABSORPTION (the booking.RecordStore contract):
  Load never fails. Missing file, empty file, malformed JSON, or a root
  that is not an array all degrade to an empty collection; array elements
  that are not objects are dropped individually. Every degradation is
  logged with the path and, for dropped elements, the index.

  Save never fails either. The array is serialized with stable key
  ordering, written to a temp file in the same directory, and renamed
  over the target, so a crash mid-write leaves the previous content in
  place. On any error the temp file is removed and the fault logged.

LAYOUT:
  data/
    hotels.json
    customers.json
    reservations.json

USAGE:
  store := jsonfile.New("./data", logger)
  svc := booking.NewService(store, logger)

SEE ALSO:
  - booking/store.go: The contract this implements
  - store/sqlite: Same contract over SQLite
*/
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/warp/reservation-engine/booking"
)

// Store is a directory of JSON array files, one per collection.
type Store struct {
	dir string
	log *logrus.Logger
}

// New creates a Store rooted at dir. The directory is created lazily on
// first use.
func New(dir string, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{dir: dir, log: log}
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// ensureFile creates the collection file with an empty array if missing.
func (s *Store) ensureFile(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.log.WithField("path", path).WithError(err).Error("cannot create data directory")
		return
	}
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		s.log.WithField("path", path).WithError(err).Error("cannot create data file")
	}
}

// Load reads the collection, dropping whatever cannot be understood.
func (s *Store) Load(_ context.Context, collection string) []booking.Record {
	path := s.path(collection)
	s.ensureFile(path)

	raw, err := os.ReadFile(path)
	if err != nil {
		s.log.WithField("path", path).WithError(err).Error("cannot read data file; using empty collection")
		return []booking.Record{}
	}

	// Tolerate a UTF-8 BOM left behind by editors.
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(raw)) == 0 {
		s.log.WithField("path", path).Error("empty data file; using empty collection")
		return []booking.Record{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var elements []any
	if err := dec.Decode(&elements); err != nil {
		s.log.WithField("path", path).WithError(err).Error("invalid JSON; using empty collection")
		return []booking.Record{}
	}

	// Keep only objects; drop anything else but keep going.
	records := make([]booking.Record, 0, len(elements))
	for idx, elem := range elements {
		obj, ok := elem.(map[string]any)
		if !ok {
			s.log.WithFields(logrus.Fields{
				"path":  path,
				"index": idx,
			}).Errorf("invalid element: expected object, got %T; skipping", elem)
			continue
		}
		records = append(records, booking.Record(obj))
	}
	return records
}

// Save atomically replaces the collection file. The previous content
// survives any failure.
func (s *Store) Save(_ context.Context, collection string, records []booking.Record) {
	path := s.path(collection)
	s.ensureFile(path)

	if records == nil {
		records = []booking.Record{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.log.WithField("path", path).WithError(err).Error("cannot serialize collection; keeping previous file")
		return
	}
	payload = append(payload, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), collection+"-*.tmp")
	if err != nil {
		s.log.WithField("path", path).WithError(err).Error("cannot create temp file; keeping previous file")
		return
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		s.discardTemp(tmpPath)
		s.log.WithField("path", path).WithError(err).Error("cannot write temp file; keeping previous file")
		return
	}
	if err := tmp.Close(); err != nil {
		s.discardTemp(tmpPath)
		s.log.WithField("path", path).WithError(err).Error("cannot close temp file; keeping previous file")
		return
	}
	if err := os.Rename(tmpPath, path); err != nil {
		s.discardTemp(tmpPath)
		s.log.WithField("path", path).WithError(err).Error("cannot replace data file; keeping previous file")
	}
}

func (s *Store) discardTemp(tmpPath string) {
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		s.log.WithField("path", tmpPath).WithError(err).Error("cannot clean up temp file")
	}
}
