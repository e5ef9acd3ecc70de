/*
Package sqlite provides a SQLite-backed RecordStore.

PURPOSE:
  An alternative backend for deployments that prefer a single database
  file over a directory of JSON arrays. Each collection is stored as
  ordered rows of JSON documents, so the persisted shape stays the same
  as the jsonfile backend: an ordered sequence of objects, rewritten
  whole on every Save.

FAULT ABSORPTION:
  Implements the same contract as jsonfile: Load degrades to an empty
  collection (or drops individual undecodable rows) and Save keeps the
  previous content on failure, both with logged diagnostics. The rewrite
  in Save runs inside one database transaction, which gives the same
  all-or-nothing guarantee the jsonfile backend gets from rename.

WAL MODE:
  Opened with WAL so readers are not blocked during the rewrite.

USAGE:
  store, err := sqlite.New("./reservations.db", logger)
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - booking/store.go: Interface and contract
  - store/jsonfile: The primary backend
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/warp/reservation-engine/booking"
)

// Store implements booking.RecordStore over SQLite.
type Store struct {
	db  *sql.DB
	log *logrus.Logger
	mu  sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, log: log}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		collection TEXT NOT NULL,
		position   INTEGER NOT NULL,
		doc        TEXT NOT NULL,
		PRIMARY KEY (collection, position)
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the collection's records in stored order, dropping rows
// whose documents no longer decode as objects.
func (s *Store) Load(ctx context.Context, collection string) []booking.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, doc FROM records WHERE collection = ? ORDER BY position`, collection)
	if err != nil {
		s.log.WithField("collection", collection).WithError(err).Error("cannot query records; using empty collection")
		return []booking.Record{}
	}
	defer rows.Close()

	records := []booking.Record{}
	for rows.Next() {
		var position int
		var doc string
		if err := rows.Scan(&position, &doc); err != nil {
			s.log.WithField("collection", collection).WithError(err).Error("cannot scan record row; skipping")
			continue
		}

		dec := json.NewDecoder(strings.NewReader(doc))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			s.log.WithFields(logrus.Fields{
				"collection": collection,
				"position":   position,
			}).WithError(err).Error("invalid record document; skipping")
			continue
		}
		records = append(records, booking.Record(obj))
	}
	if err := rows.Err(); err != nil {
		s.log.WithField("collection", collection).WithError(err).Error("error iterating records; using partial collection")
	}
	return records
}

// Save rewrites the collection inside a single transaction. On any failure
// the transaction is rolled back and the previous rows remain.
func (s *Store) Save(ctx context.Context, collection string, records []booking.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log.WithField("collection", collection).WithError(err).Error("cannot begin rewrite; keeping previous records")
		return
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE collection = ?`, collection); err != nil {
		tx.Rollback()
		s.log.WithField("collection", collection).WithError(err).Error("cannot clear collection; keeping previous records")
		return
	}

	for position, rec := range records {
		doc, err := json.Marshal(rec)
		if err != nil {
			tx.Rollback()
			s.log.WithFields(logrus.Fields{
				"collection": collection,
				"position":   position,
			}).WithError(err).Error("cannot serialize record; keeping previous records")
			return
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (collection, position, doc) VALUES (?, ?, ?)`,
			collection, position, string(doc)); err != nil {
			tx.Rollback()
			s.log.WithFields(logrus.Fields{
				"collection": collection,
				"position":   position,
			}).WithError(err).Error("cannot insert record; keeping previous records")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		s.log.WithField("collection", collection).WithError(err).Error("cannot commit rewrite; keeping previous records")
	}
}
