// Package localstore is the client-side state mirror: a small
// schema-versioned key-value store over sqlite. It replaces the ad hoc
// string-keyed browser storage of the old web client with one file under
// the state directory and explicit buckets (session, cart, vehicle, ...).
package localstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion is bumped whenever a bucket's value layout changes.
// Opening a store written by a newer client fails instead of silently
// misreading it.
const SchemaVersion = 1

var ErrNewerSchema = errors.New("localstore: state written by a newer client")

const (
	BucketSession  = "session"
	BucketVehicle  = "vehicle"
	BucketCart     = "cart"
	BucketCheckout = "checkout"
	BucketWishlist = "wishlist"
)

type Store struct {
	mu sync.Mutex
	db *sql.DB

	path string
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create state dir: %w", err)
	}

	path := filepath.Join(dir, "carfixit.db")
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("localstore: open %s: %w", path, err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS meta (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS kv (
		bucket TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (bucket, key)
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("localstore: init schema: %w", err)
	}

	var raw string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE name = 'schema_version'`).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(
			`INSERT INTO meta (name, value) VALUES ('schema_version', ?)`,
			fmt.Sprint(SchemaVersion),
		)
		return err
	case err != nil:
		return fmt.Errorf("localstore: read schema version: %w", err)
	}

	var have int
	if _, err := fmt.Sscan(raw, &have); err != nil {
		return fmt.Errorf("localstore: bad schema version %q: %w", raw, err)
	}
	if have > SchemaVersion {
		return fmt.Errorf("%w: have v%d, understand v%d", ErrNewerSchema, have, SchemaVersion)
	}
	// have < SchemaVersion: migrations go here when v2 exists.
	return nil
}

func (s *Store) Get(bucket, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value []byte
	err := s.db.QueryRow(
		`SELECT value FROM kv WHERE bucket = ? AND key = ?`, bucket, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("localstore: get %s/%s: %w", bucket, key, err)
	}
	return value, true, nil
}

func (s *Store) Put(bucket, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO kv (bucket, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (bucket, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		bucket, key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("localstore: put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *Store) Delete(bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM kv WHERE bucket = ? AND key = ?`, bucket, key); err != nil {
		return fmt.Errorf("localstore: delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *Store) Keys(bucket string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT key FROM kv WHERE bucket = ? ORDER BY key`, bucket)
	if err != nil {
		return nil, fmt.Errorf("localstore: keys %s: %w", bucket, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
