// Package seenstore keeps a small on-disk ledger of record keys
// already exported by earlier runs, so repeated fetches over
// overlapping windows can skip known records.
package seenstore

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var bucketSeen = []byte("seen")

// Store is a bbolt-backed set of record keys.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if missing) the store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open seen store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSeen)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init seen store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Seen reports whether the key was marked before.
func (s *Store) Seen(key string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketSeen).Get([]byte(key)) != nil
		return nil
	})
	return found, err
}

// FilterNew returns the subset of keys not marked before, in input
// order.
func (s *Store) FilterNew(keys []string) ([]string, error) {
	var fresh []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeen)
		for _, k := range keys {
			if b.Get([]byte(k)) == nil {
				fresh = append(fresh, k)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

// Mark records the keys in one batch update.
func (s *Store) Mark(keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeen)
		for _, k := range keys {
			if err := b.Put([]byte(k), []byte{1}); err != nil {
				return err
			}
		}
		return nil
	})
}
