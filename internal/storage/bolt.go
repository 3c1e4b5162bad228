package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	bbolt "go.etcd.io/bbolt"
)

// BoltStore keeps records as JSON assets in a single bbolt bucket. Reads are
// served from a cache populated at open; writes go through to the database.
type BoltStore[T ValidatingSpec] struct {
	db      *bbolt.DB
	bucket  []byte
	records map[string]T

	mu sync.RWMutex
}

// OpenBoltStore opens or creates the database file at path and loads every
// record in bucket.
func OpenBoltStore[T ValidatingSpec](path string, bucket string) (*BoltStore[T], error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt db %s: %w", path, err)
	}

	s := &BoltStore[T]{
		db:      db,
		bucket:  []byte(bucket),
		records: map[string]T{},
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bucket %q: %w", bucket, err)
	}

	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *BoltStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			asset := &Asset[T]{}
			if err := json.Unmarshal(v, asset); err != nil {
				return fmt.Errorf("unmarshalling %s: %w", k, err)
			}
			if err := asset.Validate(); err != nil {
				return fmt.Errorf("validating %s: %w", k, err)
			}
			s.records[string(k)] = asset.Spec
			return nil
		})
	})
}

func (s *BoltStore[T]) Save(id string, o T) error {
	if !Identifier(id).Valid() {
		return fmt.Errorf("invalid record id %q", id)
	}

	data, err := json.Marshal(&Asset[T]{
		Version:    1,
		Identifier: Identifier(id),
		Spec:       o,
	})
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(id), data)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", id, err)
	}

	s.records[id] = o
	return nil
}

func (s *BoltStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *BoltStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}

// Close closes the underlying database.
func (s *BoltStore[T]) Close() error {
	return s.db.Close()
}
