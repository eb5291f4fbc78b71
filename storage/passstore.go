// Package storage keeps a local history of subscription passes so
// repeated invocations can be compared and reported without any remote
// state.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/yairfalse/virta/types"
)

// Bucket names in bbolt
var (
	bucketPasses = []byte("passes")
	bucketMeta   = []byte("meta")
)

var keySequence = []byte("sequence")

// PassRecord summarizes one completed planning pass
type PassRecord struct {
	Sequence  int64            `json:"sequence"`
	Timestamp time.Time        `json:"timestamp"`
	Service   string           `json:"service"`
	Stage     string           `json:"stage"`
	Planned   int              `json:"planned"`
	Skipped   int              `json:"skipped"`
	Warnings  []string         `json:"warnings,omitempty"`
	Decisions []types.Decision `json:"decisions,omitempty"`
}

// PassStore persists pass records in a local bbolt database
type PassStore struct {
	mu sync.Mutex
	db *bbolt.DB
}

// Open creates or opens a pass store in the specified directory
func Open(dir string) (*PassStore, error) {
	path := filepath.Join(dir, "virta.db")

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketPasses, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PassStore{db: db}, nil
}

// Close closes the underlying database
func (s *PassStore) Close() error {
	return s.db.Close()
}

// RecordPass appends a pass record, assigning the next sequence number
func (s *PassStore) RecordPass(record PassRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sequence int64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		sequence = s.nextSequence(tx)
		record.Sequence = sequence
		if record.Timestamp.IsZero() {
			record.Timestamp = time.Now()
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal pass record: %w", err)
		}

		if err := tx.Bucket(bucketPasses).Put(sequenceKey(sequence), data); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keySequence, sequenceKey(sequence))
	})
	if err != nil {
		return 0, err
	}

	return sequence, nil
}

// ListPasses returns every recorded pass in sequence order
func (s *PassStore) ListPasses() ([]PassRecord, error) {
	var records []PassRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPasses).ForEach(func(_, value []byte) error {
			var record PassRecord
			if err := json.Unmarshal(value, &record); err != nil {
				return fmt.Errorf("failed to unmarshal pass record: %w", err)
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// LastPass returns the most recent pass record, or false when the
// store is empty
func (s *PassStore) LastPass() (PassRecord, bool, error) {
	var record PassRecord
	var found bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		key, value := tx.Bucket(bucketPasses).Cursor().Last()
		if key == nil {
			return nil
		}
		found = true
		return json.Unmarshal(value, &record)
	})
	if err != nil {
		return PassRecord{}, false, err
	}

	return record, found, nil
}

// nextSequence reads and increments the stored sequence counter
func (s *PassStore) nextSequence(tx *bbolt.Tx) int64 {
	current := tx.Bucket(bucketMeta).Get(keySequence)
	if current == nil {
		return 1
	}
	return int64(binary.BigEndian.Uint64(current)) + 1
}

// sequenceKey encodes a sequence number as a sortable key
func sequenceKey(sequence int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(sequence)) // #nosec G115 -- sequence is never negative
	return key
}
