// Package cache stores compiled HTML keyed by source and render settings.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketHTML  = "html"
	bucketOrder = "order"
)

// DefaultMaxEntries bounds the cache when Open is given a non-positive limit.
const DefaultMaxEntries = 1024

// Store is a bbolt-backed cache of compiled documents. It holds at most
// maxEntries documents; the oldest insertions are evicted first.
type Store struct {
	db         *bolt.DB
	maxEntries int
}

// Open opens or creates the cache database at path.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketHTML)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(bucketOrder))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: init: %w", err)
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Key derives a cache key from the source text and every setting that
// changes the output.
func Key(src string, settings ...string) string {
	h := sha256.New()
	for _, s := range settings {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	h.Write([]byte(src))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached value for key.
func (s *Store) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketHTML)).Get([]byte(key))
		if v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("cache: get: %w", err)
	}
	return value, found, nil
}

// Put stores value under key, evicting the oldest entries once the store
// exceeds its limit.
func (s *Store) Put(key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		html := tx.Bucket([]byte(bucketHTML))
		order := tx.Bucket([]byte(bucketOrder))
		if html.Get([]byte(key)) == nil {
			seq, err := order.NextSequence()
			if err != nil {
				return err
			}
			if err := order.Put(sequenceKey(seq), []byte(key)); err != nil {
				return err
			}
		}
		if err := html.Put([]byte(key), []byte(value)); err != nil {
			return err
		}
		return evict(html, order, s.maxEntries)
	})
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

// evict drops the oldest entries until at most limit remain.
func evict(html, order *bolt.Bucket, limit int) error {
	c := order.Cursor()
	n := 0
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	for ; n > limit; n-- {
		_, key := c.First()
		if key == nil {
			break
		}
		if err := html.Delete(key); err != nil {
			return err
		}
		if err := c.Delete(); err != nil {
			return err
		}
	}
	return nil
}

func sequenceKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

// Len returns the number of cached entries.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketHTML)).Stats().KeyN
		return nil
	})
	return n, err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
