package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"mimo_finance/internal/usecase/interfaces"

	bolt "go.etcd.io/bbolt"
)

// BoltCache keeps the last good snapshot on local disk so the read side can
// still answer while storage is unreachable.
type BoltCache struct {
	db     *bolt.DB
	bucket []byte
	now    func() time.Time
}

var _ interfaces.ICache = (*BoltCache)(nil)

type boltEntry struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Value     []byte    `json:"value"`
}

// OpenBolt initializes the BoltDB file and ensures the bucket exists.
func OpenBolt(path, bucket string) (*BoltCache, error) {
	if bucket == "" {
		bucket = "snapshots"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &BoltCache{db: db, bucket: []byte(bucket), now: time.Now}, nil
}

func (c *BoltCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c == nil || c.db == nil {
		return nil, false, bolt.ErrDatabaseNotOpen
	}
	var entry boltEntry
	found := false
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(c.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &entry); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return nil, false, err
	}
	if !entry.ExpiresAt.IsZero() && c.now().After(entry.ExpiresAt) {
		return nil, false, nil
	}
	return entry.Value, true, nil
}

func (c *BoltCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	entry := boltEntry{Value: value}
	if ttl > 0 {
		entry.ExpiresAt = c.now().Add(ttl)
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Put([]byte(key), payload)
	})
}

func (c *BoltCache) Invalidate(_ context.Context, key string) error {
	if c == nil || c.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Delete([]byte(key))
	})
}

func (c *BoltCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
