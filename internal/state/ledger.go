package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var processedBucket = []byte("processed")

// Entry records the conversion of one raw snapshot.
type Entry struct {
	SourceKey   string    `json:"source_key"`
	OutputKey   string    `json:"output_key,omitempty"`
	Headlines   int       `json:"headlines"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Ledger remembers which raw snapshots were already converted, so redelivered
// notifications do not rewrite the same CSV.
type Ledger struct {
	db *bolt.DB
}

// Open opens (or creates) the ledger file at path.
func Open(path string) (*Ledger, error) {
	if path == "" {
		return nil, errors.New("ledger path is empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(processedBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the underlying file.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Lookup returns the entry for sourceKey, if one was recorded.
func (l *Ledger) Lookup(sourceKey string) (Entry, bool, error) {
	var (
		entry Entry
		found bool
	)
	err := l.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(processedBucket).Get([]byte(sourceKey))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &entry)
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("lookup %s: %w", sourceKey, err)
	}
	return entry, found, nil
}

// Mark stores entry, replacing any previous record for the same source key.
func (l *Ledger) Mark(entry Entry) error {
	if entry.SourceKey == "" {
		return errors.New("ledger entry has no source key")
	}
	if entry.ProcessedAt.IsZero() {
		entry.ProcessedAt = time.Now().UTC()
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal ledger entry: %w", err)
	}

	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(processedBucket).Put([]byte(entry.SourceKey), raw)
	})
}

// Forget removes sourceKey so it will be processed again.
func (l *Ledger) Forget(sourceKey string) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(processedBucket).Delete([]byte(sourceKey))
	})
}
