// Package store persists time-domain labeled arrays so they can be
// transformed later without re-reading the drive they came from.
//
// Records are kept in BadgerDB under a key prefix, each compressed with zstd.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"

	"github.com/cwbudde/algo-magspec/labeled"
)

// ErrNotFound reports a key with no stored array.
var ErrNotFound = errors.New("store: not found")

const keyPrefix = "array/"

// Config holds store configuration.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps everything in memory; nothing is written to disk.
	InMemory bool
	// CompressionLevel selects the zstd speed: 1 fastest .. 4 best.
	CompressionLevel int
}

// DefaultConfig returns the default on-disk configuration.
func DefaultConfig() Config {
	return Config{
		Path:             "./data",
		CompressionLevel: 3,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return errors.New("store: path is required")
	}
	if c.CompressionLevel < 1 || c.CompressionLevel > 4 {
		return fmt.Errorf("store: compression level must be in [1,4]: %d", c.CompressionLevel)
	}
	return nil
}

func encoderLevel(level int) zstd.EncoderLevel {
	switch level {
	case 1:
		return zstd.SpeedFastest
	case 3:
		return zstd.SpeedBetterCompression
	case 4:
		return zstd.SpeedBestCompression
	}
	return zstd.SpeedDefault
}

// Store is a BadgerDB-backed collection of named arrays. It is safe for
// concurrent use.
type Store struct {
	db      *badger.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens or creates the store described by cfg.
func Open(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encoderLevel(cfg.CompressionLevel)))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("store: create decoder: %w", err)
	}

	return &Store{db: db, encoder: encoder, decoder: decoder}, nil
}

// Close releases the database and codec resources.
func (s *Store) Close() error {
	s.encoder.Close()
	s.decoder.Close()
	return s.db.Close()
}

func dbKey(key string) []byte { return []byte(keyPrefix + key) }

// Put stores a under key, replacing any previous array.
func (s *Store) Put(key string, a *labeled.Array[float64]) error {
	if key == "" {
		return errors.New("store: empty key")
	}
	raw, err := Encode(a)
	if err != nil {
		return err
	}
	compressed := s.encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2))

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(dbKey(key), compressed)
	})
	if err != nil {
		return fmt.Errorf("store: put %q: %w", key, err)
	}
	return nil
}

// Get loads the array stored under key.
func (s *Store) Get(key string) (*labeled.Array[float64], error) {
	var compressed []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dbKey(key))
		if err != nil {
			return err
		}
		compressed, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %q: %w", key, err)
	}

	raw, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCorrupt, key, err)
	}
	return Decode(raw)
}

// Keys returns every stored key in ascending order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().KeyCopy(nil)), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list keys: %w", err)
	}
	return keys, nil
}

// Delete removes the array stored under key.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(dbKey(key)); err != nil {
			return err
		}
		return txn.Delete(dbKey(key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", key, err)
	}
	return nil
}
