package history

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
var (
	keyPrefix   = []byte("fen/")
	keySequence = []byte("seq/fen")
)

// BadgerStore persists entries in BadgerDB, pruning beyond limit.
type BadgerStore struct {
	db    *badger.DB
	seq   *badger.Sequence
	limit int
}

// OpenBadgerStore opens (or creates) the database in dir.
func OpenBadgerStore(dir string, limit int) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return openBadger(opts, limit)
}

// OpenBadgerInMemory keeps the database in memory only.
func OpenBadgerInMemory(limit int) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts, limit)
}

func openBadger(opts badger.Options, limit int) (*BadgerStore, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	seq, err := db.GetSequence(keySequence, 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("history sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq, limit: limit}, nil
}

func entryKey(n uint64) []byte {
	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], n)
	return key
}

func (s *BadgerStore) Push(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := s.seq.Next()
	if err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(n), data)
	}); err != nil {
		return err
	}
	return s.prune()
}

// prune drops the oldest entries above the limit.
func (s *BadgerStore) prune() error {
	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = keyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		if len(keys) > s.limit {
			stale = keys[:len(keys)-s.limit]
		}
		return nil
	})
	if err != nil || len(stale) == 0 {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Recent(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = keyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// reverse iteration starts from the largest key <= seek
		seek := entryKey(^uint64(0))
		for it.Seek(seek); it.ValidForPrefix(keyPrefix); it.Next() {
			if n > 0 && len(out) >= n {
				break
			}
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.seq.Release(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}
