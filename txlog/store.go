// Package txlog keeps a local journal of transactions this tool has built,
// so an operator can review past payloads and broadcast outcomes without
// querying a remote index.
package txlog

import (
	"bytes"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var bucketTxs = []byte("transactions")

// Entry records one built transaction: the serialized bytes, the embedded
// payload, and how (whether) it was dispatched.
type Entry struct {
	TxID      string    // display hex
	RawTx     []byte    // witness serialization
	Payload   []byte    // OP_RETURN data
	Network   string    // "test" or "main"
	Channel   string    // delivery channel name, "manual" when not broadcast
	Broadcast bool      // whether a broadcast succeeded
	FeePaid   int64     // satoshis
	CreatedAt time.Time
}

// Store wraps a bbolt database holding the transaction journal.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the journal database at dbPath. The parent
// directory is created with owner-only access if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("txlog: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("txlog: open db: %w", err)
	}

	err = db.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(bucketTxs)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("txlog: create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put stores an entry keyed by txid. Returns ErrDuplicateTx when an entry
// for the txid already exists.
func (s *Store) Put(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParam)
	}
	key, err := txidKey(entry.TxID)
	if err != nil {
		return err
	}

	return s.db.Update(func(btx *bbolt.Tx) error {
		b := btx.Bucket(bucketTxs)
		if b.Get(key) != nil {
			return ErrDuplicateTx
		}
		data, err := encodeGob(entry)
		if err != nil {
			return fmt.Errorf("txlog: encode entry: %w", err)
		}
		return b.Put(key, data)
	})
}

// Update overwrites an existing entry, e.g. to record a broadcast outcome
// after the initial write.
func (s *Store) Update(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParam)
	}
	key, err := txidKey(entry.TxID)
	if err != nil {
		return err
	}

	return s.db.Update(func(btx *bbolt.Tx) error {
		b := btx.Bucket(bucketTxs)
		if b.Get(key) == nil {
			return ErrTxNotFound
		}
		data, err := encodeGob(entry)
		if err != nil {
			return fmt.Errorf("txlog: encode entry: %w", err)
		}
		return b.Put(key, data)
	})
}

// Get retrieves an entry by display-hex txid.
func (s *Store) Get(txid string) (*Entry, error) {
	key, err := txidKey(txid)
	if err != nil {
		return nil, err
	}

	var entry Entry
	err = s.db.View(func(btx *bbolt.Tx) error {
		data := btx.Bucket(bucketTxs).Get(key)
		if data == nil {
			return ErrTxNotFound
		}
		return decodeGob(data, &entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all journal entries.
func (s *Store) List() ([]*Entry, error) {
	var entries []*Entry
	err := s.db.View(func(btx *bbolt.Tx) error {
		return btx.Bucket(bucketTxs).ForEach(func(k, v []byte) error {
			var entry Entry
			if err := decodeGob(v, &entry); err != nil {
				return fmt.Errorf("txlog: decode entry: %w", err)
			}
			entries = append(entries, &entry)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("txlog: list entries: %w", err)
	}
	return entries, nil
}

// txidKey decodes a display-hex txid into the 32-byte storage key.
func txidKey(txid string) ([]byte, error) {
	key, err := hex.DecodeString(txid)
	if err != nil || len(key) != 32 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxID, txid)
	}
	return key, nil
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
