package kvdb

import (
	"errors"
)

// ErrKeyNotFound is returned by every engine when a key is absent.
var ErrKeyNotFound = errors.New("kvdb: key not found")

// ErrNotFound reports whether err means the key is absent.
func ErrNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// Database is the key value store interface every engine implements.
type Database interface {
	Open(path string, options map[string]interface{}) error
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Close()
	NewBatch() Batch
	NewIteratorWithRange(start []byte, limit []byte) Iterator
	NewIteratorWithPrefix(prefix []byte) Iterator
}

// Batch collects writes that are applied atomically by Write.
type Batch interface {
	ValueSize() int
	Write() error
	Reset()
	Put(key []byte, value []byte) error
	Delete(key []byte) error
}

// Iterator walks keys in ascending order. It must be released after use.
type Iterator interface {
	Key() []byte
	Value() []byte
	Next() bool
	Error() error
	Release()
}

// BytesPrefix returns the exclusive upper bound of keys starting with prefix.
// A nil result means the prefix has no upper bound.
func BytesPrefix(prefix []byte) []byte {
	limit := make([]byte, len(prefix))
	copy(limit, prefix)
	for i := len(limit) - 1; i >= 0; i-- {
		c := limit[i]
		if c < 0xff {
			limit[i] = c + 1
			return limit[:i+1]
		}
	}
	return nil
}
