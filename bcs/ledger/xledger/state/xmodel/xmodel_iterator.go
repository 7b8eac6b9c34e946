package xmodel

import (
	kledger "github.com/xuperchain/xedition/kernel/ledger"
	"github.com/xuperchain/xedition/lib/storage/kvdb"
)

// XMIterator data structure for XModel Iterator
// Keys are raw keys, bucket and key joined by BucketSeperator.
type XMIterator struct {
	iter  kvdb.Iterator
	key   []byte
	value *kledger.VersionedData
	err   error
}

// Value get data pointer to VersionedData for XMIterator
func (di *XMIterator) Value() *kledger.VersionedData {
	return di.value
}

// Next check if next element exist
func (di *XMIterator) Next() bool {
	if di.err != nil || !di.iter.Next() {
		di.key, di.value = nil, nil
		return false
	}
	rawKey := append([]byte(nil), di.iter.Key()...)
	bucket, key, err := parseRawKey(rawKey)
	if err != nil {
		di.err = err
		return false
	}
	verData, err := decodeVersionedData(bucket, key, di.iter.Value())
	if err != nil {
		di.err = err
		return false
	}
	di.key = rawKey
	di.value = verData
	return true
}

// Key get key for XMIterator
func (di *XMIterator) Key() []byte {
	return di.key
}

// Error return error info for XMIterator
func (di *XMIterator) Error() error {
	kverr := di.iter.Error()
	if kverr != nil {
		return kverr
	}
	return di.err
}

// Close release XMIterator
func (di *XMIterator) Close() {
	di.iter.Release()
	di.value = nil
}
