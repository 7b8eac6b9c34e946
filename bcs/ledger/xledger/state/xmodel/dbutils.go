package xmodel

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"

	kledger "github.com/xuperchain/xedition/kernel/ledger"
)

// BucketSeperator separator between bucket and raw key
const BucketSeperator = "/"

// DelFlag delete flag
const DelFlag = "\x00"

// TransientBucket is the name of bucket that only appears in tx output set
// but does't persists in xmodel
const TransientBucket = "$transient"

const (
	// ExtUtxoTablePrefix holds the live version of every key
	ExtUtxoTablePrefix = "X"
	// CommitTablePrefix holds one record per committed tx
	CommitTablePrefix = "C"
)

func isDelFlag(value []byte) bool {
	return bytes.Equal([]byte(DelFlag), value)
}

// MakeRawKey make key with bucket and raw key
func MakeRawKey(bucket string, key []byte) []byte {
	return makeRawKey(bucket, key)
}

func makeRawKey(bucket string, key []byte) []byte {
	k := append([]byte(bucket), []byte(BucketSeperator)...)
	return append(k, key...)
}

// makeRawEndKey bounds a select with a nil end key to the bucket.
func makeRawEndKey(bucket string, endKey []byte) []byte {
	if endKey != nil {
		return makeRawKey(bucket, endKey)
	}
	return append([]byte(bucket), BucketSeperator[0]+1)
}

func parseRawKey(rawKey []byte) (string, []byte, error) {
	idx := bytes.Index(rawKey, []byte(BucketSeperator))
	if idx < 0 {
		return "", nil, fmt.Errorf("parseRawKey failed, invalid raw key:%s", string(rawKey))
	}
	return string(rawKey[:idx]), rawKey[idx+1:], nil
}

// storedValue is the on disk form of a versioned value.
type storedValue struct {
	RefTxid   []byte `msgpack:"t"`
	RefOffset int32  `msgpack:"o"`
	Value     []byte `msgpack:"v"`
}

// commitRecord is the on disk form of a committed tx.
type commitRecord struct {
	Writes    int   `msgpack:"w"`
	Timestamp int64 `msgpack:"ts"`
}

func encodeVersionedData(vd *kledger.VersionedData) ([]byte, error) {
	return msgpack.Marshal(&storedValue{
		RefTxid:   vd.RefTxid,
		RefOffset: vd.RefOffset,
		Value:     vd.GetPureData().GetValue(),
	})
}

func decodeVersionedData(bucket string, key []byte, buf []byte) (*kledger.VersionedData, error) {
	var sv storedValue
	if err := msgpack.Unmarshal(buf, &sv); err != nil {
		return nil, err
	}
	return &kledger.VersionedData{
		RefTxid:   sv.RefTxid,
		RefOffset: sv.RefOffset,
		PureData: &kledger.PureData{
			Bucket: bucket,
			Key:    key,
			Value:  sv.Value,
		},
	}, nil
}

func makeEmptyVersionedData(bucket string, key []byte) *kledger.VersionedData {
	return &kledger.VersionedData{
		PureData: &kledger.PureData{
			Bucket: bucket,
			Key:    key,
		},
	}
}

// MakeVersion generate a version by txid and offset, version = txid_offset
func MakeVersion(txid []byte, offset int32) string {
	return fmt.Sprintf("%x_%d", txid, offset)
}

// GetVersion get VersionedData's version, if refTxid is nil, return ""
func GetVersion(vd *kledger.VersionedData) string {
	if vd.RefTxid == nil {
		return ""
	}
	return MakeVersion(vd.RefTxid, vd.RefOffset)
}
