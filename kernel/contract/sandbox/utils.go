package sandbox

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuperchain/xedition/kernel/ledger"
)

// BucketSeperator separator between bucket and raw key
const BucketSeperator = "/"

// DelFlag delete flag
const DelFlag = "\x00"

// TransientBucket only lives in a tx write set, it is never persisted
const TransientBucket = "$transient"

func makeRawKey(bucket string, key []byte) []byte {
	k := append([]byte(bucket), []byte(BucketSeperator)...)
	return append(k, key...)
}

// makeRawEndKey returns the exclusive upper bound of a select.
// A nil end key bounds the select to the bucket.
func makeRawEndKey(bucket string, endKey []byte) []byte {
	if endKey != nil {
		return makeRawKey(bucket, endKey)
	}
	k := []byte(bucket)
	return append(k, BucketSeperator[0]+1)
}

func parseRawKey(rawKey []byte) (string, []byte, error) {
	idx := bytes.Index(rawKey, []byte(BucketSeperator))
	if idx < 0 {
		return "", nil, fmt.Errorf("parseRawKey failed, invalid raw key:%s", string(rawKey))
	}
	bucket := string(rawKey[:idx])
	key := rawKey[idx+1:]
	return bucket, key, nil
}

// IsEmptyVersionedData check if VersionedData is empty
func IsEmptyVersionedData(vd *ledger.VersionedData) bool {
	return vd.RefTxid == nil && vd.RefOffset == 0
}

func IsDelFlag(value []byte) bool {
	return bytes.Equal([]byte(DelFlag), value)
}

// IsNotFound reports whether err means the key has no live value.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrHasDel)
}

// compareBytes like bytes.Compare but treats nil as max value
func compareBytes(k1, k2 []byte) int {
	if k1 == nil && k2 == nil {
		return 0
	}
	if k1 == nil {
		return 1
	}
	if k2 == nil {
		return -1
	}
	return bytes.Compare(k1, k2)
}
