package sandbox

import (
	"errors"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/ledger"
)

var (
	// ErrHasDel is returned when key was marked as del
	ErrHasDel = errors.New("Key has been mark as del")
	// ErrNotFound is returned when key is not found
	ErrNotFound = errors.New("Key not found")
)

var (
	_ contract.StateSandbox = (*XMCache)(nil)
)

// XMCache data structure for XModel Cache
type XMCache struct {
	// Key: bucket_key; Value: VersionedData
	inputsCache *MemXModel // bucket -> {k1:v1, k2:v2}
	// Key: bucket_key; Value: PureData
	outputsCache *MemXModel

	model ledger.XMReader
}

// NewXModelCache new an instance of XModel Cache
func NewXModelCache(model ledger.XMReader) *XMCache {
	return &XMCache{
		model:        model,
		inputsCache:  NewMemXModel(),
		outputsCache: NewMemXModel(),
	}
}

// Get 读取一个key的值，返回的value就是有版本的data
func (xc *XMCache) Get(bucket string, key []byte) ([]byte, error) {
	// Level1: get from outputsCache
	data, err := xc.getFromOuputsCache(bucket, key)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	if err == nil {
		return data.PureData.Value, nil
	}

	// Level2: get and set from inputsCache
	verData, err := xc.getAndSetFromInputsCache(bucket, key)
	if err != nil {
		return nil, err
	}
	if IsEmptyVersionedData(verData) {
		return nil, ErrNotFound
	}
	if IsDelFlag(verData.GetPureData().GetValue()) {
		return nil, ErrHasDel
	}
	return verData.GetPureData().GetValue(), nil
}

// Level1 读取，从outputsCache中读取
func (xc *XMCache) getFromOuputsCache(bucket string, key []byte) (*ledger.VersionedData, error) {
	data, err := xc.outputsCache.Get(bucket, key)
	if err != nil {
		return nil, err
	}

	if IsDelFlag(data.PureData.Value) {
		return nil, ErrHasDel
	}
	return data, nil
}

// Level2 读取，从inputsCache中读取, 读取不到的情况下，会更深一层次从model里读取，并且会将内容填充到readSets中
// A key missing from the model is recorded as an empty version so the read
// set still proves the key was absent.
func (xc *XMCache) getAndSetFromInputsCache(bucket string, key []byte) (*ledger.VersionedData, error) {
	data, err := xc.inputsCache.Get(bucket, key)
	if err == nil {
		return data, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	data, err = xc.model.Get(bucket, key)
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	if data == nil {
		data = emptyVersionedData(bucket, key)
	}
	xc.inputsCache.Put(bucket, key, data)
	return data, nil
}

// fillInputsCache records a value seen through Select in the read set.
func (xc *XMCache) fillInputsCache(bucket string, key []byte, data *ledger.VersionedData) {
	if _, err := xc.inputsCache.Get(bucket, key); err == nil {
		return
	}
	xc.inputsCache.Put(bucket, key, data)
}

// Put put a pair of <key, value> into XModel Cache
func (xc *XMCache) Put(bucket string, key []byte, value []byte) error {
	val := &ledger.VersionedData{
		PureData: &ledger.PureData{
			Key:    key,
			Value:  value,
			Bucket: bucket,
		},
	}
	if bucket != TransientBucket {
		// put 前先强制get一下
		if _, err := xc.Get(bucket, key); err != nil && !IsNotFound(err) {
			return err
		}
	}
	return xc.outputsCache.Put(bucket, key, val)
}

// Del delete one key from outPutCache, marked its value as `DelFlag`
func (xc *XMCache) Del(bucket string, key []byte) error {
	return xc.Put(bucket, key, []byte(DelFlag))
}

// Select select all kv from a bucket, can set key range, left closed, right opend
// outputsCache, inputsCache and the model are merged, in that priority order.
func (xc *XMCache) Select(bucket string, startKey []byte, endKey []byte) (contract.Iterator, error) {
	outputIter, err := xc.outputsCache.Select(bucket, startKey, endKey)
	if err != nil {
		return nil, err
	}
	inputIter, err := xc.inputsCache.Select(bucket, startKey, endKey)
	if err != nil {
		return nil, err
	}
	backendIter, err := xc.model.Select(bucket, startKey, endKey)
	if err != nil {
		return nil, err
	}
	backendIter = newRsetIterator(backendIter, xc)

	// 优先级顺序 outputIter -> inputIter -> backendIter
	// 意味着如果一个key在三个迭代器里面同时出现，优先级高的会覆盖优先级底的
	multiIter := newMultiIterator(inputIter, backendIter)
	multiIter = newMultiIterator(outputIter, multiIter)
	return newContractIterator(newStripDelIterator(multiIter)), nil
}

// RWSet returns the read and write sets collected so far.
func (xc *XMCache) RWSet() *contract.RWSet {
	readSet := xc.getReadSets()
	writeSet := xc.getWriteSets()

	return &contract.RWSet{
		RSet: readSet,
		WSet: writeSet,
	}
}

func (xc *XMCache) getReadSets() []*ledger.VersionedData {
	var readSets []*ledger.VersionedData
	iter := xc.inputsCache.NewIterator()
	defer iter.Close()
	for iter.Next() {
		val := iter.Value()
		readSets = append(readSets, val)
	}
	return readSets
}

func (xc *XMCache) getWriteSets() []*ledger.PureData {
	var writeSets []*ledger.PureData
	iter := xc.outputsCache.NewIterator()
	defer iter.Close()
	for iter.Next() {
		val := iter.Value()
		writeSets = append(writeSets, val.PureData)
	}
	return writeSets
}

func emptyVersionedData(bucket string, key []byte) *ledger.VersionedData {
	return &ledger.VersionedData{
		PureData: &ledger.PureData{
			Bucket: bucket,
			Key:    key,
		},
	}
}
