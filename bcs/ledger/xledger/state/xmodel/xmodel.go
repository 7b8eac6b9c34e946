package xmodel

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v4"

	kledger "github.com/xuperchain/xedition/kernel/ledger"
	"github.com/xuperchain/xedition/lib/logs"
	"github.com/xuperchain/xedition/lib/metrics"
	"github.com/xuperchain/xedition/lib/storage/kvdb"
)

var (
	_ kledger.XModel = (*XModel)(nil)
)

// XModel is the persistent world state on top of a kvdb.Database
type XModel struct {
	stateDB      kvdb.Database
	extUtxoTable kvdb.Database
	commitTable  kvdb.Database
	logger       logs.Logger
}

// NewXModel new an instance of XModel
func NewXModel(stateDB kvdb.Database, logger logs.Logger) (*XModel, error) {
	if stateDB == nil {
		return nil, errors.New("new xmodel failed because state db is nil")
	}
	if logger == nil {
		var err error
		logger, err = logs.NewLogger("", "xmodel")
		if err != nil {
			return nil, err
		}
	}
	return &XModel{
		stateDB:      stateDB,
		extUtxoTable: kvdb.NewTable(stateDB, ExtUtxoTablePrefix),
		commitTable:  kvdb.NewTable(stateDB, CommitTablePrefix),
		logger:       logger,
	}, nil
}

// Get get value for specific key, return value with version
// A missing key yields an empty VersionedData.
func (s *XModel) Get(bucket string, key []byte) (*kledger.VersionedData, error) {
	rawKey := makeRawKey(bucket, key)
	buf, err := s.extUtxoTable.Get(rawKey)
	if err != nil {
		if kvdb.ErrNotFound(err) {
			return makeEmptyVersionedData(bucket, key), nil
		}
		return nil, errors.Wrapf(err, "xmodel get %s", rawKey)
	}
	return decodeVersionedData(bucket, key, buf)
}

// Select select all kv from a bucket, can set key range, left closed, right opend
func (s *XModel) Select(bucket string, startKey []byte, endKey []byte) (kledger.XMIterator, error) {
	rawStartKey := makeRawKey(bucket, startKey)
	rawEndKey := makeRawEndKey(bucket, endKey)
	iter := &XMIterator{
		iter: s.extUtxoTable.NewIteratorWithRange(rawStartKey, rawEndKey),
	}
	return iter, nil
}

// Commit writes one tx worth of outputs in a single batch
func (s *XModel) Commit(txid []byte, wset []*kledger.PureData) error {
	batch := s.stateDB.NewBatch()
	writes := 0
	for offset, txOut := range wset {
		if txOut.Bucket == TransientBucket {
			continue
		}
		rawKey := append([]byte(ExtUtxoTablePrefix), makeRawKey(txOut.Bucket, txOut.Key)...)
		if isDelFlag(txOut.Value) {
			if err := batch.Delete(rawKey); err != nil {
				return err
			}
			s.logger.Trace("    xmodel del", "delkey", string(rawKey), "version", MakeVersion(txid, int32(offset)))
			writes++
			continue
		}
		buf, err := encodeVersionedData(&kledger.VersionedData{
			RefTxid:   txid,
			RefOffset: int32(offset),
			PureData:  txOut,
		})
		if err != nil {
			return errors.Wrap(err, "encode versioned data")
		}
		if err := batch.Put(rawKey, buf); err != nil {
			return err
		}
		s.logger.Trace("    xmodel put", "putkey", string(rawKey), "version", MakeVersion(txid, int32(offset)))
		writes++
	}

	record, err := msgpack.Marshal(&commitRecord{Writes: writes, Timestamp: time.Now().UnixNano()})
	if err != nil {
		return errors.Wrap(err, "encode commit record")
	}
	if err := batch.Put(append([]byte(CommitTablePrefix), txid...), record); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write xmodel batch")
	}
	metrics.StateWriteCounter.Add(float64(writes))
	return nil
}

// HasTx reports whether txid has been committed
func (s *XModel) HasTx(txid []byte) (bool, error) {
	return s.commitTable.Has(txid)
}

// Close closes the underlying database
func (s *XModel) Close() {
	s.stateDB.Close()
}
