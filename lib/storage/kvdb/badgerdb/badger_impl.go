package badgerdb

import (
	"bytes"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/docker/go-units"
	"github.com/pkg/errors"

	"github.com/xuperchain/xedition/lib/logs"
	"github.com/xuperchain/xedition/lib/storage/kvdb"
)

const (
	gcInterval     = 5 * time.Minute
	gcDiscardRatio = 0.5
)

// BadgerDatabase define data structure of storage
type BadgerDatabase struct {
	path   string
	db     *badger.DB
	log    logs.Logger
	stopGC chan struct{}
	once   sync.Once
}

func init() {
	kvdb.Register(kvdb.KVEngineTypeBadger, NewKVDBInstance)
}

// NewKVDBInstance opens a badger backed kvdb.Database
func NewKVDBInstance(param *kvdb.KVParameter) (kvdb.Database, error) {
	baseDB := new(BadgerDatabase)
	err := baseDB.Open(param.GetDBPath(), map[string]interface{}{
		"cache": param.GetMemCacheSize(),
	})
	if err != nil {
		return nil, err
	}
	return baseDB, nil
}

// Open opens a badger instance and starts value log gc
func (bdb *BadgerDatabase) Open(path string, options map[string]interface{}) error {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if cache, ok := options["cache"].(int); ok && cache > 0 {
		opts = opts.WithBlockCacheSize(int64(cache) * units.MiB)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return errors.Wrapf(err, "open badger %s", path)
	}
	log, err := logs.NewLogger("", "badger")
	if err != nil {
		db.Close()
		return err
	}

	bdb.path = path
	bdb.db = db
	bdb.log = log
	bdb.stopGC = make(chan struct{})
	go bdb.runGC()
	return nil
}

func (bdb *BadgerDatabase) runGC() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-bdb.stopGC:
			return
		case <-ticker.C:
			lsm, vlog := bdb.db.Size()
			for bdb.db.RunValueLogGC(gcDiscardRatio) == nil {
			}
			newLsm, newVlog := bdb.db.Size()
			bdb.log.Debug("badger value log gc", "path", bdb.path,
				"lsm", units.HumanSize(float64(newLsm)), "vlog", units.HumanSize(float64(newVlog)),
				"reclaimed", units.HumanSize(float64(lsm+vlog-newLsm-newVlog)))
		}
	}
}

// Path returns the path of the database
func (bdb *BadgerDatabase) Path() string {
	return bdb.path
}

// Put puts the given key / value
func (bdb *BadgerDatabase) Put(key []byte, value []byte) error {
	return bdb.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Get returns the given key if it's present.
func (bdb *BadgerDatabase) Get(key []byte) ([]byte, error) {
	var value []byte
	err := bdb.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, kvdb.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Has if the given key exists
func (bdb *BadgerDatabase) Has(key []byte) (bool, error) {
	_, err := bdb.Get(key)
	if kvdb.ErrNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete deletes the key
func (bdb *BadgerDatabase) Delete(key []byte) error {
	return bdb.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Close stops gc and closes the database
func (bdb *BadgerDatabase) Close() {
	bdb.once.Do(func() {
		close(bdb.stopGC)
		bdb.db.Close()
	})
}

// NewBatch returns a batch applied atomically on Write
func (bdb *BadgerDatabase) NewBatch() kvdb.Batch {
	return &BadgerBatch{db: bdb.db, txn: bdb.db.NewTransaction(true)}
}

// NewIteratorWithRange returns an iterator over [start, limit)
func (bdb *BadgerDatabase) NewIteratorWithRange(start []byte, limit []byte) kvdb.Iterator {
	return newBadgerIterator(bdb.db, start, limit)
}

// NewIteratorWithPrefix returns an iterator over keys with prefix
func (bdb *BadgerDatabase) NewIteratorWithPrefix(prefix []byte) kvdb.Iterator {
	return newBadgerIterator(bdb.db, prefix, kvdb.BytesPrefix(prefix))
}

// BadgerBatch buffers writes in one read-write transaction
type BadgerBatch struct {
	db   *badger.DB
	txn  *badger.Txn
	size int
	err  error
}

// Put put key and value into batch
func (b *BadgerBatch) Put(key, value []byte) error {
	if b.err != nil {
		return b.err
	}
	b.err = b.txn.Set(copyBytes(key), copyBytes(value))
	b.size += len(value)
	return b.err
}

// Delete delete key from batch
func (b *BadgerBatch) Delete(key []byte) error {
	if b.err != nil {
		return b.err
	}
	b.err = b.txn.Delete(copyBytes(key))
	b.size++
	return b.err
}

// Write commits the batch. A failed Put or Delete fails the whole batch.
func (b *BadgerBatch) Write() error {
	if b.err != nil {
		b.txn.Discard()
		return b.err
	}
	return b.txn.Commit()
}

// ValueSize return batch value size
func (b *BadgerBatch) ValueSize() int {
	return b.size
}

// Reset discards buffered writes
func (b *BadgerBatch) Reset() {
	b.txn.Discard()
	b.txn = b.db.NewTransaction(true)
	b.size = 0
	b.err = nil
}

type badgerIterator struct {
	txn     *badger.Txn
	iter    *badger.Iterator
	start   []byte
	limit   []byte
	started bool
	key     []byte
	value   []byte
	err     error
}

func newBadgerIterator(db *badger.DB, start, limit []byte) *badgerIterator {
	txn := db.NewTransaction(false)
	return &badgerIterator{
		txn:   txn,
		iter:  txn.NewIterator(badger.DefaultIteratorOptions),
		start: start,
		limit: limit,
	}
}

func (it *badgerIterator) Next() bool {
	if it.iter == nil || it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		it.iter.Seek(it.start)
	} else {
		it.iter.Next()
	}
	if !it.iter.Valid() {
		it.key, it.value = nil, nil
		return false
	}
	item := it.iter.Item()
	key := item.KeyCopy(nil)
	if it.limit != nil && bytes.Compare(key, it.limit) >= 0 {
		it.key, it.value = nil, nil
		return false
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		it.err = err
		return false
	}
	it.key, it.value = key, value
	return true
}

func (it *badgerIterator) Key() []byte {
	return it.key
}

func (it *badgerIterator) Value() []byte {
	return it.value
}

func (it *badgerIterator) Error() error {
	return it.err
}

func (it *badgerIterator) Release() {
	if it.iter == nil {
		return
	}
	it.iter.Close()
	it.txn.Discard()
	it.iter = nil
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
