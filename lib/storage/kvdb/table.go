package kvdb

// table is a Database view whose keys are prefixed.
type table struct {
	db     Database
	prefix string
}

type tableBatch struct {
	batch  Batch
	prefix string
}

type tableIterator struct {
	Iterator
	prefix int
}

// NewTable returns a Database that transparently prefixes every key.
func NewTable(db Database, prefix string) Database {
	return &table{
		db:     db,
		prefix: prefix,
	}
}

func (dt *table) Open(path string, options map[string]interface{}) error {
	return nil
}

func (dt *table) key(key []byte) []byte {
	k := make([]byte, 0, len(dt.prefix)+len(key))
	k = append(k, dt.prefix...)
	return append(k, key...)
}

func (dt *table) Put(key []byte, value []byte) error {
	return dt.db.Put(dt.key(key), value)
}

func (dt *table) Has(key []byte) (bool, error) {
	return dt.db.Has(dt.key(key))
}

func (dt *table) Get(key []byte) ([]byte, error) {
	return dt.db.Get(dt.key(key))
}

func (dt *table) Delete(key []byte) error {
	return dt.db.Delete(dt.key(key))
}

// Close does nothing, the underlying database is owned by the caller.
func (dt *table) Close() {
}

func (dt *table) NewBatch() Batch {
	return &tableBatch{dt.db.NewBatch(), dt.prefix}
}

func (dt *table) NewIteratorWithRange(start []byte, limit []byte) Iterator {
	var rawLimit []byte
	if limit == nil {
		rawLimit = BytesPrefix([]byte(dt.prefix))
	} else {
		rawLimit = dt.key(limit)
	}
	return &tableIterator{
		Iterator: dt.db.NewIteratorWithRange(dt.key(start), rawLimit),
		prefix:   len(dt.prefix),
	}
}

func (dt *table) NewIteratorWithPrefix(prefix []byte) Iterator {
	return &tableIterator{
		Iterator: dt.db.NewIteratorWithPrefix(dt.key(prefix)),
		prefix:   len(dt.prefix),
	}
}

func (ti *tableIterator) Key() []byte {
	key := ti.Iterator.Key()
	if len(key) < ti.prefix {
		return nil
	}
	return key[ti.prefix:]
}

func (tb *tableBatch) Put(key, value []byte) error {
	return tb.batch.Put(append([]byte(tb.prefix), key...), value)
}

func (tb *tableBatch) Delete(key []byte) error {
	return tb.batch.Delete(append([]byte(tb.prefix), key...))
}

func (tb *tableBatch) Write() error {
	return tb.batch.Write()
}

func (tb *tableBatch) ValueSize() int {
	return tb.batch.ValueSize()
}

func (tb *tableBatch) Reset() {
	tb.batch.Reset()
}
