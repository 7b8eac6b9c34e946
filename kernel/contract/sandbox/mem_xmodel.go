package sandbox

import (
	"bytes"
	"errors"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/ledger"
)

var (
	_ ledger.XModel = (*MemXModel)(nil)
)

// MemXModel is an ordered in-memory XModel. It backs the read and write
// caches of XMCache and serves as the world state in tests.
type MemXModel struct {
	tree *redblacktree.Tree
}

func XMReaderFromRWSet(rwset *contract.RWSet) ledger.XMReader {
	m := NewMemXModel()
	for _, r := range rwset.RSet {
		m.Put(r.PureData.Bucket, r.PureData.Key, r)
	}
	return m
}

func NewMemXModel() *MemXModel {
	tree := redblacktree.NewWith(treeCompare)
	return &MemXModel{
		tree: tree,
	}
}

//读取一个key的值，返回的value就是有版本的data
func (m *MemXModel) Get(bucket string, key []byte) (*ledger.VersionedData, error) {
	buKey := makeRawKey(bucket, key)
	v, ok := m.tree.Get(buKey)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*ledger.VersionedData), nil
}

func (m *MemXModel) Put(bucket string, key []byte, value *ledger.VersionedData) error {
	buKey := makeRawKey(bucket, key)
	m.tree.Put(buKey, value)
	return nil
}

// Commit applies a write set. Keys written with DelFlag are removed.
func (m *MemXModel) Commit(txid []byte, wset []*ledger.PureData) error {
	for i, w := range wset {
		if w.Bucket == TransientBucket {
			continue
		}
		if IsDelFlag(w.Value) {
			m.tree.Remove(makeRawKey(w.Bucket, w.Key))
			continue
		}
		m.Put(w.Bucket, w.Key, &ledger.VersionedData{
			RefTxid:   txid,
			RefOffset: int32(i),
			PureData: &ledger.PureData{
				Bucket: w.Bucket,
				Key:    w.Key,
				Value:  w.Value,
			},
		})
	}
	return nil
}

func (m *MemXModel) Len() int {
	return m.tree.Size()
}

//扫描一个bucket中所有的kv, 调用者可以设置key区间[startKey, endKey)
func (m *MemXModel) Select(bucket string, startKey []byte, endKey []byte) (ledger.XMIterator, error) {
	if endKey != nil && bytes.Compare(startKey, endKey) >= 0 {
		return nil, errors.New("bad select range")
	}
	rawStartKey := makeRawKey(bucket, startKey)
	rawEndKey := makeRawEndKey(bucket, endKey)
	return newTreeIterator(m.tree, rawStartKey, rawEndKey), nil
}

// NewIterator walks every key of every bucket.
func (m *MemXModel) NewIterator() ledger.XMIterator {
	return newTreeIterator(m.tree, nil, nil)
}

// treeIterator 把tree转换成XMIterator
// Each step looks up the ceiling of the previous key, so the tree may be
// written while the iterator is alive.
type treeIterator struct {
	tree    *redblacktree.Tree
	start   []byte
	end     []byte
	node    *redblacktree.Node
	started bool
	closed  bool
}

func newTreeIterator(tree *redblacktree.Tree, start, end []byte) ledger.XMIterator {
	return &treeIterator{
		tree:  tree,
		start: start,
		end:   end,
	}
}

func (t *treeIterator) Next() bool {
	if t.closed {
		return false
	}
	var seek []byte
	if !t.started {
		t.started = true
		seek = t.start
	} else {
		if t.node == nil {
			return false
		}
		prev := t.node.Key.([]byte)
		seek = make([]byte, len(prev)+1)
		copy(seek, prev)
	}

	if seek == nil {
		t.node = t.tree.Left()
	} else {
		node, ok := t.tree.Ceiling(seek)
		if !ok {
			node = nil
		}
		t.node = node
	}
	if t.node == nil {
		return false
	}
	if t.end != nil && bytes.Compare(t.node.Key.([]byte), t.end) >= 0 {
		t.node = nil
		return false
	}
	return true
}

func (t *treeIterator) Key() []byte {
	if t.node == nil {
		return nil
	}
	return t.node.Key.([]byte)
}

func (t *treeIterator) Value() *ledger.VersionedData {
	if t.node == nil {
		return nil
	}
	return t.node.Value.(*ledger.VersionedData)
}

func (t *treeIterator) Error() error {
	return nil
}

func (t *treeIterator) Close() {
	t.closed = true
	t.node = nil
}

func treeCompare(a, b interface{}) int {
	ka := a.([]byte)
	kb := b.([]byte)
	return bytes.Compare(ka, kb)
}
