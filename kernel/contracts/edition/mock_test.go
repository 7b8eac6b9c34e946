package edition

import (
	"sort"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
	"github.com/xuperchain/xedition/lib/utils"
)

const (
	fakeEditionAddress = "EditionAddr1111111111111"
	fakeCw20Address    = "Cw20Addr11111111111111"
	fakeCw721Address   = "Cw721Addr1111111111111"
	fakeOwner          = "TeyyPLpp9L7QAcxHangtcHTu7HUZ6iydY"
	fakeBuyer          = "SmJG3rH2ZzYQ9ojxhbRCPwFiE9y6pD1Co"
)

type FakeKContext struct {
	args   map[string][]byte
	data   map[string]map[string][]byte
	caller string
}

func NewFakeKContext(args map[string][]byte, data map[string]map[string][]byte) *FakeKContext {
	return &FakeKContext{
		args:   args,
		data:   data,
		caller: fakeOwner,
	}
}

func (c *FakeKContext) Args() map[string][]byte {
	return c.args
}

func (c *FakeKContext) Initiator() string {
	return fakeOwner
}

func (c *FakeKContext) Caller() string {
	return c.caller
}

func (c *FakeKContext) AuthRequire() []string {
	return []string{fakeOwner}
}

func (c *FakeKContext) Address() string {
	return fakeEditionAddress
}

func (c *FakeKContext) Get(bucket string, key []byte) ([]byte, error) {
	value, ok := c.data[bucket][utils.F(key)]
	if !ok {
		return nil, sandbox.ErrNotFound
	}
	return value, nil
}

func (c *FakeKContext) Select(bucket string, startKey []byte, endKey []byte) (contract.Iterator, error) {
	return newFakeIterator(c.data, bucket, startKey, endKey), nil
}

func (c *FakeKContext) Put(bucket string, key, value []byte) error {
	if _, ok := c.data[bucket]; !ok {
		c.data[bucket] = make(map[string][]byte)
	}
	c.data[bucket][utils.F(key)] = value
	return nil
}

func (c *FakeKContext) Del(bucket string, key []byte) error {
	delete(c.data[bucket], utils.F(key))
	return nil
}

func (c *FakeKContext) AddResourceUsed(delta contract.Limits) {}

func (c *FakeKContext) ResourceLimit() contract.Limits {
	return contract.MaxLimits
}

type fakeIterator struct {
	keys   []string
	values map[string][]byte
	idx    int
}

func newFakeIterator(data map[string]map[string][]byte, bucket string, start, end []byte) *fakeIterator {
	it := &fakeIterator{values: data[bucket], idx: -1}
	for k := range data[bucket] {
		if k < string(start) || (end != nil && k >= string(end)) {
			continue
		}
		it.keys = append(it.keys, k)
	}
	sort.Strings(it.keys)
	return it
}

func (it *fakeIterator) Key() []byte {
	return []byte(it.keys[it.idx])
}

func (it *fakeIterator) Value() []byte {
	return it.values[it.keys[it.idx]]
}

func (it *fakeIterator) Next() bool {
	it.idx++
	return it.idx < len(it.keys)
}

func (it *fakeIterator) Error() error {
	return nil
}

func (it *fakeIterator) Close() {}
