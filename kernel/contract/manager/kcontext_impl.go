package manager

import (
	"strings"

	"github.com/xuperchain/xedition/kernel/contract"
)

// 实例的bucket都以地址为前缀, 合约之间互相看不到对方的状态
const instanceBucketSeperator = "."

func instanceBucket(address, bucket string) string {
	return address + instanceBucketSeperator + bucket
}

func checkBucket(bucket string) error {
	if bucket == "" || strings.ContainsAny(bucket, "/$") {
		return contract.ErrParameter.More("invalid bucket name %q", bucket)
	}
	return nil
}

// meter accumulates the resources used by one transaction.
type meter struct {
	used  contract.Limits
	limit contract.Limits
}

func newMeter(limit contract.Limits) *meter {
	return &meter{limit: limit}
}

func (m *meter) charge(delta contract.Limits) error {
	m.used.Add(delta)
	if m.used.Exceed(m.limit) {
		return contract.ErrOutOfGas.More("used %s, limit %s", m.used, m.limit)
	}
	return nil
}

func (m *meter) exceeded() bool {
	return m.used.Exceed(m.limit)
}

// kcontextImpl is what a kernel method sees during one invocation.
type kcontextImpl struct {
	args        map[string][]byte
	initiator   string
	caller      string
	address     string
	authRequire []string

	state contract.XMState
	meter *meter
}

func newKContext(cfg *contract.ContextConfig, args map[string][]byte, m *meter) *kcontextImpl {
	return &kcontextImpl{
		args:        args,
		initiator:   cfg.Initiator,
		caller:      cfg.Caller,
		address:     cfg.Address,
		authRequire: cfg.AuthRequire,
		state:       cfg.State,
		meter:       m,
	}
}

// 交易相关数据
func (k *kcontextImpl) Args() map[string][]byte {
	return k.args
}

func (k *kcontextImpl) Initiator() string {
	return k.initiator
}

func (k *kcontextImpl) Caller() string {
	return k.caller
}

func (k *kcontextImpl) AuthRequire() []string {
	return k.authRequire
}

func (k *kcontextImpl) Address() string {
	return k.address
}

func (k *kcontextImpl) Get(bucket string, key []byte) ([]byte, error) {
	if err := checkBucket(bucket); err != nil {
		return nil, err
	}
	if err := k.meter.charge(contract.Limits{Cpu: 1}); err != nil {
		return nil, err
	}
	return k.state.Get(instanceBucket(k.address, bucket), key)
}

func (k *kcontextImpl) Select(bucket string, startKey []byte, endKey []byte) (contract.Iterator, error) {
	if err := checkBucket(bucket); err != nil {
		return nil, err
	}
	if err := k.meter.charge(contract.Limits{Cpu: 1}); err != nil {
		return nil, err
	}
	iter, err := k.state.Select(instanceBucket(k.address, bucket), startKey, endKey)
	if err != nil {
		return nil, err
	}
	return &meteredIterator{Iterator: iter, meter: k.meter}, nil
}

func (k *kcontextImpl) Put(bucket string, key, value []byte) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}
	if err := k.meter.charge(contract.Limits{Disk: int64(len(key) + len(value))}); err != nil {
		return err
	}
	return k.state.Put(instanceBucket(k.address, bucket), key, value)
}

func (k *kcontextImpl) Del(bucket string, key []byte) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}
	if err := k.meter.charge(contract.Limits{Disk: int64(len(key))}); err != nil {
		return err
	}
	return k.state.Del(instanceBucket(k.address, bucket), key)
}

func (k *kcontextImpl) AddResourceUsed(delta contract.Limits) {
	k.meter.used.Add(delta)
}

func (k *kcontextImpl) ResourceLimit() contract.Limits {
	return k.meter.limit
}

// meteredIterator charges one cpu unit per step. Running out of
// resources ends the iteration with ErrOutOfGas.
type meteredIterator struct {
	contract.Iterator
	meter *meter
	err   error
}

func (it *meteredIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if err := it.meter.charge(contract.Limits{Cpu: 1}); err != nil {
		it.err = err
		return false
	}
	return it.Iterator.Next()
}

func (it *meteredIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.Iterator.Error()
}
