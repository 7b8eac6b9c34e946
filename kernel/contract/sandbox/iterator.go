package sandbox

import (
	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/ledger"
)

type pick int

const (
	pickNone pick = iota
	pickFront
	pickBack
	pickBoth
)

// multiIterator 按照归并排序合并两个XMIterator
// 如果两个XMIterator在某次迭代返回同样的Key，选取front的Value
type multiIterator struct {
	front ledger.XMIterator
	back  ledger.XMIterator

	started bool
	frontOk bool
	backOk  bool
	last    pick

	key   []byte
	value *ledger.VersionedData
}

func newMultiIterator(front, back ledger.XMIterator) ledger.XMIterator {
	return &multiIterator{
		front: front,
		back:  back,
	}
}

func (m *multiIterator) Key() []byte {
	return m.key
}

func (m *multiIterator) Value() *ledger.VersionedData {
	return m.value
}

func (m *multiIterator) Next() bool {
	if !m.started {
		m.started = true
		m.frontOk = m.front.Next()
		m.backOk = m.back.Next()
	} else {
		switch m.last {
		case pickFront:
			m.frontOk = m.front.Next()
		case pickBack:
			m.backOk = m.back.Next()
		case pickBoth:
			m.frontOk = m.front.Next()
			m.backOk = m.back.Next()
		default:
			return false
		}
	}

	var k1, k2 []byte
	if m.frontOk {
		k1 = m.front.Key()
	}
	if m.backOk {
		k2 = m.back.Key()
	}
	if !m.frontOk && !m.backOk {
		m.last = pickNone
		m.key, m.value = nil, nil
		return false
	}

	switch compareBytes(k1, k2) {
	case 0:
		m.last = pickBoth
		m.setKeyValue(m.front)
	case -1:
		m.last = pickFront
		m.setKeyValue(m.front)
	default:
		m.last = pickBack
		m.setKeyValue(m.back)
	}
	return true
}

func (m *multiIterator) setKeyValue(iter ledger.XMIterator) {
	m.key = iter.Key()
	m.value = iter.Value()
}

func (m *multiIterator) Error() error {
	err := m.front.Error()
	if err != nil {
		return err
	}

	err = m.back.Error()
	if err != nil {
		return err
	}
	return nil
}

// Iterator 必须在使用完毕后关闭
func (m *multiIterator) Close() {
	m.front.Close()
	m.back.Close()
}

// rsetIterator 把迭代到的Key记录到读集里面
type rsetIterator struct {
	mc *XMCache
	ledger.XMIterator
	err error
}

func newRsetIterator(iter ledger.XMIterator, mc *XMCache) ledger.XMIterator {
	return &rsetIterator{
		mc:         mc,
		XMIterator: iter,
	}
}

func (r *rsetIterator) Next() bool {
	if r.err != nil {
		return false
	}
	ok := r.XMIterator.Next()
	if !ok {
		return false
	}
	rawkey := r.Key()
	bucket, key, err := parseRawKey(rawkey)
	if err != nil {
		r.err = err
		return false
	}
	// fill read set
	r.mc.fillInputsCache(bucket, key, r.Value())
	return true
}

func (r *rsetIterator) Error() error {
	if r.err != nil {
		return r.err
	}
	return r.XMIterator.Error()
}

// ContractIterator 把ledger.XMIterator转换成contract.Iterator
// Keys are returned without their bucket prefix.
type ContractIterator struct {
	ledger.XMIterator
}

func newContractIterator(xmiter ledger.XMIterator) contract.Iterator {
	return &ContractIterator{
		XMIterator: xmiter,
	}
}

func (c *ContractIterator) Key() []byte {
	_, key, err := parseRawKey(c.XMIterator.Key())
	if err != nil {
		return nil
	}
	return key
}

func (c *ContractIterator) Value() []byte {
	v := c.XMIterator.Value()
	return v.GetPureData().GetValue()
}

// stripDelIterator 从迭代器里剔除删除标注和空版本
type stripDelIterator struct {
	ledger.XMIterator
}

func newStripDelIterator(xmiter ledger.XMIterator) ledger.XMIterator {
	return &stripDelIterator{
		XMIterator: xmiter,
	}
}

func (s *stripDelIterator) Next() bool {
	for s.XMIterator.Next() {
		value := s.Value().GetPureData().GetValue()
		if value == nil {
			continue
		}
		if IsDelFlag(value) {
			continue
		}
		return true
	}
	return false
}
