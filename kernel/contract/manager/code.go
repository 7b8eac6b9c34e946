package manager

import (
	"encoding/binary"
	"encoding/json"
	"strconv"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
	"github.com/xuperchain/xedition/lib/crypto/hash"
	"github.com/xuperchain/xedition/lib/metrics"
)

// host buckets. 合约bucket不允许包含'$', 不会与之冲突
const (
	codeBucket     = "$code"
	contractBucket = "$contract"
	seqBucket      = "$seq"

	codeSeqKey     = "code"
	contractSeqKey = "contract"
)

func codeKey(codeID uint64) []byte {
	return []byte(strconv.FormatUint(codeID, 10))
}

// nextSeq increments and returns a host counter.
func nextSeq(state contract.XMState, name string) (uint64, error) {
	var seq uint64
	value, err := state.Get(seqBucket, []byte(name))
	if err != nil && !sandbox.IsNotFound(err) {
		return 0, err
	}
	if err == nil && len(value) > 0 {
		seq, err = strconv.ParseUint(string(value), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "bad %s sequence", name)
		}
	}
	seq++
	if err := state.Put(seqBucket, []byte(name), []byte(strconv.FormatUint(seq, 10))); err != nil {
		return 0, err
	}
	return seq, nil
}

func saveCodeInfo(state contract.XMState, info *contract.CodeInfo) error {
	value, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return state.Put(codeBucket, codeKey(info.CodeID), value)
}

func loadCodeInfo(state contract.XMState, codeID uint64) (*contract.CodeInfo, error) {
	value, err := state.Get(codeBucket, codeKey(codeID))
	if sandbox.IsNotFound(err) {
		return nil, contract.ErrCodeNotFound.More("code id %d", codeID)
	}
	if err != nil {
		return nil, err
	}
	info := new(contract.CodeInfo)
	if err := json.Unmarshal(value, info); err != nil {
		return nil, errors.Wrapf(err, "bad code info %d", codeID)
	}
	return info, nil
}

func saveContractInfo(state contract.XMState, info *contract.ContractInfo) error {
	value, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return state.Put(contractBucket, []byte(info.Address), value)
}

func loadContractInfo(state contract.XMState, address string) (*contract.ContractInfo, error) {
	value, err := state.Get(contractBucket, []byte(address))
	if sandbox.IsNotFound(err) {
		return nil, contract.ErrContractNotFound.More("address %s", address)
	}
	if err != nil {
		return nil, err
	}
	info := new(contract.ContractInfo)
	if err := json.Unmarshal(value, info); err != nil {
		return nil, errors.Wrapf(err, "bad contract info %s", address)
	}
	return info, nil
}

// instanceAddress derives the address of the seq-th instance.
func instanceAddress(codeID uint64, creator string, seq uint64) string {
	var codeBuf, seqBuf [8]byte
	binary.BigEndian.PutUint64(codeBuf[:], codeID)
	binary.BigEndian.PutUint64(seqBuf[:], seq)
	digest := hash.Keccak256(codeBuf[:], []byte(creator), seqBuf[:])
	return base58.Encode(digest[12:])
}

// lookupInstance reads an instance record, consulting the cache first.
// Records read from the transaction's own writes are not cached.
func (m *managerImpl) lookupInstance(state contract.XMState, address string, pending map[string]bool) (*contract.ContractInfo, error) {
	if v, ok := m.instances.Get(address); ok {
		metrics.InstanceCacheCounter.WithLabelValues("hit").Inc()
		return v.(*contract.ContractInfo), nil
	}
	metrics.InstanceCacheCounter.WithLabelValues("miss").Inc()

	info, err := loadContractInfo(state, address)
	if err != nil {
		return nil, err
	}
	if !pending[address] {
		m.instances.Add(address, info)
	}
	return info, nil
}
