package contract

import (
	"encoding/json"

	"github.com/xuperchain/xedition/lib/crypto/hash"
)

// SignatureInfo is one account's signature over the tx digest.
type SignatureInfo struct {
	PublicKey string `json:"public_key"`
	Sign      []byte `json:"sign"`
}

// Tx is a signed request from an account.
type Tx struct {
	Txid        []byte
	Initiator   string
	AuthRequire []string
	Msg         Msg

	// ResourceLimits caps what the whole transaction may use.
	// The zero value means the configured default.
	ResourceLimits Limits

	// AuthRequireSigns holds one signature per AuthRequire entry, same order.
	AuthRequireSigns []SignatureInfo
}

// Digest is the hash every AuthRequire account signs.
func (tx *Tx) Digest() ([]byte, error) {
	buf, err := json.Marshal(struct {
		Txid           []byte   `json:"txid"`
		Initiator      string   `json:"initiator"`
		AuthRequire    []string `json:"auth_require"`
		Msg            Msg      `json:"msg"`
		ResourceLimits Limits   `json:"resource_limits"`
	}{tx.Txid, tx.Initiator, tx.AuthRequire, tx.Msg, tx.ResourceLimits})
	if err != nil {
		return nil, err
	}
	return hash.DoubleSha256(buf), nil
}

// Event records one successful invocation inside a transaction.
type Event struct {
	Contract   string      `json:"contract"`
	Method     string      `json:"method"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// TxResult is returned for a committed transaction.
type TxResult struct {
	Txid []byte `json:"txid"`
	// ContractAddress is set when the root message created an instance.
	ContractAddress string  `json:"contract_address,omitempty"`
	Data            []byte  `json:"data,omitempty"`
	Events          []Event `json:"events"`
	ResourceUsed    Limits  `json:"resource_used"`
	GasUsed         int64   `json:"gas_used"`
}

// QueryRequest asks an instance for data without changing state.
type QueryRequest struct {
	Contract string            `json:"contract"`
	Method   string            `json:"method"`
	Args     map[string][]byte `json:"args"`
}

// CodeInfo describes a stored code.
type CodeInfo struct {
	CodeID uint64 `json:"code_id"`
	Name   string `json:"name"`
}

// ContractInfo describes an instance.
type ContractInfo struct {
	Address string `json:"address"`
	CodeID  uint64 `json:"code_id"`
	Name    string `json:"name"`
	Creator string `json:"creator"`
	Label   string `json:"label"`
}
