package edition

import (
	"encoding/json"
	"math/big"
)

const (
	EditionContract = "edition"

	Instantiate = "Instantiate"
	Reply       = "Reply"
	Receive     = "Receive"
	Query       = "Query"

	// Success 成功
	Success = 200
)

const (
	// InstantiateReplyID tags the sub message that creates the collection.
	InstantiateReplyID uint64 = 1
	// CollectionLabel is the label of the collection instance.
	CollectionLabel = "Instantiate Limited Edition NFT"

	ContractName    = "xedition/edition"
	ContractVersion = "0.1.0"
)

// state layout
const (
	Bucket = "edition"

	KeyConfig       = "config"
	KeyTokenCount   = "token_count"
	KeyContractInfo = "contract_info"
)

// Config is the single configuration record of an edition.
// 价格以十进制字符串保存, 不要使用big.Int.Bytes()
type Config struct {
	Owner        string          `json:"owner"`
	Cw20Address  string          `json:"cw20_address"`
	Cw721Address string          `json:"cw721_address,omitempty"`
	MaxTokens    uint32          `json:"max_tokens"`
	UnitPrice    string          `json:"unit_price"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	TokenURI     string          `json:"token_uri"`
	Extension    json.RawMessage `json:"extension,omitempty"`
}

// Price returns the unit price as an integer.
func (c *Config) Price() (*big.Int, bool) {
	return new(big.Int).SetString(c.UnitPrice, 10)
}

// VersionInfo records which contract and version wrote the state.
type VersionInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}
