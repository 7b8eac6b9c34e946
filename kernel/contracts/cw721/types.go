package cw721

import "encoding/json"

const (
	Cw721Contract = "cw721"

	Instantiate = "Instantiate"
	Mint        = "Mint"
	Query       = "Query"

	// Success 成功
	Success = 200
)

// query methods, passed as args["method"]
const (
	QueryOwnerOf      = "owner_of"
	QueryNftInfo      = "nft_info"
	QueryNumTokens    = "num_tokens"
	QueryContractInfo = "contract_info"
	QueryMinter       = "minter"
)

const (
	Bucket = "cw721"

	KeyInfo      = "info"
	KeyMinter    = "minter"
	KeyNumTokens = "num_tokens"
)

func KeyOfToken(tokenID string) string {
	return "TOKEN_" + tokenID
}

// ContractInfo is the collection description.
type ContractInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// TokenInfo is stored per token id.
type TokenInfo struct {
	Owner     string          `json:"owner"`
	TokenURI  string          `json:"token_uri,omitempty"`
	Extension json.RawMessage `json:"extension,omitempty"`
}

type OwnerOfResponse struct {
	Owner string `json:"owner"`
}

type NftInfoResponse struct {
	TokenURI  string          `json:"token_uri,omitempty"`
	Extension json.RawMessage `json:"extension,omitempty"`
}

type NumTokensResponse struct {
	Count uint64 `json:"count"`
}

type MinterResponse struct {
	Minter string `json:"minter"`
}
