package cw20

const (
	Cw20Contract = "cw20"

	Instantiate = "Instantiate"
	Transfer    = "Transfer"
	Send        = "Send"
	Query       = "Query"

	// ReceiveMethod is invoked on the recipient of Send.
	ReceiveMethod = "Receive"

	// Success 成功
	Success = 200
)

// query methods, passed as args["method"]
const (
	QueryBalance   = "balance"
	QueryTokenInfo = "token_info"
)

const (
	Bucket = "cw20"

	KeyTokenInfo = "token_info"
)

// IMPORTANT big.Int 统一转换成十进制字符串保存
func KeyOfBalance(address string) string {
	return "BALANCE_" + address
}

// TokenInfo describes the token. TotalSupply is a decimal string.
type TokenInfo struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"total_supply"`
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}
