package cw20

import (
	"encoding/json"
	"math/big"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
	"github.com/xuperchain/xedition/lib/logs"
)

type Contract struct {
	log logs.Logger
}

func NewContract(log logs.Logger) *Contract {
	return &Contract{log: log}
}

func (c *Contract) Instantiate(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	info := &TokenInfo{
		Name:   string(args["name"]),
		Symbol: string(args["symbol"]),
	}
	if info.Name == "" || info.Symbol == "" {
		return nil, contract.ErrParameter.More("name and symbol can not be empty")
	}
	if value := string(args["decimals"]); value != "" {
		decimals, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return nil, contract.ErrParameter.More("invalid decimals %q", value)
		}
		info.Decimals = uint8(decimals)
	}

	initial := map[string]string{}
	if value, ok := args["initial_balances"]; ok && len(value) > 0 {
		if err := json.Unmarshal(value, &initial); err != nil {
			return nil, contract.ErrParameter.More("invalid initial_balances: %v", err)
		}
	}
	// 按地址排序写入, 保证写集顺序确定
	addresses := make([]string, 0, len(initial))
	for address := range initial {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	total := big.NewInt(0)
	for _, address := range addresses {
		amount, err := parseAmount(initial[address], true)
		if err != nil {
			return nil, err
		}
		if err := c.saveBalance(ctx, address, amount); err != nil {
			return nil, err
		}
		total.Add(total, amount)
	}
	info.TotalSupply = total.String()

	value, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	if err := ctx.Put(Bucket, []byte(KeyTokenInfo), value); err != nil {
		return nil, errors.Wrap(err, "save token info failed")
	}
	c.log.Info("token instantiated", "address", ctx.Address(), "symbol", info.Symbol, "totalSupply", info.TotalSupply)

	resp := &contract.Response{Status: Success}
	resp.AddAttribute("method", "instantiate").AddAttribute("total_supply", info.TotalSupply)
	return resp, nil
}

func (c *Contract) Transfer(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	recipient := string(args["recipient"])
	if recipient == "" {
		return nil, contract.ErrParameter.More("recipient can not be empty")
	}
	amount, err := parseAmount(string(args["amount"]), false)
	if err != nil {
		return nil, err
	}
	if err := c.move(ctx, ctx.Caller(), recipient, amount); err != nil {
		return nil, err
	}

	resp := &contract.Response{Status: Success}
	resp.AddAttribute("action", "transfer").
		AddAttribute("from", ctx.Caller()).
		AddAttribute("to", recipient).
		AddAttribute("amount", amount.String())
	return resp, nil
}

// Send moves tokens to a contract and notifies it through its Receive method.
func (c *Contract) Send(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	target := string(args["contract"])
	if target == "" {
		return nil, contract.ErrParameter.More("contract can not be empty")
	}
	amount, err := parseAmount(string(args["amount"]), false)
	if err != nil {
		return nil, err
	}
	if err := c.move(ctx, ctx.Caller(), target, amount); err != nil {
		return nil, err
	}

	notify := map[string][]byte{
		"sender": []byte(ctx.Caller()),
		"amount": []byte(amount.String()),
	}
	if msg, ok := args["msg"]; ok {
		notify["msg"] = msg
	}
	resp := &contract.Response{Status: Success}
	resp.AddAttribute("action", "send").
		AddAttribute("from", ctx.Caller()).
		AddAttribute("to", target).
		AddAttribute("amount", amount.String()).
		AddMessage(contract.Msg{
			Execute: &contract.ExecuteMsg{
				Contract: target,
				Method:   ReceiveMethod,
				Args:     notify,
			},
		})
	return resp, nil
}

func (c *Contract) Query(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	switch method := string(args["method"]); method {
	case QueryBalance:
		address := string(args["address"])
		if address == "" {
			return nil, contract.ErrParameter.More("address can not be empty")
		}
		balance, err := c.balanceOf(ctx, address)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(&BalanceResponse{Balance: balance.String()})
		if err != nil {
			return nil, err
		}
		return &contract.Response{Status: Success, Body: body}, nil
	case QueryTokenInfo:
		value, err := ctx.Get(Bucket, []byte(KeyTokenInfo))
		if err != nil {
			return nil, errors.Wrap(err, "get token info failed")
		}
		return &contract.Response{Status: Success, Body: value}, nil
	default:
		return nil, contract.ErrParameter.More("unknown query %q", method)
	}
}

func (c *Contract) move(ctx contract.KContext, from, to string, amount *big.Int) error {
	if from == "" {
		return contract.ErrParameter.More("no sender")
	}
	fromBal, err := c.balanceOf(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return contract.ErrForbidden.More("insufficient account balance")
	}
	if err := c.saveBalance(ctx, from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := c.balanceOf(ctx, to)
	if err != nil {
		return err
	}
	return c.saveBalance(ctx, to, toBal.Add(toBal, amount))
}

func (c *Contract) balanceOf(ctx contract.KContext, address string) (*big.Int, error) {
	value, err := ctx.Get(Bucket, []byte(KeyOfBalance(address)))
	if err != nil && !sandbox.IsNotFound(err) {
		return nil, errors.Wrap(err, "get address balance failed")
	}
	bal := big.NewInt(0)
	if len(value) == 0 {
		return bal, nil
	}
	bal, ok := bal.SetString(string(value), 10)
	if !ok {
		return nil, errors.New("get address balance bigInt set string failed")
	}
	return bal, nil
}

func (c *Contract) saveBalance(ctx contract.KContext, address string, value *big.Int) error {
	err := ctx.Put(Bucket, []byte(KeyOfBalance(address)), []byte(value.String()))
	if err != nil {
		return errors.Wrap(err, "save address balance failed")
	}
	return nil
}

// parseAmount parses a decimal amount. Zero is accepted only when allowZero.
func parseAmount(value string, allowZero bool) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, contract.ErrParameter.More("invalid amount %q", value)
	}
	if amount.Sign() < 0 || (!allowZero && amount.Sign() == 0) {
		return nil, contract.ErrParameter.More("invalid amount %s", amount)
	}
	return amount, nil
}
