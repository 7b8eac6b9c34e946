package edition

import (
	"encoding/json"
	"math/big"
	"strconv"

	"github.com/pkg/errors"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
)

// maxUnitPrice is the largest price a 128 bit payment amount can carry.
var maxUnitPrice = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

type Contract struct {
	contractCtx *Context
}

func NewContract(ctx *Context) *Contract {
	return &Contract{
		contractCtx: ctx,
	}
}

// Instantiate saves the edition config and asks the host to create the
// collection. The collection address arrives later through Reply.
func (c *Contract) Instantiate(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	price, ok := new(big.Int).SetString(string(args["unit_price"]), 10)
	if !ok || price.Sign() < 0 || price.Cmp(maxUnitPrice) > 0 {
		return nil, contract.ErrUnauthorized.More("invalid unit_price %q", args["unit_price"])
	}
	if price.Sign() == 0 {
		return nil, contract.ErrUnauthorized.More("unit_price is zero")
	}
	maxTokens, err := strconv.ParseUint(string(args["max_tokens"]), 10, 32)
	if err != nil {
		return nil, contract.ErrUnauthorized.More("invalid max_tokens %q", args["max_tokens"])
	}
	if maxTokens == 0 {
		return nil, contract.ErrUnauthorized.More("max_tokens is zero")
	}
	codeID, err := strconv.ParseUint(string(args["token_code_id"]), 10, 64)
	if err != nil || codeID == 0 {
		return nil, contract.ErrUnauthorized.More("invalid token_code_id %q", args["token_code_id"])
	}
	cw20 := string(args["cw20_address"])
	if cw20 == "" {
		return nil, contract.ErrUnauthorized.More("cw20_address is empty")
	}
	extension := json.RawMessage(args["extension"])
	if len(extension) > 0 && !json.Valid(extension) {
		return nil, contract.ErrUnauthorized.More("extension is not json")
	}

	// owner参数被忽略, 部署者即所有者
	config := &Config{
		Owner:       ctx.Caller(),
		Cw20Address: cw20,
		MaxTokens:   uint32(maxTokens),
		UnitPrice:   price.String(),
		Name:        string(args["name"]),
		Symbol:      string(args["symbol"]),
		TokenURI:    string(args["token_uri"]),
		Extension:   extension,
	}
	if err := c.setVersion(ctx); err != nil {
		return nil, err
	}
	if err := c.saveConfig(ctx, config); err != nil {
		return nil, err
	}
	if err := c.saveTokenCount(ctx, 0); err != nil {
		return nil, err
	}

	sub := contract.SubMessage{
		ID: InstantiateReplyID,
		Msg: contract.Msg{
			Instantiate: &contract.InstantiateMsg{
				CodeID: codeID,
				Label:  CollectionLabel,
				Args: map[string][]byte{
					"name":   []byte(config.Name),
					"symbol": []byte(config.Symbol),
					"minter": []byte(ctx.Address()),
				},
			},
		},
		ReplyOn: contract.ReplySuccess,
	}
	c.contractCtx.XLog.Info("edition instantiated", "address", ctx.Address(), "owner", config.Owner,
		"maxTokens", config.MaxTokens, "unitPrice", config.UnitPrice)

	resp := &contract.Response{Status: Success}
	resp.AddAttribute("method", "instantiate").AddSubMessage(sub)
	return resp, nil
}

// Reply records the address of the collection created at instantiation.
func (c *Contract) Reply(ctx contract.KContext) (*contract.Response, error) {
	if ctx.Caller() != "" {
		return nil, contract.ErrUnauthorized.More("reply from %s", ctx.Caller())
	}
	config, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if config.Cw721Address != "" {
		return nil, contract.ErrUnauthorized.More("collection already set")
	}
	reply, err := contract.ReplyFromArgs(ctx.Args())
	if err != nil {
		return nil, contract.ErrUnauthorized.More("%v", err)
	}
	if reply.ID != InstantiateReplyID {
		return nil, contract.ErrUnauthorized.More("unknown reply id %d", reply.ID)
	}
	address, err := contract.ParseReplyInstantiate(reply)
	if err != nil {
		return nil, contract.ErrUnauthorized.More("%v", err)
	}

	config.Cw721Address = address
	if err := c.saveConfig(ctx, config); err != nil {
		return nil, err
	}
	c.contractCtx.XLog.Info("edition collection ready", "address", ctx.Address(), "collection", address)
	return &contract.Response{Status: Success}, nil
}

// Receive handles the payment notification of the cw20 token and mints one
// edition to the payer.
func (c *Contract) Receive(ctx contract.KContext) (*contract.Response, error) {
	config, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if ctx.Caller() != config.Cw20Address {
		return nil, contract.ErrUnauthorized.More("notification from %s", ctx.Caller())
	}
	if config.Cw721Address == "" {
		return nil, contract.ErrUnauthorized.More("collection not ready")
	}

	args := ctx.Args()
	sender := string(args["sender"])
	if sender == "" {
		return nil, contract.ErrUnauthorized.More("sender is empty")
	}
	amount, ok := new(big.Int).SetString(string(args["amount"]), 10)
	if !ok {
		return nil, contract.ErrUnauthorized.More("invalid amount %q", args["amount"])
	}
	price, ok := config.Price()
	if !ok {
		return nil, errors.Errorf("bad unit price %q in config", config.UnitPrice)
	}
	if amount.Cmp(price) != 0 {
		return nil, contract.ErrUnauthorized.More("amount %s does not match price %s", amount, price)
	}

	count, err := c.tokenCount(ctx)
	if err != nil {
		return nil, err
	}
	if count >= uint64(config.MaxTokens) {
		return nil, contract.ErrUnauthorized.More("sold out")
	}
	count++
	if err := c.saveTokenCount(ctx, count); err != nil {
		return nil, err
	}
	tokenID := strconv.FormatUint(count, 10)

	mintArgs := map[string][]byte{
		"token_id":  []byte(tokenID),
		"owner":     []byte(sender),
		"token_uri": []byte(config.TokenURI),
	}
	if len(config.Extension) > 0 {
		mintArgs["extension"] = []byte(config.Extension)
	}
	mint := contract.Msg{
		Execute: &contract.ExecuteMsg{
			Contract: config.Cw721Address,
			Method:   "Mint",
			Args:     mintArgs,
		},
	}
	c.contractCtx.XLog.Info("edition purchased", "address", ctx.Address(), "tokenID", tokenID, "owner", sender)

	resp := &contract.Response{Status: Success}
	resp.AddAttribute("method", "receive").
		AddAttribute("token_id", tokenID).
		AddAttribute("owner", sender).
		AddMessage(mint)
	return resp, nil
}

// Query exposes nothing.
func (c *Contract) Query(ctx contract.KContext) (*contract.Response, error) {
	return nil, contract.ErrParameter.More("edition has no query %q", ctx.Args()["method"])
}

func (c *Contract) setVersion(ctx contract.KContext) error {
	value, err := json.Marshal(&VersionInfo{Contract: ContractName, Version: ContractVersion})
	if err != nil {
		return err
	}
	if err := ctx.Put(Bucket, []byte(KeyContractInfo), value); err != nil {
		return errors.Wrap(err, "save contract info failed")
	}
	return nil
}

func (c *Contract) loadConfig(ctx contract.KContext) (*Config, error) {
	value, err := ctx.Get(Bucket, []byte(KeyConfig))
	if err != nil && !sandbox.IsNotFound(err) {
		return nil, errors.Wrap(err, "get config failed")
	}
	if len(value) == 0 {
		return nil, contract.ErrUnauthorized.More("edition not instantiated")
	}
	config := new(Config)
	if err := json.Unmarshal(value, config); err != nil {
		return nil, errors.Wrap(err, "config unmarshal failed")
	}
	return config, nil
}

func (c *Contract) saveConfig(ctx contract.KContext, config *Config) error {
	value, err := json.Marshal(config)
	if err != nil {
		return err
	}
	if err := ctx.Put(Bucket, []byte(KeyConfig), value); err != nil {
		return errors.Wrap(err, "save config failed")
	}
	return nil
}

func (c *Contract) tokenCount(ctx contract.KContext) (uint64, error) {
	value, err := ctx.Get(Bucket, []byte(KeyTokenCount))
	if err != nil && !sandbox.IsNotFound(err) {
		return 0, errors.Wrap(err, "get token count failed")
	}
	if len(value) == 0 {
		return 0, nil
	}
	count, err := strconv.ParseUint(string(value), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "bad token count")
	}
	return count, nil
}

func (c *Contract) saveTokenCount(ctx contract.KContext, count uint64) error {
	err := ctx.Put(Bucket, []byte(KeyTokenCount), []byte(strconv.FormatUint(count, 10)))
	if err != nil {
		return errors.Wrap(err, "save token count failed")
	}
	return nil
}
