package cw721

import (
	"encoding/json"
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
	info := &ContractInfo{
		Name:   string(args["name"]),
		Symbol: string(args["symbol"]),
	}
	minter := string(args["minter"])
	if info.Name == "" || info.Symbol == "" || minter == "" {
		return nil, contract.ErrParameter.More("name, symbol and minter can not be empty")
	}

	value, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	if err := ctx.Put(Bucket, []byte(KeyInfo), value); err != nil {
		return nil, errors.Wrap(err, "save contract info failed")
	}
	if err := ctx.Put(Bucket, []byte(KeyMinter), []byte(minter)); err != nil {
		return nil, errors.Wrap(err, "save minter failed")
	}
	if err := c.saveNumTokens(ctx, 0); err != nil {
		return nil, err
	}
	c.log.Info("collection instantiated", "address", ctx.Address(), "name", info.Name, "minter", minter)

	resp := &contract.Response{Status: Success}
	resp.AddAttribute("method", "instantiate").AddAttribute("minter", minter)
	return resp, nil
}

// Mint creates a token. Only the minter may call it.
func (c *Contract) Mint(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	tokenID := string(args["token_id"])
	owner := string(args["owner"])
	if tokenID == "" || owner == "" {
		return nil, contract.ErrParameter.More("token_id and owner can not be empty")
	}
	extension := json.RawMessage(args["extension"])
	if len(extension) > 0 && !json.Valid(extension) {
		return nil, contract.ErrParameter.More("extension is not json")
	}

	minter, err := c.minter(ctx)
	if err != nil {
		return nil, err
	}
	if ctx.Caller() != minter {
		return nil, contract.ErrUnauthorized.More("%s is not the minter", ctx.Caller())
	}
	exist, err := c.getToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, contract.ErrForbidden.More("token %s already minted", tokenID)
	}

	token := &TokenInfo{
		Owner:     owner,
		TokenURI:  string(args["token_uri"]),
		Extension: extension,
	}
	value, err := json.Marshal(token)
	if err != nil {
		return nil, err
	}
	if err := ctx.Put(Bucket, []byte(KeyOfToken(tokenID)), value); err != nil {
		return nil, errors.Wrap(err, "save token failed")
	}
	num, err := c.numTokens(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.saveNumTokens(ctx, num+1); err != nil {
		return nil, err
	}

	resp := &contract.Response{Status: Success}
	resp.AddAttribute("action", "mint").
		AddAttribute("minter", minter).
		AddAttribute("owner", owner).
		AddAttribute("token_id", tokenID)
	return resp, nil
}

func (c *Contract) Query(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	var result interface{}
	switch method := string(args["method"]); method {
	case QueryOwnerOf, QueryNftInfo:
		token, err := c.getToken(ctx, string(args["token_id"]))
		if err != nil {
			return nil, err
		}
		if token == nil {
			return nil, contract.ErrParameter.More("token %s not found", args["token_id"])
		}
		if method == QueryOwnerOf {
			result = &OwnerOfResponse{Owner: token.Owner}
		} else {
			result = &NftInfoResponse{TokenURI: token.TokenURI, Extension: token.Extension}
		}
	case QueryNumTokens:
		num, err := c.numTokens(ctx)
		if err != nil {
			return nil, err
		}
		result = &NumTokensResponse{Count: num}
	case QueryContractInfo:
		value, err := ctx.Get(Bucket, []byte(KeyInfo))
		if err != nil {
			return nil, errors.Wrap(err, "get contract info failed")
		}
		return &contract.Response{Status: Success, Body: value}, nil
	case QueryMinter:
		minter, err := c.minter(ctx)
		if err != nil {
			return nil, err
		}
		result = &MinterResponse{Minter: minter}
	default:
		return nil, contract.ErrParameter.More("unknown query %q", method)
	}

	body, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &contract.Response{Status: Success, Body: body}, nil
}

func (c *Contract) minter(ctx contract.KContext) (string, error) {
	value, err := ctx.Get(Bucket, []byte(KeyMinter))
	if err != nil && !sandbox.IsNotFound(err) {
		return "", errors.Wrap(err, "get minter failed")
	}
	if len(value) == 0 {
		return "", contract.ErrInternal.More("collection has no minter")
	}
	return string(value), nil
}

// getToken returns nil when the token does not exist.
func (c *Contract) getToken(ctx contract.KContext, tokenID string) (*TokenInfo, error) {
	value, err := ctx.Get(Bucket, []byte(KeyOfToken(tokenID)))
	if err != nil && !sandbox.IsNotFound(err) {
		return nil, errors.Wrap(err, "get token failed")
	}
	if len(value) == 0 {
		return nil, nil
	}
	token := new(TokenInfo)
	if err := json.Unmarshal(value, token); err != nil {
		return nil, errors.Wrap(err, "token unmarshal failed")
	}
	return token, nil
}

func (c *Contract) numTokens(ctx contract.KContext) (uint64, error) {
	value, err := ctx.Get(Bucket, []byte(KeyNumTokens))
	if err != nil && !sandbox.IsNotFound(err) {
		return 0, errors.Wrap(err, "get num tokens failed")
	}
	if len(value) == 0 {
		return 0, nil
	}
	return strconv.ParseUint(string(value), 10, 64)
}

func (c *Contract) saveNumTokens(ctx contract.KContext, num uint64) error {
	err := ctx.Put(Bucket, []byte(KeyNumTokens), []byte(strconv.FormatUint(num, 10)))
	if err != nil {
		return errors.Wrap(err, "save num tokens failed")
	}
	return nil
}
