package edition

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/lib/utils"
)

func newTestContract(t *testing.T) *Contract {
	ctx, err := NewEditionCtx()
	if err != nil {
		t.Fatal(err)
	}
	return NewContract(ctx)
}

func instantiateArgs(price, max string) map[string][]byte {
	return map[string][]byte{
		"owner":         []byte(fakeOwner),
		"max_tokens":    []byte(max),
		"unit_price":    []byte(price),
		"name":          []byte("Limited"),
		"symbol":        []byte("LTD"),
		"token_code_id": []byte("2"),
		"cw20_address":  []byte(fakeCw20Address),
		"token_uri":     []byte("ipfs://edition"),
		"extension":     []byte(`{"artist":"x"}`),
	}
}

// instantiated returns the state of an edition whose collection is ready.
func instantiated(t *testing.T, c *Contract, price, max string) map[string]map[string][]byte {
	data := map[string]map[string][]byte{}
	if _, err := c.Instantiate(NewFakeKContext(instantiateArgs(price, max), data)); err != nil {
		t.Fatal(err)
	}
	reply := &contract.Reply{ID: InstantiateReplyID, Result: contract.SubMsgResult{ContractAddress: fakeCw721Address}}
	args, err := reply.Args()
	if err != nil {
		t.Fatal(err)
	}
	ctx := NewFakeKContext(args, data)
	ctx.caller = ""
	if _, err := c.Reply(ctx); err != nil {
		t.Fatal(err)
	}
	return data
}

func receive(c *Contract, data map[string]map[string][]byte, caller, sender, amount string) (*contract.Response, error) {
	ctx := NewFakeKContext(map[string][]byte{
		"sender": []byte(sender),
		"amount": []byte(amount),
	}, data)
	ctx.caller = caller
	return c.Receive(ctx)
}

func loadTestConfig(t *testing.T, data map[string]map[string][]byte) *Config {
	config := new(Config)
	if err := json.Unmarshal(data[Bucket][utils.F([]byte(KeyConfig))], config); err != nil {
		t.Fatal(err)
	}
	return config
}

func TestInstantiate(t *testing.T) {
	c := newTestContract(t)
	testCases := map[string]struct {
		price, max string
		err        error
	}{
		"zero price":   {"0", "5", contract.ErrUnauthorized},
		"zero max":     {"100", "0", contract.ErrUnauthorized},
		"bad price":    {"abc", "5", contract.ErrUnauthorized},
		"negative":     {"-1", "5", contract.ErrUnauthorized},
		"overflow max": {"100", "4294967296", contract.ErrUnauthorized},
		"valid":        {"100", "5", nil},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			data := map[string]map[string][]byte{}
			resp, err := c.Instantiate(NewFakeKContext(instantiateArgs(tc.price, tc.max), data))
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expect %v, got %v", tc.err, err)
				}
				if len(data[Bucket]) != 0 {
					t.Fatal("failed instantiate must not write config")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(resp.Messages) != 1 {
				t.Fatalf("expect one sub message, got %d", len(resp.Messages))
			}
			sub := resp.Messages[0]
			if sub.ID != InstantiateReplyID || sub.ReplyOn != contract.ReplySuccess || sub.Msg.Instantiate == nil {
				t.Fatalf("unexpected sub message %+v", sub)
			}
			if sub.Msg.Instantiate.CodeID != 2 || sub.Msg.Instantiate.Label != CollectionLabel {
				t.Fatalf("unexpected instantiate message %+v", sub.Msg.Instantiate)
			}
			if string(sub.Msg.Instantiate.Args["minter"]) != fakeEditionAddress {
				t.Fatalf("collection minter should be the edition, got %s", sub.Msg.Instantiate.Args["minter"])
			}

			config := loadTestConfig(t, data)
			if config.Cw721Address != "" {
				t.Fatal("collection must be unset after instantiate")
			}
			if config.Owner != fakeOwner || config.UnitPrice != "100" || config.MaxTokens != 5 {
				t.Fatalf("unexpected config %+v", config)
			}
			if string(data[Bucket][utils.F([]byte(KeyTokenCount))]) != "0" {
				t.Fatalf("unexpected token count %s", data[Bucket][utils.F([]byte(KeyTokenCount))])
			}
		})
	}
}

func TestReply(t *testing.T) {
	c := newTestContract(t)
	data := instantiated(t, c, "100", "5")
	if loadTestConfig(t, data).Cw721Address != fakeCw721Address {
		t.Fatal("collection address not recorded")
	}

	// 第二次回调必须失败
	reply := &contract.Reply{ID: InstantiateReplyID, Result: contract.SubMsgResult{ContractAddress: "other"}}
	args, _ := reply.Args()
	ctx := NewFakeKContext(args, data)
	ctx.caller = ""
	if _, err := c.Reply(ctx); !errors.Is(err, contract.ErrUnauthorized) {
		t.Fatalf("second reply should be unauthorized, got %v", err)
	}
	if loadTestConfig(t, data).Cw721Address != fakeCw721Address {
		t.Fatal("collection address changed by second reply")
	}
}

func TestReplyWrongID(t *testing.T) {
	c := newTestContract(t)
	data := map[string]map[string][]byte{}
	if _, err := c.Instantiate(NewFakeKContext(instantiateArgs("100", "5"), data)); err != nil {
		t.Fatal(err)
	}
	reply := &contract.Reply{ID: 7, Result: contract.SubMsgResult{ContractAddress: fakeCw721Address}}
	args, _ := reply.Args()
	ctx := NewFakeKContext(args, data)
	ctx.caller = ""
	resp, err := c.Reply(ctx)
	if !errors.Is(err, contract.ErrUnauthorized) {
		t.Fatalf("expect unauthorized, got %v", err)
	}
	if resp != nil {
		t.Fatal("failed reply must not return a response")
	}

	// 缺少回调数据或地址
	for name, args := range map[string]map[string][]byte{
		"no reply":   {},
		"no address": mustReplyArgs(t, &contract.Reply{ID: InstantiateReplyID}),
	} {
		ctx := NewFakeKContext(args, data)
		ctx.caller = ""
		if _, err := c.Reply(ctx); !errors.Is(err, contract.ErrUnauthorized) {
			t.Fatalf("%s: expect unauthorized, got %v", name, err)
		}
	}
	if loadTestConfig(t, data).Cw721Address != "" {
		t.Fatal("collection set by a malformed reply")
	}
}

func mustReplyArgs(t *testing.T, reply *contract.Reply) map[string][]byte {
	args, err := reply.Args()
	if err != nil {
		t.Fatal(err)
	}
	return args
}

func TestReceive(t *testing.T) {
	c := newTestContract(t)
	data := instantiated(t, c, "100", "5")

	for _, amount := range []string{"100", "99", "0", "abc"} {
		if _, err := receive(c, data, "spoofer", fakeBuyer, amount); !errors.Is(err, contract.ErrUnauthorized) {
			t.Fatalf("non token caller with amount %q should be unauthorized, got %v", amount, err)
		}
	}
	if _, err := receive(c, data, fakeCw20Address, "", "100"); !errors.Is(err, contract.ErrUnauthorized) {
		t.Fatalf("empty sender should be unauthorized, got %v", err)
	}
	if _, err := receive(c, data, fakeCw20Address, fakeBuyer, "99"); !errors.Is(err, contract.ErrUnauthorized) {
		t.Fatalf("wrong amount should be unauthorized, got %v", err)
	}

	resp, err := receive(c, data, fakeCw20Address, fakeBuyer, "100")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Messages) != 1 {
		t.Fatalf("expect exactly one mint, got %d", len(resp.Messages))
	}
	mint := resp.Messages[0]
	if mint.ReplyOn != contract.ReplyNever || mint.Msg.Execute == nil {
		t.Fatalf("unexpected mint message %+v", mint)
	}
	exec := mint.Msg.Execute
	if exec.Contract != fakeCw721Address || exec.Method != "Mint" {
		t.Fatalf("mint must go to the collection, got %s.%s", exec.Contract, exec.Method)
	}
	if string(exec.Args["owner"]) != fakeBuyer || string(exec.Args["token_id"]) != "1" {
		t.Fatalf("unexpected mint args %v", exec.Args)
	}
	if string(exec.Args["token_uri"]) != "ipfs://edition" || string(exec.Args["extension"]) != `{"artist":"x"}` {
		t.Fatalf("metadata not copied %v", exec.Args)
	}

	resp, err = receive(c, data, fakeCw20Address, fakeBuyer, "100")
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Messages[0].Msg.Execute.Args["token_id"]) != "2" {
		t.Fatalf("second purchase should mint token 2, got %s", resp.Messages[0].Msg.Execute.Args["token_id"])
	}
}

func TestReceiveSoldOut(t *testing.T) {
	c := newTestContract(t)
	data := instantiated(t, c, "10", "2")
	for i := 0; i < 2; i++ {
		if _, err := receive(c, data, fakeCw20Address, fakeBuyer, "10"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := receive(c, data, fakeCw20Address, fakeBuyer, "10"); !errors.Is(err, contract.ErrUnauthorized) {
		t.Fatalf("purchase past max should fail, got %v", err)
	}
	if string(data[Bucket][utils.F([]byte(KeyTokenCount))]) != "2" {
		t.Fatalf("unexpected token count %s", data[Bucket][utils.F([]byte(KeyTokenCount))])
	}
}

func TestReceiveBeforeReply(t *testing.T) {
	c := newTestContract(t)
	data := map[string]map[string][]byte{}
	if _, err := c.Instantiate(NewFakeKContext(instantiateArgs("100", "5"), data)); err != nil {
		t.Fatal(err)
	}
	if _, err := receive(c, data, fakeCw20Address, fakeBuyer, "100"); !errors.Is(err, contract.ErrUnauthorized) {
		t.Fatalf("purchase before reply should fail, got %v", err)
	}
}

func TestQuery(t *testing.T) {
	c := newTestContract(t)
	_, err := c.Query(NewFakeKContext(map[string][]byte{"method": []byte("config")}, map[string]map[string][]byte{}))
	if !errors.Is(err, contract.ErrParameter) {
		t.Fatalf("query should be rejected, got %v", err)
	}
}
