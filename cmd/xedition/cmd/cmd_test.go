package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/lib/crypto/client"
	"github.com/xuperchain/xedition/lib/metrics"
)

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		amount   string
		decimals uint8
		expect   string
	}{
		{"1000", 0, "1000"},
		{"1500000", 6, "1.5"},
		{"1", 2, "0.01"},
		{"abc", 2, "abc"},
	}
	for _, tc := range testCases {
		if got := formatAmount(tc.amount, tc.decimals); got != tc.expect {
			t.Errorf("formatAmount(%s, %d) = %s, expect %s", tc.amount, tc.decimals, got, tc.expect)
		}
	}
}

func TestParseArgs(t *testing.T) {
	args, err := parseArgs(`{"name":"PAY","decimals":"6"}`)
	if err != nil {
		t.Fatal(err)
	}
	if string(args["name"]) != "PAY" || string(args["decimals"]) != "6" {
		t.Fatalf("unexpected args %v", args)
	}
	if _, err := parseArgs(`{"decimals":6}`); err == nil {
		t.Fatal("non string values should be rejected")
	}
}

func TestLoadEditionConf(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "edition.yaml")
	content := `code_id: 3
max_tokens: 5
unit_price: "100"
name: Limited
symbol: LTD
token_code_id: 2
cw20_address: Cw20Addr
token_uri: ipfs://edition
extension:
  artist: x
`
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadEditionConf(fname)
	if err != nil {
		t.Fatal(err)
	}
	args, err := cfg.Args("alice")
	if err != nil {
		t.Fatal(err)
	}
	if string(args["max_tokens"]) != "5" || string(args["token_code_id"]) != "2" || string(args["unit_price"]) != "100" {
		t.Fatalf("unexpected args %v", args)
	}
	if string(args["extension"]) != `{"artist":"x"}` {
		t.Fatalf("unexpected extension %s", args["extension"])
	}
	if cfg.CodeID != 3 || cfg.Label != "edition" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadAccount(t *testing.T) {
	dir := t.TempDir()
	if err := client.NewAccount(dir); err != nil {
		t.Fatal(err)
	}
	acc, err := loadAccount(dir)
	if err != nil {
		t.Fatal(err)
	}

	tx := &contract.Tx{
		Txid:        []byte("tx"),
		Initiator:   acc.Address,
		AuthRequire: []string{acc.Address},
		Msg:         contract.Msg{Execute: &contract.ExecuteMsg{Contract: "c", Method: "m"}},
	}
	if err := acc.sign(tx); err != nil {
		t.Fatal(err)
	}
	digest, err := tx.Digest()
	if err != nil {
		t.Fatal(err)
	}
	si := tx.AuthRequireSigns[0]
	if ok, err := client.VerifySign(acc.Address, si.PublicKey, si.Sign, digest); err != nil || !ok {
		t.Fatalf("signature does not verify, ok=%v err=%v", ok, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "address"), []byte("someone"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadAccount(dir); err == nil {
		t.Fatal("address not owning the key should be rejected")
	}
	if _, err := loadAccount(t.TempDir()); err == nil {
		t.Fatal("empty key dir should be rejected")
	}
}

func TestDumpMetrics(t *testing.T) {
	metrics.RegisterMetrics()
	metrics.TxCounter.WithLabelValues("committed").Inc()

	var buf bytes.Buffer
	if err := dumpMetrics(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "xedition_tx_handled_total") {
		t.Fatalf("tx counter missing from dump:\n%s", buf.String())
	}
}
