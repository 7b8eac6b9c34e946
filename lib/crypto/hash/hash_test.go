package hash

import (
	"encoding/hex"
	"testing"
)

func Test_Hash(t *testing.T) {
	msg := []byte("this is a test msg")

	if len(UsingSha256(msg)) != 32 || len(DoubleSha256(msg)) != 32 {
		t.Fatal("sha256 digest should be 32 bytes")
	}

	// keccak256("") 的标准结果
	empty := hex.EncodeToString(Keccak256())
	if empty != "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470" {
		t.Fatalf("unexpected keccak256 of empty input %s", empty)
	}
	if hex.EncodeToString(Keccak256([]byte("ab"), []byte("c"))) != hex.EncodeToString(Keccak256([]byte("abc"))) {
		t.Fatal("keccak256 should hash the concatenation")
	}
}
