package shared

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ipld/go-ipld-prime"
)

// Mainnet genesis, used as the golden vector across packages
const (
	GenesisHeaderRLP = "f90214a00000000000000000000000000000000000000000000000000000000000000000a01dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347940000000000000000000000000000000000000000a0d7f8974fb5ac78d9ac099b9ad5018bedc2ce0a72dad1827a1709da30580f0544a056e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421a056e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421b9010000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000850400000000808213888080a011bbe8db4e347b4e8c937c1c8370e4b5ed33adb3db69cbdb7a38e1e50b1b82faa00000000000000000000000000000000000000000000000000000000000000000880000000000000042"
	GenesisBlockRLP  = "f90219" + GenesisHeaderRLP + "c0c0"
	GenesisHash      = "d4e56740f876aef8c010b86a40d5f56745a118d0906a34e69aec8c0db1cb8fa3"
)

// GenesisFields returns the mainnet genesis header as a block document map keyed by JSON-RPC names
func GenesisFields() map[string]interface{} {
	zeroHash := "0x" + common.Bytes2Hex(make([]byte, 32))
	return map[string]interface{}{
		"parentHash":       zeroHash,
		"sha3Uncles":       "0x1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347",
		"miner":            "0x" + common.Bytes2Hex(make([]byte, 20)),
		"stateRoot":        "0xd7f8974fb5ac78d9ac099b9ad5018bedc2ce0a72dad1827a1709da30580f0544",
		"transactionsRoot": "0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421",
		"receiptsRoot":     "0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421",
		"logsBloom":        "0x" + common.Bytes2Hex(make([]byte, 256)),
		"difficulty":       "0x400000000",
		"number":           "0x0",
		"gasLimit":         "0x1388",
		"gasUsed":          "0x0",
		"timestamp":        "0x0",
		"extraData":        "0x11bbe8db4e347b4e8c937c1c8370e4b5ed33adb3db69cbdb7a38e1e50b1b82fa",
		"mixHash":          zeroHash,
		"nonce":            "0x0000000000000042",
	}
}

// MustDocument decodes a JSON block document, failing the test on error
func MustDocument(t *testing.T, js string) ipld.Node {
	t.Helper()
	doc, err := DecodeDocumentBytes([]byte(js))
	if err != nil {
		t.Fatalf("unable to decode block document: %v", err)
	}
	return doc
}

// DocumentFromMap builds a block document from a JSON-like map
func DocumentFromMap(t *testing.T, m map[string]interface{}) ipld.Node {
	t.Helper()
	js, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("unable to marshal block document: %v", err)
	}
	return MustDocument(t, string(js))
}

// HeaderFields returns the JSON-RPC form of a go-ethereum header as a map, including its hash
func HeaderFields(t *testing.T, h *types.Header) map[string]interface{} {
	t.Helper()
	return jsonFields(t, h)
}

// TransactionFields returns the JSON-RPC form of a go-ethereum transaction as a map
func TransactionFields(t *testing.T, tx *types.Transaction) map[string]interface{} {
	t.Helper()
	return jsonFields(t, tx)
}

func jsonFields(t *testing.T, v interface{}) map[string]interface{} {
	js, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("unable to marshal %T: %v", v, err)
	}
	m := make(map[string]interface{})
	if err := json.Unmarshal(js, &m); err != nil {
		t.Fatalf("unable to unmarshal %T: %v", v, err)
	}
	return m
}

// RandomHash returns a random hash
func RandomHash() common.Hash {
	rand.Seed(time.Now().UnixNano())
	hash := make([]byte, 32)
	rand.Read(hash)
	return common.BytesToHash(hash)
}

// RandomAddr returns a random address
func RandomAddr() common.Address {
	rand.Seed(time.Now().UnixNano())
	addr := make([]byte, 20)
	rand.Read(addr)
	return common.BytesToAddress(addr)
}

// RandomBytes returns a random byte slice of the provided length
func RandomBytes(len int) []byte {
	rand.Seed(time.Now().UnixNano())
	by := make([]byte, len)
	rand.Read(by)
	return by
}
