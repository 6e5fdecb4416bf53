package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulcanize/eth-blockinfo/shared"
)

func run(t *testing.T, stdin string, args ...string) ([]string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	app := newApp(strings.NewReader(stdin), out)
	err := app.Run(append([]string{"ethblockinfo"}, args...))
	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil, err
	}
	return strings.Split(text, "\n"), err
}

func writeDocument(t *testing.T, fields map[string]interface{}) string {
	t.Helper()
	js, err := json.Marshal(fields)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "block.json")
	require.NoError(t, ioutil.WriteFile(path, js, 0600))
	return path
}

func TestBlockCommand(t *testing.T) {
	fields := shared.GenesisFields()
	fields["blockHash"] = "0x" + shared.GenesisHash
	path := writeDocument(t, fields)

	lines, err := run(t, "", "--print-doc=false", "block", path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"header rlp = " + shared.GenesisHeaderRLP,
		"block rlp = " + shared.GenesisBlockRLP,
		"block hash = " + shared.GenesisHash,
		"Block hash is ok",
	}, lines)

	lines, err = run(t, "", "--print-doc=false", "--cid", "block", path)
	require.NoError(t, err)
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[3], "header cid = "))
	assert.True(t, strings.HasPrefix(lines[4], "block cid = "))

	lines, err = run(t, "", "block", path)
	require.NoError(t, err)
	assert.Greater(t, len(lines), 4)
	assert.Equal(t, "Block hash is ok", lines[len(lines)-1])
}

func TestBlockCommandStdin(t *testing.T) {
	js, err := json.Marshal(shared.GenesisFields())
	require.NoError(t, err)

	for _, args := range [][]string{{"--print-doc=false", "block"}, {"--print-doc=false", "block", "-"}} {
		lines, err := run(t, string(js), args...)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"header rlp = " + shared.GenesisHeaderRLP,
			"block rlp = " + shared.GenesisBlockRLP,
			"block hash = " + shared.GenesisHash,
		}, lines)
	}
}

func TestBlockCommandMismatchIsNotAnError(t *testing.T) {
	fields := shared.GenesisFields()
	fields["hash"] = "0x" + strings.Repeat("00", 32)

	lines, err := run(t, "", "--print-doc=false", "block", writeDocument(t, fields))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "Fail: Block hash is different than expected "+shared.GenesisHash))
}

func TestBlockCommandErrors(t *testing.T) {
	fields := shared.GenesisFields()
	delete(fields, "parentHash")
	lines, err := run(t, "", "block", writeDocument(t, fields))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parentHash")
	assert.Empty(t, lines)

	_, err = run(t, "", "block", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = run(t, "[]", "block")
	assert.Error(t, err)

	_, err = run(t, "{}", "--log-level", "loud", "block")
	assert.Error(t, err)
}

func TestTxCommand(t *testing.T) {
	key, err := crypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	require.NoError(t, err)
	to := common.HexToAddress("b94f5374fce5edbc8e2a8697c15331677e6ebf0b")
	signer := types.NewEIP155Signer(big.NewInt(1))
	tx, err := types.SignTx(types.NewTransaction(3, to, big.NewInt(10), 2000, big.NewInt(1), common.FromHex("5544")), signer, key)
	require.NoError(t, err)
	raw, err := tx.MarshalBinary()
	require.NoError(t, err)

	expected := []string{
		"tx rlp = " + common.Bytes2Hex(raw),
		"tx hash = " + common.Bytes2Hex(tx.Hash().Bytes()),
		"signing hash = " + common.Bytes2Hex(signer.Hash(tx).Bytes()),
		"sender = " + strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex()),
	}

	lines, err := run(t, "", "tx", common.Bytes2Hex(raw))
	require.NoError(t, err)
	assert.Equal(t, expected, lines)

	js, err := tx.MarshalJSON()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tx.json")
	require.NoError(t, ioutil.WriteFile(path, js, 0600))
	lines, err = run(t, "", "tx", path)
	require.NoError(t, err)
	assert.Equal(t, expected, lines)

	lines, err = run(t, "", "tx", "--dump", "0x"+common.Bytes2Hex(raw))
	require.NoError(t, err)
	assert.Greater(t, len(lines), len(expected))
	assert.Equal(t, expected, lines[len(lines)-len(expected):])

	_, err = run(t, "", "tx", "not-hex")
	assert.Error(t, err)
	_, err = run(t, "", "tx")
	assert.Error(t, err)
}

func TestAddressCommands(t *testing.T) {
	lines, err := run(t, "", "create", "0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0", "0x80")
	require.NoError(t, err)
	assert.Equal(t, []string{"0x08e190dcb7b73f5fcdabb43e102215c83659a76d"}, lines)

	lines, err = run(t, "", "create", "0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"0x343c43a37d37dff08ae8c4a11544c718abb4fcf8"}, lines)

	lines, err = run(t, "", "create2", "0xdeadbeef00000000000000000000000000000000", "0x", "0x00")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xb928f69bb1d91cd65274e3c79d8986362984fda3"}, lines)

	lines, err = run(t, "", "address", "--secret-key", "0x289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032")
	require.NoError(t, err)
	assert.Equal(t, []string{"0x970e8128ab834e8eac17ab8e3812f010678cf791"}, lines)

	_, err = run(t, "", "create", "0xdeadbeef", "1")
	assert.Error(t, err)
	_, err = run(t, "", "create", "0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0", "-1")
	assert.Error(t, err)
	_, err = run(t, "", "address", "0x00")
	assert.Error(t, err)
}

func TestAddressFromSignatureCommand(t *testing.T) {
	key, err := crypto.HexToECDSA("289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032")
	require.NoError(t, err)
	hash := crypto.Keccak256([]byte("message"))
	sig, err := crypto.Sign(hash, key)
	require.NoError(t, err)

	r := "0x" + common.Bytes2Hex(sig[:32])
	s := "0x" + common.Bytes2Hex(sig[32:64])
	v := big.NewInt(int64(sig[64]) + 27).String()
	lines, err := run(t, "", "address", "0x"+common.Bytes2Hex(hash), v, r, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x970e8128ab834e8eac17ab8e3812f010678cf791"}, lines)
}

func TestCalldataCommand(t *testing.T) {
	lines, err := run(t, "", "calldata", "0x00010000ff02")
	require.NoError(t, err)
	assert.Equal(t, []string{"Zero bytes = 3", "Non zero bytes = 3", "Total cost = 60"}, lines)

	_, err = run(t, "", "calldata", "0xzz")
	assert.Error(t, err)
}
