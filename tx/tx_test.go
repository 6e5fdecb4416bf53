package blockinfo_tx_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/node/basicnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	tx "github.com/vulcanize/eth-blockinfo/tx"
)

var (
	testKey, _      = crypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	testSender      = crypto.PubkeyToAddress(testKey.PublicKey)
	testAddr        = common.HexToAddress("b94f5374fce5edbc8e2a8697c15331677e6ebf0b")
	testAddr2       = common.HexToAddress("b94f5374fce5edbc8e2a8697c15331677e6ebf1a")
	testStorageKey  = crypto.Keccak256Hash(testAddr.Bytes())
	testStorageKey2 = crypto.Keccak256Hash(testAddr2.Bytes())
	accessList      = types.AccessList{
		types.AccessTuple{
			Address: testAddr,
			StorageKeys: []common.Hash{
				testStorageKey,
				testStorageKey2,
			},
		},
		types.AccessTuple{
			Address:     testAddr2,
			StorageKeys: nil,
		},
	}

	homesteadTx, _ = types.SignTx(
		types.NewTransaction(3, testAddr, big.NewInt(10), 2000, big.NewInt(1), common.FromHex("5544")),
		types.HomesteadSigner{},
		testKey,
	)
	legacyTx, _ = types.SignTx(
		types.NewTransaction(4, testAddr, big.NewInt(10), 2000, big.NewInt(1), common.FromHex("5544")),
		types.NewEIP155Signer(big.NewInt(1)),
		testKey,
	)
	accessListTx, _ = types.SignNewTx(testKey, types.NewEIP2930Signer(big.NewInt(1)), &types.AccessListTx{
		ChainID:    big.NewInt(1),
		Nonce:      5,
		To:         &testAddr,
		Value:      big.NewInt(10),
		Gas:        25000,
		GasPrice:   big.NewInt(1),
		Data:       common.FromHex("5544"),
		AccessList: accessList,
	})
	dynamicFeeTx, _ = types.SignNewTx(testKey, types.NewLondonSigner(big.NewInt(1)), &types.DynamicFeeTx{
		ChainID:    big.NewInt(1),
		Nonce:      6,
		To:         &testAddr,
		Value:      big.NewInt(10),
		Gas:        25000,
		GasTipCap:  big.NewInt(1),
		GasFeeCap:  big.NewInt(2),
		Data:       common.FromHex("5544"),
		AccessList: accessList,
	})
	txs = []*types.Transaction{homesteadTx, legacyTx, accessListTx, dynamicFeeTx}
)

func TestTransactionCodec(t *testing.T) {
	for i, gethTx := range txs {
		consensusEnc, err := gethTx.MarshalBinary()
		require.NoError(t, err)

		txBuilder := basicnode.Prototype.Any.NewBuilder()
		if err := tx.Decode(txBuilder, bytes.NewReader(consensusEnc)); err != nil {
			t.Fatalf("unable to decode transaction %d into an IPLD node: %v", i, err)
		}
		txNode := txBuilder.Build()
		if txNode.Kind() != ipld.Kind_Map {
			t.Fatalf("decoded transaction %d should be a map, got %s", i, txNode.Kind())
		}

		fromObject, err := tx.EncodeTx("transactions[0]", txNode)
		if err != nil {
			t.Fatalf("unable to encode transaction %d object: %v", i, err)
		}
		if !bytes.Equal(fromObject, consensusEnc) {
			t.Errorf("transaction %d encoding (%x) does not match the expected consensus encoding (%x)", i, []byte(fromObject), consensusEnc)
		}

		fromHex, err := tx.EncodeTx("transactions[0]", basicnode.NewString(hexutil.Encode(consensusEnc)))
		if err != nil {
			t.Fatalf("unable to encode transaction %d hex: %v", i, err)
		}
		if !bytes.Equal(fromHex, consensusEnc) {
			t.Errorf("transaction %d encoding (%x) does not match the expected consensus encoding (%x)", i, []byte(fromHex), consensusEnc)
		}
		if fromHex.Hash() != gethTx.Hash() {
			t.Errorf("transaction %d hash (%x) does not match expected hash (%x)", i, fromHex.Hash(), gethTx.Hash())
		}
	}
}

func TestTransactionBodyElement(t *testing.T) {
	legacyEnc, err := legacyTx.MarshalBinary()
	require.NoError(t, err)
	legacy := tx.Tx(legacyEnc)
	assert.True(t, legacy.IsLegacy())
	assert.Equal(t, rlp.RawValue(legacyEnc), legacy.BodyElement())

	typedEnc, err := dynamicFeeTx.MarshalBinary()
	require.NoError(t, err)
	typed := tx.Tx(typedEnc)
	assert.False(t, typed.IsLegacy())
	assert.Equal(t, typedEnc, typed.BodyElement())

	body, err := rlp.EncodeToBytes([]interface{}{legacy.BodyElement(), typed.BodyElement()})
	require.NoError(t, err)
	want, err := rlp.EncodeToBytes(types.Transactions{legacyTx, dynamicFeeTx})
	require.NoError(t, err)
	assert.Equal(t, want, body)
}

func TestTransactionInspect(t *testing.T) {
	signers := []types.Signer{
		types.HomesteadSigner{},
		types.NewEIP155Signer(big.NewInt(1)),
		types.NewEIP2930Signer(big.NewInt(1)),
		types.NewLondonSigner(big.NewInt(1)),
	}
	for i, gethTx := range txs {
		enc, err := gethTx.MarshalBinary()
		require.NoError(t, err)
		info, err := tx.Inspect(tx.Tx(enc))
		require.NoError(t, err, "transaction %d", i)
		assert.Equal(t, testSender, info.Sender, "transaction %d", i)
		assert.Equal(t, gethTx.Hash(), info.Hash, "transaction %d", i)
		assert.Equal(t, signers[i].Hash(gethTx), info.SigHash, "transaction %d", i)
		assert.Equal(t, enc, info.Raw, "transaction %d", i)
	}
	_, err := tx.Inspect(tx.Tx{0x01, 0x02})
	assert.Error(t, err)
}

func TestTransactionInvalidEntries(t *testing.T) {
	for _, node := range []ipld.Node{
		basicnode.NewInt(7),
		basicnode.NewString("f86c"),
		basicnode.NewBool(true),
		basicnode.NewString("0xc5"),
		basicnode.NewString("0xc20102ff"),
		basicnode.NewString("0xf8"),
	} {
		_, err := tx.EncodeTx("transactions[0]", node)
		var typeErr *blockinfo.TypeError
		assert.True(t, errors.As(err, &typeErr), "expected a type error for %s, got %v", node.Kind(), err)
	}

	mb := basicnode.Prototype.Map.NewBuilder()
	ma, err := mb.BeginMap(1)
	require.NoError(t, err)
	require.NoError(t, ma.AssembleKey().AssignString("nonce"))
	require.NoError(t, ma.AssembleValue().AssignString("0x1"))
	require.NoError(t, ma.Finish())
	_, err = tx.EncodeTx("transactions[0]", mb.Build())
	assert.Error(t, err)
}
