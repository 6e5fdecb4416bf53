package blockinfo_tx

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	"github.com/vulcanize/eth-blockinfo/shared"
)

// Tx is one block transaction in its canonical binary form:
// the RLP list for legacy transactions, the EIP-2718 envelope for typed ones
type Tx []byte

// IsLegacy reports whether the encoding is a bare RLP list
func (t Tx) IsLegacy() bool {
	return len(t) > 0 && t[0] >= 0xc0
}

// BodyElement returns the value the transaction contributes to a block body list.
// Legacy transactions are embedded as lists, typed transactions as byte strings.
func (t Tx) BodyElement() interface{} {
	if t.IsLegacy() {
		return rlp.RawValue(t)
	}
	return []byte(t)
}

// Hash returns the transaction hash
func (t Tx) Hash() common.Hash {
	return crypto.Keccak256Hash(t)
}

// Encode writes the canonical binary encoding of a transaction document.
// This function is registered via the go-ipld-prime multicodec registry for
// code 0x93 by the plugin package.
func Encode(node ipld.Node, w io.Writer) error {
	// 1KiB can be allocated on the stack, and covers most small nodes
	// without having to grow the buffer and cause allocations.
	enc := make([]byte, 0, 1024)

	enc, err := AppendEncode(enc, node)
	if err != nil {
		return err
	}
	_, err = w.Write(enc)
	return err
}

// AppendEncode is like Encode, but it uses a destination buffer directly.
func AppendEncode(enc []byte, inNode ipld.Node) ([]byte, error) {
	tx, err := EncodeTx("transaction", inNode)
	if err != nil {
		return enc, err
	}
	return append(enc, tx...), nil
}

// EncodeTx canonicalizes one entry of a document's transaction list.
// The entry is either 0x-prefixed hex of the canonical encoding, or a JSON-RPC style
// transaction object.
func EncodeTx(field string, node ipld.Node) (Tx, error) {
	switch node.Kind() {
	case ipld.Kind_String:
		b, err := shared.NormalizeRaw(field, node)
		if err != nil {
			return nil, err
		}
		if t := Tx(b); t.IsLegacy() {
			kind, _, rest, err := rlp.Split(t)
			if err != nil || kind != rlp.List || len(rest) != 0 {
				return nil, &blockinfo.TypeError{Field: field, Reason: "expected a single RLP encoded legacy transaction"}
			}
		}
		return Tx(b), nil
	case ipld.Kind_Map:
		tx, err := PackTx(node)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction %s (%w)", field, err)
		}
		b, err := tx.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("invalid transaction %s (unable to binary marshal transaction: %v)", field, err)
		}
		return Tx(b), nil
	default:
		return nil, &blockinfo.TypeError{Field: field, Reason: "expected a hex string or a transaction object, got " + node.Kind().String()}
	}
}

// PackTx decodes a JSON-RPC style transaction object into a go-ethereum transaction
func PackTx(node ipld.Node) (*types.Transaction, error) {
	js, err := shared.EncodeJSON(node)
	if err != nil {
		return nil, err
	}
	tx := new(types.Transaction)
	if err := tx.UnmarshalJSON(js); err != nil {
		return nil, err
	}
	return tx, nil
}

// Info summarises a signed transaction
type Info struct {
	Hash    common.Hash
	SigHash common.Hash
	Sender  common.Address
	Raw     []byte
	Tx      *types.Transaction
}

// Inspect decodes a canonical transaction encoding and recovers its sender
func Inspect(t Tx) (*Info, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(t); err != nil {
		return nil, fmt.Errorf("unable to decode transaction (%v)", err)
	}
	var signer types.Signer = types.HomesteadSigner{}
	if tx.Protected() {
		signer = types.LatestSignerForChainID(tx.ChainId())
	}
	sender, err := types.Sender(signer, tx)
	if err != nil {
		return nil, fmt.Errorf("unable to recover transaction sender (%v)", err)
	}
	return &Info{
		Hash:    tx.Hash(),
		SigHash: signer.Hash(tx),
		Sender:  sender,
		Raw:     t,
		Tx:      tx,
	}, nil
}
