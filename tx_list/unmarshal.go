package blockinfo_txlist

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"

	blockinfo_tx "github.com/vulcanize/eth-blockinfo/tx"
	"github.com/vulcanize/eth-blockinfo/shared"
)

// Decode reads a block body transaction list and assembles a list of JSON-RPC style transactions.
func Decode(na ipld.NodeAssembler, in io.Reader) error {
	src, err := shared.ReadBytes(in)
	if err != nil {
		return err
	}
	return DecodeBytes(na, src)
}

// DecodeBytes is like Decode, but it uses an input buffer directly.
// Decode will grab or read all the bytes from an io.Reader anyway, so this can
// save having to copy the bytes or create a bytes.Buffer.
func DecodeBytes(na ipld.NodeAssembler, src []byte) error {
	var txs []*types.Transaction
	if err := rlp.DecodeBytes(src, &txs); err != nil {
		return err
	}
	return DecodeTxs(na, txs)
}

// DecodeTxs unpacks a list of go-ethereum Transactions into the NodeAssembler
func DecodeTxs(na ipld.NodeAssembler, txs []*types.Transaction) error {
	la, err := na.BeginList(int64(len(txs)))
	if err != nil {
		return err
	}
	for i, tx := range txs {
		bin, err := tx.MarshalBinary()
		if err != nil {
			return fmt.Errorf("invalid transactions binary (%v)", err)
		}
		node := la.ValuePrototype(int64(i)).NewBuilder()
		if err := blockinfo_tx.DecodeBytes(node, bin); err != nil {
			return fmt.Errorf("invalid transactions binary (%v)", err)
		}
		if err := la.AssembleValue().AssignNode(node.Build()); err != nil {
			return err
		}
	}
	return la.Finish()
}
