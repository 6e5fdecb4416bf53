package blockinfo_txlist

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	"github.com/vulcanize/eth-blockinfo/shared"
	blockinfo_tx "github.com/vulcanize/eth-blockinfo/tx"
)

// Encode writes the block body RLP encoding of a document's transaction list.
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
// This means less copying of bytes, and if the destination has enough capacity,
// fewer allocations.
func AppendEncode(enc []byte, inNode ipld.Node) ([]byte, error) {
	txs, err := EncodeTxs("transactions", inNode)
	if err != nil {
		return enc, err
	}
	wbs := shared.NewWriteableByteSlice(&enc)
	if err := rlp.Encode(wbs, BodyList(txs)); err != nil {
		return enc, fmt.Errorf("invalid transactions form (unable to RLP encode transactions: %v)", err)
	}
	return enc, nil
}

// EncodeTxs canonicalizes every entry of a transaction list node, in document order
func EncodeTxs(field string, node ipld.Node) ([]blockinfo_tx.Tx, error) {
	if node.Kind() != ipld.Kind_List {
		return nil, &blockinfo.TypeError{Field: field, Reason: "expected a list, got " + node.Kind().String()}
	}
	txs := make([]blockinfo_tx.Tx, 0, node.Length())
	txsIt := node.ListIterator()
	for !txsIt.Done() {
		i, txNode, err := txsIt.Next()
		if err != nil {
			return nil, err
		}
		tx, err := blockinfo_tx.EncodeTx(fmt.Sprintf("%s[%d]", field, i), txNode)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// BodyList returns the transaction list as it is embedded in a block body
func BodyList(txs []blockinfo_tx.Tx) []interface{} {
	list := make([]interface{}, len(txs))
	for i, tx := range txs {
		list[i] = tx.BodyElement()
	}
	return list
}
