package blockinfo_txtrie

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ipld/go-ipld-prime"

	blockinfo_trie "github.com/vulcanize/eth-blockinfo/trie"
	blockinfo_tx "github.com/vulcanize/eth-blockinfo/tx"
	blockinfo_txlist "github.com/vulcanize/eth-blockinfo/tx_list"
)

// RootHash derives the transactions root of a document's literal transaction list.
// This is a pure wrapping around RootHashOf for list nodes.
func RootHash(field string, node ipld.Node) (common.Hash, error) {
	txs, err := blockinfo_txlist.EncodeTxs(field, node)
	if err != nil {
		return common.Hash{}, err
	}
	return RootHashOf(txs), nil
}

// RootHashOf inserts each transaction's canonical binary under its RLP encoded position
func RootHashOf(txs []blockinfo_tx.Tx) common.Hash {
	entries := make(blockinfo_trie.Entries, len(txs))
	for i, tx := range txs {
		entries[i] = tx
	}
	return blockinfo_trie.DeriveRoot(entries, nil)
}
