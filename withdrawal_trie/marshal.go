package blockinfo_withdrawaltrie

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	"github.com/vulcanize/eth-blockinfo/shared"
	blockinfo_trie "github.com/vulcanize/eth-blockinfo/trie"
)

// Withdrawal is the RLP field list of one withdrawal: index, validator index, address, amount
type Withdrawal [][]byte

// RootHash derives the withdrawals root of a document's literal withdrawal list
func RootHash(field string, node ipld.Node) (common.Hash, error) {
	withdrawals, err := EncodeWithdrawals(field, node)
	if err != nil {
		return common.Hash{}, err
	}
	return RootHashOf(withdrawals)
}

// RootHashOf inserts each RLP encoded withdrawal under its RLP encoded position
func RootHashOf(withdrawals []Withdrawal) (common.Hash, error) {
	entries := make(blockinfo_trie.Entries, len(withdrawals))
	for i, w := range withdrawals {
		enc, err := rlp.EncodeToBytes(w)
		if err != nil {
			return common.Hash{}, fmt.Errorf("unable to RLP encode withdrawal %d (%v)", i, err)
		}
		entries[i] = enc
	}
	return blockinfo_trie.DeriveRoot(entries, nil), nil
}

// EncodeWithdrawals normalizes every entry of a withdrawal list node, in document order
func EncodeWithdrawals(field string, node ipld.Node) ([]Withdrawal, error) {
	if node.Kind() != ipld.Kind_List {
		return nil, &blockinfo.TypeError{Field: field, Reason: "expected a list, got " + node.Kind().String()}
	}
	withdrawals := make([]Withdrawal, 0, node.Length())
	it := node.ListIterator()
	for !it.Done() {
		i, wNode, err := it.Next()
		if err != nil {
			return nil, err
		}
		w, err := EncodeWithdrawal(int(i), wNode)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}

// EncodeWithdrawal normalizes the four mandatory keys of one withdrawal entry
func EncodeWithdrawal(index int, node ipld.Node) (Withdrawal, error) {
	if node.Kind() != ipld.Kind_Map {
		return nil, &blockinfo.TypeError{
			Field:  fmt.Sprintf("withdrawals[%d]", index),
			Reason: "expected an object, got " + node.Kind().String(),
		}
	}
	w := make(Withdrawal, 0, len(blockinfo.WithdrawalFields))
	for _, key := range blockinfo.WithdrawalFields {
		if !shared.Has(node, key) {
			return nil, &blockinfo.MissingWithdrawalFieldError{Index: index, Field: key}
		}
		v, err := node.LookupByString(key)
		if err != nil {
			return nil, err
		}
		b, err := shared.NormalizeScalar(key, v)
		if err != nil {
			return nil, err
		}
		w = append(w, b)
	}
	return w, nil
}
