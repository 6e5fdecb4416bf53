package block

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"
	log "github.com/sirupsen/logrus"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	blockinfo_header "github.com/vulcanize/eth-blockinfo/header"
	blockinfo_txlist "github.com/vulcanize/eth-blockinfo/tx_list"
	blockinfo_withdrawaltrie "github.com/vulcanize/eth-blockinfo/withdrawal_trie"
)

// Body is the part of the block encoding that follows the header
type Body struct {
	Transactions []interface{}
	Ommers       []interface{}
	// Withdrawals is only encoded when the header carries a withdrawals root
	Withdrawals    []blockinfo_withdrawaltrie.Withdrawal
	HasWithdrawals bool
}

// List returns the body elements in block encoding order
func (b *Body) List() []interface{} {
	list := []interface{}{b.Transactions, b.Ommers}
	if b.HasWithdrawals {
		list = append(list, b.Withdrawals)
	}
	return list
}

// Process computes the header encoding and hash of a block document, the full block
// encoding when it can be reconstructed, and the verification results.
// Nothing is written anywhere; structural errors abort before any result exists.
func Process(doc ipld.Node) (*Result, error) {
	header, err := blockinfo_header.EncodeHeader(doc)
	if err != nil {
		return nil, err
	}
	headerRLP, err := header.RLP()
	if err != nil {
		return nil, fmt.Errorf("unable to RLP encode header (%v)", err)
	}
	hash, err := header.Hash()
	if err != nil {
		return nil, err
	}
	res := &Result{
		Document:  doc,
		Header:    header,
		HeaderRLP: headerRLP,
		Hash:      hash,
	}
	body, err := AssembleBody(header)
	if err != nil {
		return nil, err
	}
	if body != nil {
		res.Body = body
		res.BlockRLP, err = EncodeBlock(header, body)
		if err != nil {
			return nil, err
		}
	}
	res.Checks, err = Verify(doc, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EncodeBlock returns the RLP encoding of [header, transactions, ommers(, withdrawals)]
func EncodeBlock(header *blockinfo_header.Header, body *Body) ([]byte, error) {
	blk := append([]interface{}{header.List()}, body.List()...)
	enc, err := rlp.EncodeToBytes(blk)
	if err != nil {
		return nil, fmt.Errorf("unable to RLP encode block (%v)", err)
	}
	return enc, nil
}

// AssembleBody rebuilds the block body from the literal lists the document carries.
// A root that claims the empty digest stands in for an empty list. It returns nil
// when some claimed root has no literal list to back it.
func AssembleBody(header *blockinfo_header.Header) (*Body, error) {
	body := new(Body)

	txRoot, _ := header.Get("transactionsRoot")
	switch {
	case txRoot.IsLiteralList():
		txs, err := blockinfo_txlist.EncodeTxs(txRoot.Alias, txRoot.Node)
		if err != nil {
			return nil, err
		}
		body.Transactions = blockinfo_txlist.BodyList(txs)
	case bytes.Equal(txRoot.Value, blockinfo.EmptyRootHash.Bytes()):
		body.Transactions = []interface{}{}
	default:
		log.WithField("transactionsRoot", fmt.Sprintf("%x", txRoot.Value)).Debug("block not reconstructable without the transactions")
		return nil, nil
	}

	ommersHash, _ := header.Get("sha3Uncles")
	switch {
	case ommersHash.IsLiteralList():
		ommers, err := blockinfo_header.EncodeOmmers(ommersHash.Alias, ommersHash.Node)
		if err != nil {
			return nil, err
		}
		body.Ommers = ommers
	case ommersHash.Defaulted(), bytes.Equal(ommersHash.Value, blockinfo.EmptyOmmersHash.Bytes()):
		body.Ommers = []interface{}{}
	default:
		log.WithField("sha3Uncles", fmt.Sprintf("%x", ommersHash.Value)).Debug("block not reconstructable without the ommers")
		return nil, nil
	}

	wdRoot, ok := header.Get("withdrawalsRoot")
	if !ok {
		return body, nil
	}
	body.HasWithdrawals = true
	switch {
	case wdRoot.IsLiteralList():
		withdrawals, err := blockinfo_withdrawaltrie.EncodeWithdrawals(wdRoot.Alias, wdRoot.Node)
		if err != nil {
			return nil, err
		}
		body.Withdrawals = withdrawals
	case bytes.Equal(wdRoot.Value, blockinfo.EmptyRootHash.Bytes()):
		body.Withdrawals = []blockinfo_withdrawaltrie.Withdrawal{}
	default:
		log.WithField("withdrawalsRoot", fmt.Sprintf("%x", wdRoot.Value)).Debug("block not reconstructable without the withdrawals")
		return nil, nil
	}
	return body, nil
}
