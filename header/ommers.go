package blockinfo_header

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	"github.com/vulcanize/eth-blockinfo/shared"
)

// EncodeOmmers canonicalizes every entry of an ommer list node, in document order.
// An entry is either 0x-prefixed hex of a header RLP encoding, or a header document.
func EncodeOmmers(field string, node ipld.Node) ([]interface{}, error) {
	if node.Kind() != ipld.Kind_List {
		return nil, &blockinfo.TypeError{Field: field, Reason: "expected a list, got " + node.Kind().String()}
	}
	ommers := make([]interface{}, 0, node.Length())
	it := node.ListIterator()
	for !it.Done() {
		i, ommerNode, err := it.Next()
		if err != nil {
			return nil, err
		}
		ommer, err := encodeOmmer(fmt.Sprintf("%s[%d]", field, i), ommerNode)
		if err != nil {
			return nil, err
		}
		ommers = append(ommers, ommer)
	}
	return ommers, nil
}

// OmmersHash returns the keccak256 of the RLP encoded ommer list
func OmmersHash(field string, node ipld.Node) (common.Hash, error) {
	ommers, err := EncodeOmmers(field, node)
	if err != nil {
		return common.Hash{}, err
	}
	enc, err := rlp.EncodeToBytes(ommers)
	if err != nil {
		return common.Hash{}, fmt.Errorf("unable to RLP encode ommers (%v)", err)
	}
	return crypto.Keccak256Hash(enc), nil
}

func encodeOmmer(field string, node ipld.Node) (interface{}, error) {
	switch node.Kind() {
	case ipld.Kind_String:
		raw, err := shared.NormalizeRaw(field, node)
		if err != nil {
			return nil, err
		}
		kind, _, rest, err := rlp.Split(raw)
		if err != nil || kind != rlp.List || len(rest) != 0 {
			return nil, &blockinfo.TypeError{Field: field, Reason: "expected an RLP encoded header"}
		}
		return rlp.RawValue(raw), nil
	case ipld.Kind_Map:
		ommer, err := EncodeHeader(node)
		if err != nil {
			return nil, fmt.Errorf("invalid ommer %s (%w)", field, err)
		}
		return ommer.List(), nil
	default:
		return nil, &blockinfo.TypeError{Field: field, Reason: "expected a hex string or a header object, got " + node.Kind().String()}
	}
}
