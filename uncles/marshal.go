package blockinfo_uncles

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"

	blockinfo_header "github.com/vulcanize/eth-blockinfo/header"
	"github.com/vulcanize/eth-blockinfo/shared"
)

// Encode writes the RLP encoding of a document's ommer list.
// This function is registered via the go-ipld-prime multicodec registry for
// code 0x91 by the plugin package.
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
	uncles, err := EncodeUncles("ommers", inNode)
	if err != nil {
		return enc, err
	}
	wbs := shared.NewWriteableByteSlice(&enc)
	if err := rlp.Encode(wbs, uncles); err != nil {
		return enc, fmt.Errorf("invalid ommers form (unable to RLP encode ommers: %v)", err)
	}
	return enc, nil
}

// EncodeUncles returns the ommer list as it is embedded in a block body.
// This is a pure wrapping around blockinfo_header.EncodeOmmers to expose it from this package
func EncodeUncles(field string, node ipld.Node) ([]interface{}, error) {
	return blockinfo_header.EncodeOmmers(field, node)
}

// Hash returns the ommers hash of a document's ommer list.
// This is a pure wrapping around blockinfo_header.OmmersHash to expose it from this package
func Hash(field string, node ipld.Node) (common.Hash, error) {
	return blockinfo_header.OmmersHash(field, node)
}
