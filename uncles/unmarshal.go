package blockinfo_uncles

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"

	blockinfo_header "github.com/vulcanize/eth-blockinfo/header"
	"github.com/vulcanize/eth-blockinfo/shared"
)

// MultiCodecType is the multicodec ommer list encodings are registered under
var MultiCodecType = uint64(cid.EthBlockList)

// Decode reads an RLP encoded ommer list and assembles a list of canonical header documents.
// This function is registered via the go-ipld-prime multicodec registry for
// code 0x91 by the plugin package.
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
	var uncles []rlp.RawValue
	if err := rlp.DecodeBytes(src, &uncles); err != nil {
		return err
	}
	la, err := na.BeginList(int64(len(uncles)))
	if err != nil {
		return err
	}
	for i, uncle := range uncles {
		node := la.ValuePrototype(int64(i)).NewBuilder()
		if err := blockinfo_header.DecodeBytes(node, uncle); err != nil {
			return fmt.Errorf("invalid ommers binary (%v)", err)
		}
		if err := la.AssembleValue().AssignNode(node.Build()); err != nil {
			return err
		}
	}
	return la.Finish()
}
