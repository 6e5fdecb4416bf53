package blockinfo_tx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagjson"

	"github.com/vulcanize/eth-blockinfo/shared"
)

// MultiCodecType is the multicodec transaction encodings are registered under
var MultiCodecType = uint64(cid.EthTx)

// Decode reads a canonical transaction encoding and assembles its JSON-RPC form.
// This function is registered via the go-ipld-prime multicodec registry for
// code 0x93 by the plugin package.
func Decode(na ipld.NodeAssembler, in io.Reader) error {
	src, err := shared.ReadBytes(in)
	if err != nil {
		return err
	}
	return DecodeBytes(na, src)
}

// DecodeBytes is like Decode, but it uses an input buffer directly.
func DecodeBytes(na ipld.NodeAssembler, src []byte) error {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(src); err != nil {
		return fmt.Errorf("invalid transaction binary (%v)", err)
	}
	js, err := tx.MarshalJSON()
	if err != nil {
		return err
	}
	return dagjson.Decode(na, bytes.NewReader(js))
}
