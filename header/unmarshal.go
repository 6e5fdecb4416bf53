package blockinfo_header

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	"github.com/vulcanize/eth-blockinfo/shared"
)

// MultiCodecType is the multicodec header encodings are registered under
var MultiCodecType = uint64(cid.EthBlock)

// Decode provides a codec decode interface from header RLP to a canonical block document.
// This function is registered via the go-ipld-prime multicodec registry for
// code 0x90 by the plugin package.
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
//
// Optional fields are assigned positionally, so a header that skips an optional
// field while carrying a later one cannot be told apart from one that does not.
func DecodeBytes(na ipld.NodeAssembler, src []byte) error {
	var values [][]byte
	if err := rlp.DecodeBytes(src, &values); err != nil {
		return fmt.Errorf("invalid header binary (%v)", err)
	}
	fields := blockinfo.HeaderSchema.Fields()
	if len(values) < len(blockinfo.HeaderSchema.Required) || len(values) > len(fields) {
		return fmt.Errorf("invalid header binary (expected %d to %d fields, got %d)",
			len(blockinfo.HeaderSchema.Required), len(fields), len(values))
	}
	ma, err := na.BeginMap(int64(len(values)))
	if err != nil {
		return err
	}
	for i, v := range values {
		if err := ma.AssembleKey().AssignString(fields[i].Name); err != nil {
			return err
		}
		if err := ma.AssembleValue().AssignString(hexutil.Encode(v)); err != nil {
			return err
		}
	}
	return ma.Finish()
}
