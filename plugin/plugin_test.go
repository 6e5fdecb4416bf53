package plugin_test

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-cid"
	coreplugin "github.com/ipfs/kubo/plugin"
	"github.com/ipld/go-ipld-prime"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/ipld/go-ipld-prime/multicodec"
	"github.com/ipld/go-ipld-prime/node/basicnode"
	"github.com/ipld/go-ipld-prime/storage/memstore"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blockplugin "github.com/vulcanize/eth-blockinfo/plugin"
	"github.com/vulcanize/eth-blockinfo/shared"
)

func register(t *testing.T) {
	require.Len(t, blockplugin.Plugins, 1)
	p, ok := blockplugin.Plugins[0].(coreplugin.PluginIPLD)
	require.True(t, ok)
	assert.Equal(t, "ipld-eth-blockinfo", p.Name())
	require.NoError(t, p.Init(nil))
	require.NoError(t, p.Register(multicodec.DefaultRegistry))
}

func TestRegisteredHeaderCodec(t *testing.T) {
	register(t)
	encoder, err := multicodec.LookupEncoder(cid.EthBlock)
	require.NoError(t, err)
	decoder, err := multicodec.LookupDecoder(cid.EthBlock)
	require.NoError(t, err)

	doc := shared.DocumentFromMap(t, shared.GenesisFields())
	enc := new(bytes.Buffer)
	require.NoError(t, encoder(doc, enc))
	assert.Equal(t, common.Hex2Bytes(shared.GenesisHeaderRLP), enc.Bytes())

	nb := basicnode.Prototype.Any.NewBuilder()
	require.NoError(t, decoder(nb, bytes.NewReader(enc.Bytes())))
	miner, ok, err := shared.LookupString(nb.Build(), "miner")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0x"+common.Bytes2Hex(make([]byte, 20)), miner)
}

func TestBlockDocumentLink(t *testing.T) {
	register(t)
	lsys := cidlink.DefaultLinkSystem()
	store := &memstore.Store{}
	lsys.SetWriteStorage(store)
	lsys.SetReadStorage(store)
	lp := cidlink.LinkPrototype{Prefix: cid.Prefix{
		Version:  1,
		Codec:    cid.EthBlock,
		MhType:   multihash.KECCAK_256,
		MhLength: -1,
	}}

	doc := shared.DocumentFromMap(t, shared.GenesisFields())
	lnk, err := lsys.Store(ipld.LinkContext{}, lp, doc)
	require.NoError(t, err)
	c := lnk.(cidlink.Link).Cid
	decoded, err := multihash.Decode(c.Hash())
	require.NoError(t, err)
	assert.Equal(t, common.Hex2Bytes(shared.GenesisHash), decoded.Digest)
	assert.Equal(t, shared.Keccak256ToCid(cid.EthBlock, decoded.Digest), c)

	loaded, err := lsys.Load(ipld.LinkContext{}, lnk, basicnode.Prototype.Any)
	require.NoError(t, err)
	nonce, _, err := shared.LookupString(loaded, "nonce")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000042", nonce)
}
