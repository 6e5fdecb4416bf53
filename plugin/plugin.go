package plugin

import (
	"github.com/ipfs/kubo/plugin"
	"github.com/ipld/go-ipld-prime/multicodec"

	header "github.com/vulcanize/eth-blockinfo/header"
	tx "github.com/vulcanize/eth-blockinfo/tx"
	uncles "github.com/vulcanize/eth-blockinfo/uncles"
)

// Plugins is exported list of plugins that will be loaded
var Plugins = []plugin.Plugin{
	&blockInfoPlugin{},
}

type blockInfoPlugin struct{}

var _ plugin.PluginIPLD = (*blockInfoPlugin)(nil)

// Name satisfies the Plugin interface
func (*blockInfoPlugin) Name() string {
	return "ipld-eth-blockinfo"
}

// Version satisfies the Plugin interface
func (*blockInfoPlugin) Version() string {
	return "0.0.1"
}

// Init satisfies the Plugin interface
func (*blockInfoPlugin) Init(_ *plugin.Environment) error {
	return nil
}

// Register satisfies the PluginIPLD interface.
// Block documents encode to their header RLP, so a block document stored under
// the header codec is addressed by its block hash.
func (*blockInfoPlugin) Register(reg multicodec.Registry) error {
	reg.RegisterDecoder(header.MultiCodecType, header.Decode)
	reg.RegisterDecoder(uncles.MultiCodecType, uncles.Decode)
	reg.RegisterDecoder(tx.MultiCodecType, tx.Decode)

	reg.RegisterEncoder(header.MultiCodecType, header.Encode)
	reg.RegisterEncoder(uncles.MultiCodecType, uncles.Encode)
	reg.RegisterEncoder(tx.MultiCodecType, tx.Encode)
	return nil
}
