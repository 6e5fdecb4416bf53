/*
Package blockinfo canonicalizes loosely specified Ethereum block documents and
reproduces their consensus encodings.

A block document is a JSON object as emitted by clients, JSON-RPC, test fillers
or block explorers. Field names vary across producers and protocol revisions
(sha3Uncles vs ommersHash, miner vs coinbase vs feeRecipient, ...). The
HeaderSchema table maps every accepted alias onto the protocol-ordered header
fields, so that the header can be RLP encoded and hashed byte-for-byte the way
the chain did.

The subpackages do the work:

	shared          - document decoding and value normalization
	header          - field resolution, HeaderList assembly, header RLP codec
	trie            - ordered root derivation over indexed entries
	tx              - single transactions, transaction codec and inspection
	tx_trie         - transactions root
	withdrawal_trie - withdrawals root
	uncles          - ommer list and ommers hash
	tx_list         - block body transaction list
	block           - full block assembly, verification and reporting
	plugin          - kubo plugin registering the header, uncles and tx codecs
	address         - CREATE/CREATE2 addresses, key and signature recovery
	calldata        - calldata gas pricing

The ethblockinfo command under cmd/ wraps all of the above.

Use the HeaderSchema to look up a field by its canonical name (e.g.
blockinfo.HeaderSchema.Field("stateRoot")).
*/
package blockinfo
