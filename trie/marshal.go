package blockinfo_trie

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	gethtrie "github.com/ethereum/go-ethereum/trie"
	log "github.com/sirupsen/logrus"
)

// Hasher is the ordered accumulator roots are derived with
type Hasher = types.TrieHasher

// NewHasher returns the accumulator used for transaction and withdrawal roots
func NewHasher() Hasher {
	return gethtrie.NewStackTrie(nil)
}

// Entries are trie values keyed by the RLP encoding of their position
type Entries [][]byte

// Len satisfies types.DerivableList
func (e Entries) Len() int { return len(e) }

// EncodeIndex satisfies types.DerivableList
func (e Entries) EncodeIndex(i int, w *bytes.Buffer) {
	w.Write(e[i])
}

// DeriveRoot inserts every entry under its RLP encoded index and returns the root digest.
// A nil hasher selects NewHasher.
func DeriveRoot(entries Entries, hasher Hasher) common.Hash {
	if hasher == nil {
		hasher = NewHasher()
	}
	root := types.DeriveSha(entries, hasher)
	log.WithFields(log.Fields{
		"entries": len(entries),
		"root":    root.Hex(),
	}).Debug("derived trie root")
	return root
}
