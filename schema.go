package blockinfo

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"
)

var (
	// EmptyOmmersHash is the keccak256 of the RLP encoding of an empty list,
	// the ommers hash of every block without ommers
	EmptyOmmersHash = rlpHash([]interface{}{})
	// EmptyRootHash is the root of an empty trie
	EmptyRootHash = rlpHash([]byte{})
)

// Rule selects how a field's document value becomes an RLP value.
type Rule int

const (
	// Plain fields hold 0x-prefixed hex; a lone zero byte collapses to the empty string
	Plain Rule = iota
	// RawBytes fields are opaque byte strings and never collapse
	RawBytes
	// TransactionRoot fields accept a literal transaction list in place of the root
	TransactionRoot
	// WithdrawalRoot fields accept a literal withdrawal list in place of the root
	WithdrawalRoot
	// OmmersHash fields accept a literal ommer list in place of the hash
	OmmersHash
)

func (r Rule) String() string {
	switch r {
	case Plain:
		return "Plain"
	case RawBytes:
		return "RawBytes"
	case TransactionRoot:
		return "TransactionRoot"
	case WithdrawalRoot:
		return "WithdrawalRoot"
	case OmmersHash:
		return "OmmersHash"
	default:
		return "Unknown"
	}
}

// CanonicalField is one entry of the protocol-ordered header schema
type CanonicalField struct {
	Name string
	// Aliases are tried in order, the first one present in the document wins
	Aliases    []string
	Required   bool
	HasDefault bool
	Default    []byte
	Rule       Rule
}

// Lookup returns the value found under the first alias present in the document.
// JSON null counts as absent.
func (f CanonicalField) Lookup(doc ipld.Node) (string, ipld.Node, bool) {
	for _, alias := range f.Aliases {
		n, err := doc.LookupByString(alias)
		if err != nil || n == nil || n.IsNull() || n.IsAbsent() {
			continue
		}
		return alias, n, true
	}
	return "", nil, false
}

// Schema is the ordered header field table
type Schema struct {
	Required []CanonicalField
	Optional []CanonicalField
}

// Fields returns the required fields followed by the optional fields, in protocol order
func (s Schema) Fields() []CanonicalField {
	fields := make([]CanonicalField, 0, len(s.Required)+len(s.Optional))
	fields = append(fields, s.Required...)
	return append(fields, s.Optional...)
}

// Field returns the field with the given canonical name
func (s Schema) Field(name string) (CanonicalField, bool) {
	for _, f := range s.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return CanonicalField{}, false
}

// HeaderSchema lists every header field accepted across protocol revisions.
// Canonical names are the JSON-RPC names; each is also one of its own aliases.
var HeaderSchema = Schema{
	Required: []CanonicalField{
		{Name: "parentHash", Aliases: []string{"parentHash"}, Required: true},
		{
			Name:       "sha3Uncles",
			Aliases:    []string{"ommers", "ommersHash", "sha3Uncles", "uncleHash"},
			Required:   true,
			HasDefault: true,
			Default:    EmptyOmmersHash.Bytes(),
			Rule:       OmmersHash,
		},
		{Name: "miner", Aliases: []string{"coinbase", "miner", "feeRecipient"}, Required: true},
		{Name: "stateRoot", Aliases: []string{"stateRoot"}, Required: true},
		{
			Name:     "transactionsRoot",
			Aliases:  []string{"transactions", "transactionsTrie", "transactionsRoot"},
			Required: true,
			Rule:     TransactionRoot,
		},
		{Name: "receiptsRoot", Aliases: []string{"receiptRoot", "receiptsRoot", "receiptTrie"}, Required: true},
		{Name: "logsBloom", Aliases: []string{"bloom", "logsBloom"}, Required: true},
		{Name: "difficulty", Aliases: []string{"difficulty"}, Required: true, HasDefault: true, Default: []byte{}},
		{Name: "number", Aliases: []string{"blockNumber", "number"}, Required: true},
		{Name: "gasLimit", Aliases: []string{"gasLimit"}, Required: true},
		{Name: "gasUsed", Aliases: []string{"gasUsed"}, Required: true},
		{Name: "timestamp", Aliases: []string{"timestamp"}, Required: true},
		{Name: "extraData", Aliases: []string{"extraData"}, Required: true, Rule: RawBytes},
		{Name: "mixHash", Aliases: []string{"mixHash", "prevRandao", "random"}, Required: true},
		{Name: "nonce", Aliases: []string{"nonce"}, Required: true, HasDefault: true, Default: make([]byte, 8)},
	},
	Optional: []CanonicalField{
		{Name: "baseFeePerGas", Aliases: []string{"baseFeePerGas"}},
		{Name: "withdrawalsRoot", Aliases: []string{"withdrawals", "withdrawalsRoot"}, Rule: WithdrawalRoot},
		{Name: "blobGasUsed", Aliases: []string{"blobGasUsed", "dataGasUsed"}},
		{Name: "excessBlobGas", Aliases: []string{"excessBlobGas", "excessDataGas"}},
		{Name: "parentBeaconBlockRoot", Aliases: []string{"parentBeaconBlockRoot", "parentBeaconRoot"}},
		{Name: "requestsHash", Aliases: []string{"requestsHash", "requestsRoot"}},
	},
}

// WithdrawalFields are the mandatory keys of a withdrawal entry, in encoding order
var WithdrawalFields = []string{"index", "validatorIndex", "address", "amount"}

// ExpectedHashKeys name the document keys carrying the expected block hash, in preference order
var ExpectedHashKeys = []string{"blockHash", "hash"}

// ExpectedRLPKey names the document key carrying the expected block encoding
const ExpectedRLPKey = "rlp"

func rlpHash(v interface{}) common.Hash {
	enc, err := rlp.EncodeToBytes(v)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(enc)
}
