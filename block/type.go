package block

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipld/go-ipld-prime"

	blockinfo_header "github.com/vulcanize/eth-blockinfo/header"
)

// Outcome of comparing a computed value with an expectation carried by the document
type Outcome int

const (
	// NotApplicable means no expectation was supplied or its prerequisites are missing
	NotApplicable Outcome = iota
	Match
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "Match"
	case Mismatch:
		return "Mismatch"
	default:
		return "NotApplicable"
	}
}

// Check names
const (
	HashCheck = "Block hash"
	RLPCheck  = "Block RLP"
)

// VerificationResult is the outcome of one check
type VerificationResult struct {
	Check    string
	Outcome  Outcome
	Expected []byte
	Actual   []byte
}

// String renders the report line of the check, empty when not applicable
func (v VerificationResult) String() string {
	switch v.Outcome {
	case Match:
		return fmt.Sprintf("%s is ok", v.Check)
	case Mismatch:
		return fmt.Sprintf("Fail: %s is different than expected %x / %x", v.Check, v.Actual, v.Expected)
	default:
		return ""
	}
}

// Result is everything computed for one block document
type Result struct {
	Document  ipld.Node
	Header    *blockinfo_header.Header
	HeaderRLP []byte
	Hash      common.Hash
	// Body is nil when the block cannot be reconstructed from the document
	Body     *Body
	BlockRLP []byte
	Checks   []VerificationResult
}

// Reconstructable reports whether the full block encoding is available
func (r *Result) Reconstructable() bool {
	return r.Body != nil
}

// Check returns the result of the named check
func (r *Result) Check(name string) VerificationResult {
	for _, c := range r.Checks {
		if c.Check == name {
			return c
		}
	}
	return VerificationResult{Check: name}
}
