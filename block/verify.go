package block

import (
	"bytes"
	"strings"

	"github.com/ipld/go-ipld-prime"
	log "github.com/sirupsen/logrus"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	"github.com/vulcanize/eth-blockinfo/shared"
)

// Verify compares the computed hash and block encoding with the expectations the document carries.
// The hash check is always present in the output, the RLP check only applies when the
// document carries an expected encoding and the block could be reconstructed.
func Verify(doc ipld.Node, res *Result) ([]VerificationResult, error) {
	hashCheck, err := verifyHash(doc, res)
	if err != nil {
		return nil, err
	}
	rlpCheck, err := verifyRLP(doc, res)
	if err != nil {
		return nil, err
	}
	return []VerificationResult{hashCheck, rlpCheck}, nil
}

// ExpectedHash returns the block hash the document claims, if any
func ExpectedHash(doc ipld.Node) ([]byte, bool, error) {
	for _, key := range blockinfo.ExpectedHashKeys {
		s, ok, err := shared.LookupString(doc, key)
		if err != nil {
			return nil, true, err
		}
		if !ok {
			continue
		}
		b, err := shared.HexToBytes(key, s)
		if err != nil {
			return nil, true, err
		}
		return b, true, nil
	}
	return nil, false, nil
}

// ExpectedRLP returns the block encoding the document claims, if any; the 0x prefix is optional
func ExpectedRLP(doc ipld.Node) ([]byte, bool, error) {
	s, ok, err := shared.LookupString(doc, blockinfo.ExpectedRLPKey)
	if err != nil || !ok {
		return nil, ok, err
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	b, err := shared.HexToBytes(blockinfo.ExpectedRLPKey, s)
	if err != nil {
		return nil, true, err
	}
	return b, true, nil
}

func verifyHash(doc ipld.Node, res *Result) (VerificationResult, error) {
	check := VerificationResult{Check: HashCheck, Actual: res.Hash.Bytes()}
	expected, ok, err := ExpectedHash(doc)
	if err != nil || !ok {
		return check, err
	}
	check.Expected = expected
	check.Outcome = compare(expected, check.Actual)
	log.WithField("outcome", check.Outcome).Debug("verified block hash")
	return check, nil
}

func verifyRLP(doc ipld.Node, res *Result) (VerificationResult, error) {
	check := VerificationResult{Check: RLPCheck, Actual: res.BlockRLP}
	expected, ok, err := ExpectedRLP(doc)
	if err != nil || !ok {
		return check, err
	}
	check.Expected = expected
	if !res.Reconstructable() {
		log.Debug("block encoding expected but the block is not reconstructable")
		return check, nil
	}
	check.Outcome = compare(expected, check.Actual)
	log.WithField("outcome", check.Outcome).Debug("verified block encoding")
	return check, nil
}

func compare(expected, actual []byte) Outcome {
	if bytes.Equal(expected, actual) {
		return Match
	}
	return Mismatch
}
