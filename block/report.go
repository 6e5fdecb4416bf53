package block

import (
	"fmt"
	"io"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime/printer"

	"github.com/vulcanize/eth-blockinfo/shared"
)

// ReportOptions selects the optional report sections
type ReportOptions struct {
	// PrintDocument writes the parsed document ahead of the computed values
	PrintDocument bool
	// CIDs adds content identifiers for the header and block encodings
	CIDs bool
}

// Report renders the human readable report of a processed block.
// Hex values are lowercase without a 0x prefix.
func Report(res *Result, opts ReportOptions) ([]string, error) {
	var lines []string
	if opts.PrintDocument {
		lines = append(lines, printer.Sprint(res.Document))
	}
	lines = append(lines, fmt.Sprintf("header rlp = %x", res.HeaderRLP))
	if res.Reconstructable() {
		lines = append(lines, fmt.Sprintf("block rlp = %x", res.BlockRLP))
	}
	lines = append(lines, fmt.Sprintf("block hash = %x", res.Hash.Bytes()))
	if opts.CIDs {
		lines = append(lines, fmt.Sprintf("header cid = %s", shared.Keccak256ToCid(cid.EthBlock, res.Hash.Bytes())))
		if res.Reconstructable() {
			blockCID, err := shared.RawToCid(cid.Raw, res.BlockRLP)
			if err != nil {
				return nil, fmt.Errorf("unable to derive block cid (%v)", err)
			}
			lines = append(lines, fmt.Sprintf("block cid = %s", blockCID))
		}
	}
	for _, c := range res.Checks {
		if c.Outcome == NotApplicable {
			continue
		}
		lines = append(lines, c.String())
	}
	return lines, nil
}

// WriteReport renders the report of a processed block to w, one line per entry.
// The report is fully built before anything is written.
func WriteReport(w io.Writer, res *Result, opts ReportOptions) error {
	lines, err := Report(res, opts)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
