package shared

import (
	"encoding/hex"
	"strings"

	"github.com/ipld/go-ipld-prime"

	blockinfo "github.com/vulcanize/eth-blockinfo"
)

// HexToBytes parses a 0x-prefixed hex string, left padding odd-length input with a zero nibble
func HexToBytes(field, s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") {
		return nil, &blockinfo.TypeError{Field: field, Reason: "value is not 0x-prefixed hex"}
	}
	s = s[2:]
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &blockinfo.TypeError{Field: field, Reason: err.Error()}
	}
	return b, nil
}

// CollapseZero maps the single byte 0x00 to the empty byte string,
// the canonical RLP form of a zero big-endian integer
func CollapseZero(b []byte) []byte {
	if len(b) == 1 && b[0] == 0 {
		return []byte{}
	}
	return b
}

// NormalizeScalar converts a Plain field value into its RLP byte string
func NormalizeScalar(field string, n ipld.Node) ([]byte, error) {
	s, err := asString(field, n)
	if err != nil {
		return nil, err
	}
	b, err := HexToBytes(field, s)
	if err != nil {
		return nil, err
	}
	return CollapseZero(b), nil
}

// NormalizeRaw converts a RawBytes field value into its RLP byte string, keeping a literal zero byte
func NormalizeRaw(field string, n ipld.Node) ([]byte, error) {
	s, err := asString(field, n)
	if err != nil {
		return nil, err
	}
	return HexToBytes(field, s)
}

// Normalize applies the byte string rules; root rules only reach here with a claimed digest
func Normalize(field string, rule blockinfo.Rule, n ipld.Node) ([]byte, error) {
	if rule == blockinfo.RawBytes {
		return NormalizeRaw(field, n)
	}
	return NormalizeScalar(field, n)
}

func asString(field string, n ipld.Node) (string, error) {
	if n.Kind() != ipld.Kind_String {
		return "", &blockinfo.TypeError{Field: field, Reason: "expected a hex string, got " + n.Kind().String()}
	}
	return n.AsString()
}
