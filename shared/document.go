package shared

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagjson"
	"github.com/ipld/go-ipld-prime/node/basicnode"

	blockinfo "github.com/vulcanize/eth-blockinfo"
)

// DecodeDocument reads a JSON block document into an untyped IPLD map node.
// Key order is preserved for printing but carries no meaning.
func DecodeDocument(in io.Reader) (ipld.Node, error) {
	nb := basicnode.Prototype.Any.NewBuilder()
	if err := dagjson.Decode(nb, in); err != nil {
		return nil, fmt.Errorf("unable to decode block document (%v)", err)
	}
	doc := nb.Build()
	if doc.Kind() != ipld.Kind_Map {
		return nil, fmt.Errorf("block document must be a JSON object, got %s", doc.Kind())
	}
	return doc, nil
}

// DecodeDocumentBytes is like DecodeDocument, but reads from a byte slice
func DecodeDocumentBytes(src []byte) (ipld.Node, error) {
	return DecodeDocument(bytes.NewReader(src))
}

// EncodeJSON renders a document node back to JSON
func EncodeJSON(n ipld.Node) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := dagjson.Encode(n, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LookupString returns the string under key, reporting whether the key is present.
// A present key holding anything other than a string is a type error.
func LookupString(doc ipld.Node, key string) (string, bool, error) {
	n, err := doc.LookupByString(key)
	if err != nil || n == nil || n.IsNull() || n.IsAbsent() {
		return "", false, nil
	}
	if n.Kind() != ipld.Kind_String {
		return "", true, &blockinfo.TypeError{Field: key, Reason: "expected a string, got " + n.Kind().String()}
	}
	s, err := n.AsString()
	return s, true, err
}

// Has reports whether key is present with a non-null value
func Has(doc ipld.Node, key string) bool {
	n, err := doc.LookupByString(key)
	return err == nil && n != nil && !n.IsNull() && !n.IsAbsent()
}
