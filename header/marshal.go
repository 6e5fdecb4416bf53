package blockinfo_header

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"

	blockinfo "github.com/vulcanize/eth-blockinfo"
	"github.com/vulcanize/eth-blockinfo/shared"
	blockinfo_txtrie "github.com/vulcanize/eth-blockinfo/tx_trie"
	blockinfo_withdrawaltrie "github.com/vulcanize/eth-blockinfo/withdrawal_trie"
)

// Field is one resolved and normalized header entry
type Field struct {
	Resolved
	Value []byte
}

// IsLiteralList reports whether the value was derived from a literal list in the document
func (f Field) IsLiteralList() bool {
	return f.Node != nil && f.Node.Kind() == ipld.Kind_List
}

// Header is the canonical, protocol-ordered header of a block document
type Header struct {
	Fields []Field
}

// List returns the HeaderList, the ordered byte strings that are RLP encoded
func (h *Header) List() [][]byte {
	list := make([][]byte, len(h.Fields))
	for i, f := range h.Fields {
		list[i] = f.Value
	}
	return list
}

// Get returns the field with the given canonical name, if it is part of the header
func (h *Header) Get(name string) (Field, bool) {
	for _, f := range h.Fields {
		if f.Field.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RLP returns the RLP encoding of the HeaderList
func (h *Header) RLP() ([]byte, error) {
	return rlp.EncodeToBytes(h.List())
}

// Hash returns the keccak256 of the header RLP, the block hash
func (h *Header) Hash() (common.Hash, error) {
	enc, err := h.RLP()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(enc), nil
}

// Encode provides a codec encode interface from block documents to header RLP.
// This function is registered via the go-ipld-prime multicodec registry for
// code 0x90 by the plugin package.
func Encode(node ipld.Node, w io.Writer) error {
	// 1KiB can be allocated on the stack, and covers most small nodes
	// without having to grow the buffer and cause allocations.
	enc := make([]byte, 0, 1024)

	enc, err := AppendEncode(enc, node)
	if err != nil {
		return err
	}
	_, err = w.Write(enc)
	return err
}

// AppendEncode is like Encode, but it uses a destination buffer directly.
// This means less copying of bytes, and if the destination has enough capacity,
// fewer allocations.
func AppendEncode(enc []byte, inNode ipld.Node) ([]byte, error) {
	header, err := EncodeHeader(inNode)
	if err != nil {
		return enc, err
	}
	wbs := shared.NewWriteableByteSlice(&enc)
	if err := rlp.Encode(wbs, header.List()); err != nil {
		return enc, fmt.Errorf("invalid header form (unable to RLP encode header: %v)", err)
	}
	return enc, nil
}

// EncodeHeader resolves and normalizes every header field of a block document
func EncodeHeader(doc ipld.Node) (*Header, error) {
	if doc.Kind() != ipld.Kind_Map {
		return nil, &blockinfo.TypeError{Field: "header", Reason: "expected an object, got " + doc.Kind().String()}
	}
	resolved, err := Resolve(doc, blockinfo.HeaderSchema)
	if err != nil {
		return nil, err
	}
	header := &Header{Fields: make([]Field, 0, len(resolved))}
	for _, r := range resolved {
		v, err := packField(r)
		if err != nil {
			return nil, fmt.Errorf("invalid header field %s (%w)", r.Field.Name, err)
		}
		header.Fields = append(header.Fields, Field{Resolved: r, Value: v})
	}
	return header, nil
}

// Hash resolves the header of a block document and returns its hash
func Hash(doc ipld.Node) (common.Hash, error) {
	header, err := EncodeHeader(doc)
	if err != nil {
		return common.Hash{}, err
	}
	return header.Hash()
}

func packField(r Resolved) ([]byte, error) {
	if r.Defaulted() {
		return common.CopyBytes(r.Field.Default), nil
	}
	if r.Node.Kind() == ipld.Kind_List {
		switch r.Field.Rule {
		case blockinfo.TransactionRoot:
			root, err := blockinfo_txtrie.RootHash(r.Alias, r.Node)
			return root.Bytes(), err
		case blockinfo.WithdrawalRoot:
			root, err := blockinfo_withdrawaltrie.RootHash(r.Alias, r.Node)
			return root.Bytes(), err
		case blockinfo.OmmersHash:
			root, err := OmmersHash(r.Alias, r.Node)
			return root.Bytes(), err
		}
	}
	return shared.Normalize(r.Alias, r.Field.Rule, r.Node)
}
