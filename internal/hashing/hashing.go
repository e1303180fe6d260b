// Package hashing provides the content digest used as the structural identity
// of graph nodes.
//
// A digest is folded from an operation id, the node's dimensions and the
// digests of its inputs, in input order. Two nodes with equal digests are
// treated as the same node. The digest is 256 bits wide, so an accidental
// collision between distinct node definitions is not a practical concern;
// the graph still checks the cheap structural fields on every match.
package hashing

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Size is the digest length in bytes.
const Size = blake2b.Size256

// Value is a fixed-size content digest.
type Value [Size]byte

// IsZero reports whether v is the zero digest, which no Hasher produces.
func (v Value) IsZero() bool {
	return v == Value{}
}

// String returns the full hex encoding of the digest.
func (v Value) String() string {
	return hex.EncodeToString(v[:])
}

// Short returns the first 6 bytes of the digest as hex, for logs.
func (v Value) Short() string {
	return hex.EncodeToString(v[:6])
}

// Hasher folds fields into a digest. Fixed-width fields are written big
// endian; variable-width fields are length-prefixed so that adjacent fields
// can never be confused.
type Hasher struct {
	h   hash.Hash
	buf [8]byte
}

// New returns an empty Hasher.
func New() *Hasher {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only reachable with an oversized key.
		panic(err)
	}
	return &Hasher{h: h}
}

// Uint16 folds a 16-bit field.
func (h *Hasher) Uint16(v uint16) *Hasher {
	binary.BigEndian.PutUint16(h.buf[:2], v)
	h.h.Write(h.buf[:2])
	return h
}

// Uint32 folds a 32-bit field.
func (h *Hasher) Uint32(v uint32) *Hasher {
	binary.BigEndian.PutUint32(h.buf[:4], v)
	h.h.Write(h.buf[:4])
	return h
}

// Bytes folds a length-prefixed byte field.
func (h *Hasher) Bytes(b []byte) *Hasher {
	binary.BigEndian.PutUint64(h.buf[:], uint64(len(b)))
	h.h.Write(h.buf[:])
	h.h.Write(b)
	return h
}

// String folds a length-prefixed string field.
func (h *Hasher) String(s string) *Hasher {
	return h.Bytes([]byte(s))
}

// Digest folds another digest, as used for node inputs.
func (h *Hasher) Digest(v Value) *Hasher {
	h.h.Write(v[:])
	return h
}

// Sum returns the folded digest. The Hasher remains usable.
func (h *Hasher) Sum() Value {
	var v Value
	copy(v[:], h.h.Sum(nil))
	return v
}
