// Package types defines the CKB entity schema: scripts, cells,
// transactions, headers, blocks and the chain-state records returned by
// node queries.
//
// Every entity is an immutable value. Numeric fields are arbitrary-width
// [Uint] values, hashes are fixed-width arrays, and nullable wire fields
// are [Option] values. Each entity implements json.Marshaler and
// json.Unmarshaler against the node's wire format (hex strings for every
// number and byte string, camelCase keys) and a Validate method for the
// structural checks that run after assembly.
package types

import (
	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/hexutil"
)

const (
	// HashLength is the width of every hash on the chain.
	HashLength = 32
	// ProposalShortIDLength is the width of a proposal short id.
	ProposalShortIDLength = 10
)

// Hash is a 32-byte hash (code hash, transaction hash, block hash, ...).
type Hash [HashLength]byte

// ParseHash decodes a 0x-prefixed 32-byte hex string.
func ParseHash(text string) (Hash, error) {
	var h Hash
	b, err := hexutil.DecodeFixed(text, HashLength)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// Hex returns the 0x-prefixed lowercase form.
func (h Hash) Hex() string { return hexutil.EncodeBytes(h[:]) }

func (h Hash) String() string { return h.Hex() }

// IsZero reports whether every byte is zero.
func (h Hash) IsZero() bool { return h == Hash{} }

// ProposalShortID is the truncated transaction hash a block proposes.
type ProposalShortID [ProposalShortIDLength]byte

// ParseProposalShortID decodes a 0x-prefixed 10-byte hex string.
func ParseProposalShortID(text string) (ProposalShortID, error) {
	var id ProposalShortID
	b, err := hexutil.DecodeFixed(text, ProposalShortIDLength)
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// Hex returns the 0x-prefixed lowercase form.
func (id ProposalShortID) Hex() string { return hexutil.EncodeBytes(id[:]) }

func (id ProposalShortID) String() string { return id.Hex() }

// Bytes is an opaque byte string (script args, cell data, witnesses).
type Bytes []byte

// ParseBytes decodes a 0x-prefixed hex byte string.
func ParseBytes(text string) (Bytes, error) {
	b, err := hexutil.DecodeBytes(text)
	if err != nil {
		return nil, err
	}
	return Bytes(b), nil
}

// Hex returns the 0x-prefixed lowercase form.
func (b Bytes) Hex() string { return hexutil.EncodeBytes(b) }

func (b Bytes) String() string { return b.Hex() }

// Entity is implemented by pointers to every schema type.
type Entity interface {
	MarshalJSON() ([]byte, error)
	UnmarshalJSON([]byte) error
	Validate() error
}

// Decode parses one wire object into T and validates it. On failure the
// zero T is returned together with a *ckb.Error.
func Decode[T any, P interface {
	*T
	Entity
}](data []byte) (T, error) {
	var v T
	if err := P(&v).UnmarshalJSON(data); err != nil {
		var zero T
		return zero, err
	}
	if err := P(&v).Validate(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Encode validates v and returns its wire form.
func Encode[T any, P interface {
	*T
	Entity
}](v T) ([]byte, error) {
	if err := P(&v).Validate(); err != nil {
		return nil, err
	}
	return P(&v).MarshalJSON()
}

// invalid is shorthand for a located ValidationError.
func invalid(entity, field, reason string) error {
	return ckb.Validation(entity, field, reason)
}
