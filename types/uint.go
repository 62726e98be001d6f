package types

import (
	"math/big"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/hexutil"
)

// Uint is an immutable unsigned integer of arbitrary width. The zero
// Uint is 0. The wrapped big.Int is never exposed or mutated, so Uint
// values may be copied and shared freely.
type Uint struct {
	n *big.Int
}

var bigZero = new(big.Int)

// NewUint returns v as a Uint.
func NewUint(v uint64) Uint {
	return Uint{n: new(big.Int).SetUint64(v)}
}

// UintFromBig copies b into a Uint. Negative values fail with
// ValidationError.
func UintFromBig(b *big.Int) (Uint, error) {
	if b == nil {
		return Uint{}, nil
	}
	if b.Sign() < 0 {
		return Uint{}, ckb.NewError(ckb.KindValidation, b.String(), "negative value")
	}
	return Uint{n: new(big.Int).Set(b)}, nil
}

// ParseUint decodes a 0x-prefixed hex numeral.
func ParseUint(text string) (Uint, error) {
	n, err := hexutil.DecodeUint(text)
	if err != nil {
		return Uint{}, err
	}
	return Uint{n: n}, nil
}

// MustParseUint is ParseUint for constants; it panics on error.
func MustParseUint(text string) Uint {
	u, err := ParseUint(text)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Uint) big() *big.Int {
	if u.n == nil {
		return bigZero
	}
	return u.n
}

// Big returns a copy of the value.
func (u Uint) Big() *big.Int { return new(big.Int).Set(u.big()) }

// Uint64 returns the value and whether it fits in 64 bits.
func (u Uint) Uint64() (uint64, bool) {
	b := u.big()
	if !b.IsUint64() {
		return 0, false
	}
	return b.Uint64(), true
}

// Sign returns 0 for zero and 1 otherwise; a Uint is never negative.
func (u Uint) Sign() int { return u.big().Sign() }

// IsZero reports whether u is 0.
func (u Uint) IsZero() bool { return u.Sign() == 0 }

// Cmp compares u and v and returns -1, 0 or +1.
func (u Uint) Cmp(v Uint) int { return u.big().Cmp(v.big()) }

// Equal reports whether u and v hold the same value.
func (u Uint) Equal(v Uint) bool { return u.Cmp(v) == 0 }

// Add returns u+v.
func (u Uint) Add(v Uint) Uint {
	return Uint{n: new(big.Int).Add(u.big(), v.big())}
}

// Bytes returns the minimal big-endian encoding (empty for zero).
func (u Uint) Bytes() []byte { return u.big().Bytes() }

// Hex returns the canonical wire form.
func (u Uint) Hex() string { return hexutil.EncodeUint(u.big()) }

// String returns the decimal form.
func (u Uint) String() string { return u.big().String() }

// MarshalText implements encoding.TextMarshaler using the wire form.
func (u Uint) MarshalText() ([]byte, error) { return []byte(u.Hex()), nil }
