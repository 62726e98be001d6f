// Package hexutil converts between the 0x-prefixed hex text used on the
// CKB wire and native integers and byte sequences.
//
// Integers are unsigned and unbounded: block numbers, capacities and
// difficulties are decoded into *big.Int, never a fixed-width type
// that could silently overflow. Byte strings go through go-ethereum's
// hexutil, which already enforces the prefix and even length.
//
// All functions are pure. Failures are *ckb.Error values of kind
// MalformedHex or EmptyField with the offending text attached; the
// schema layer adds the entity and field.
package hexutil

import (
	"errors"
	"fmt"
	"math/big"

	gethhex "github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/blockberries/ckb"
)

const prefix = "0x"

// DecodeUint parses a 0x-prefixed hex numeral. Empty digits ("" or
// "0x") fail with EmptyField. Upper- and lowercase digits, a 0X prefix
// and leading zeros are accepted; signs are not. Such input re-encodes
// in canonical form, so EncodeUint(DecodeUint(s)) == s only for
// canonical s.
func DecodeUint(text string) (*big.Int, error) {
	digits, err := uintDigits(text)
	if err != nil {
		return nil, err
	}
	if digits == "" {
		return nil, ckb.NewError(ckb.KindEmptyField, text, "no hex digits")
	}
	return parseDigits(text, digits)
}

// DecodeUintOrZero is DecodeUint for fields whose schema defines the
// empty value as zero.
func DecodeUintOrZero(text string) (*big.Int, error) {
	if text == "" {
		return new(big.Int), nil
	}
	digits, err := uintDigits(text)
	if err != nil {
		return nil, err
	}
	if digits == "" {
		return new(big.Int), nil
	}
	return parseDigits(text, digits)
}

// DecodeUint64 parses a hex numeral that must fit in 64 bits.
func DecodeUint64(text string) (uint64, error) {
	n, err := DecodeUint(text)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, ckb.NewError(ckb.KindMalformedHex, text, "value exceeds 64 bits")
	}
	return n.Uint64(), nil
}

// EncodeUint returns the canonical form of n: 0x prefix, lowercase
// digits, no leading zeros, "0x0" for zero. n must not be negative.
func EncodeUint(n *big.Int) string {
	if n == nil {
		return "0x0"
	}
	if n.Sign() < 0 {
		panic(fmt.Sprintf("hexutil: EncodeUint of negative value %s", n))
	}
	return gethhex.EncodeBig(n)
}

// EncodeUint64 is EncodeUint for a uint64.
func EncodeUint64(n uint64) string {
	return gethhex.EncodeUint64(n)
}

// DecodeBytes parses a 0x-prefixed, even-length hex byte string. "0x"
// is the empty sequence; "" fails with EmptyField.
func DecodeBytes(text string) ([]byte, error) {
	b, err := gethhex.Decode(text)
	if err != nil {
		if errors.Is(err, gethhex.ErrEmptyString) {
			return nil, ckb.NewError(ckb.KindEmptyField, text, "empty byte string")
		}
		return nil, &ckb.Error{Kind: ckb.KindMalformedHex, Value: text, Err: err}
	}
	return b, nil
}

// EncodeBytes returns the 0x-prefixed lowercase hex form of b.
func EncodeBytes(b []byte) string {
	return gethhex.Encode(b)
}

// DecodeFixed parses a byte string that must be exactly width bytes,
// such as a 32-byte hash. A well-formed string of the wrong width
// fails with ValidationError.
func DecodeFixed(text string, width int) ([]byte, error) {
	b, err := DecodeBytes(text)
	if err != nil {
		return nil, err
	}
	if len(b) != width {
		return nil, ckb.NewError(ckb.KindValidation, text,
			fmt.Sprintf("expected %d bytes, got %d", width, len(b)))
	}
	return b, nil
}

func uintDigits(text string) (string, error) {
	if text == "" {
		return "", ckb.NewError(ckb.KindEmptyField, text, "empty numeral")
	}
	if len(text) < 2 || (text[:2] != prefix && text[:2] != "0X") {
		return "", ckb.NewError(ckb.KindMalformedHex, text, "missing 0x prefix")
	}
	return text[2:], nil
}

func parseDigits(text, digits string) (*big.Int, error) {
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return nil, ckb.NewError(ckb.KindMalformedHex, text,
				fmt.Sprintf("invalid hex digit %q", digits[i]))
		}
	}
	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, ckb.NewError(ckb.KindMalformedHex, text, "not a hex numeral")
	}
	return n, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
