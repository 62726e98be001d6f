package hexutil_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/hexutil"
)

func TestDecodeUint(t *testing.T) {
	huge, _ := new(big.Int).SetString("1"+string(bytes.Repeat([]byte("0"), 40)), 16)

	tests := []struct {
		name string
		in   string
		want *big.Int
		kind ckb.Kind
	}{
		{"zero", "0x0", big.NewInt(0), 0},
		{"capacity", "0x1dcd6500", big.NewInt(500000000), 0},
		{"uppercase", "0x1DCD6500", big.NewInt(500000000), 0},
		{"upper_prefix", "0X10", big.NewInt(16), 0},
		{"leading_zeros", "0x000a", big.NewInt(10), 0},
		{"beyond_64_bits", "0x1" + string(bytes.Repeat([]byte("0"), 40)), huge, 0},
		{"empty", "", nil, ckb.KindEmptyField},
		{"prefix_only", "0x", nil, ckb.KindEmptyField},
		{"no_prefix", "1dcd6500", nil, ckb.KindMalformedHex},
		{"bad_digit", "0x1g", nil, ckb.KindMalformedHex},
		{"signed", "0x-1", nil, ckb.KindMalformedHex},
		{"plus", "0x+1", nil, ckb.KindMalformedHex},
		{"underscore", "0x1_0", nil, ckb.KindMalformedHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hexutil.DecodeUint(tt.in)
			if tt.kind != 0 {
				if !ckb.IsKind(err, tt.kind) {
					t.Fatalf("expected %s, got %v", tt.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Cmp(tt.want) != 0 {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeUint_Canonicalises(t *testing.T) {
	for _, in := range []string{"0x001DCD6500", "0X1dcd6500", "0x1DcD6500"} {
		n, err := hexutil.DecodeUint(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got := hexutil.EncodeUint(n); got != "0x1dcd6500" {
			t.Fatalf("%q re-encoded as %q, want the canonical 0x1dcd6500", in, got)
		}
	}
}

func TestDecodeUintOrZero(t *testing.T) {
	for _, in := range []string{"", "0x", "0x0"} {
		n, err := hexutil.DecodeUintOrZero(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if n.Sign() != 0 {
			t.Fatalf("%q: expected zero, got %s", in, n)
		}
	}
	if _, err := hexutil.DecodeUintOrZero("0xq"); !ckb.IsKind(err, ckb.KindMalformedHex) {
		t.Fatalf("expected MalformedHex, got %v", err)
	}
}

func TestDecodeUint64(t *testing.T) {
	n, err := hexutil.DecodeUint64("0xffffffffffffffff")
	if err != nil || n != ^uint64(0) {
		t.Fatalf("got %d, %v", n, err)
	}
	if _, err := hexutil.DecodeUint64("0x10000000000000000"); !ckb.IsKind(err, ckb.KindMalformedHex) {
		t.Fatalf("expected overflow to fail with MalformedHex, got %v", err)
	}
}

func TestEncodeUint(t *testing.T) {
	tests := []struct {
		in   *big.Int
		want string
	}{
		{nil, "0x0"},
		{big.NewInt(0), "0x0"},
		{big.NewInt(10), "0xa"},
		{big.NewInt(500000000), "0x1dcd6500"},
	}
	for _, tt := range tests {
		if got := hexutil.EncodeUint(tt.in); got != tt.want {
			t.Errorf("EncodeUint(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := hexutil.EncodeUint64(255); got != "0xff" {
		t.Errorf("EncodeUint64(255) = %q", got)
	}
}

func TestUintRoundTrip(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(0xff),
		new(big.Int).SetUint64(^uint64(0)),
		new(big.Int).Lsh(big.NewInt(1), 255),
		new(big.Int).Lsh(big.NewInt(3), 1000),
	}
	for _, n := range values {
		got, err := hexutil.DecodeUint(hexutil.EncodeUint(n))
		if err != nil {
			t.Fatalf("%s: %v", n, err)
		}
		if got.Cmp(n) != 0 {
			t.Fatalf("round-trip changed %s to %s", n, got)
		}
	}
}

func TestDecodeBytes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
		kind ckb.Kind
	}{
		{"empty_sequence", "0x", []byte{}, 0},
		{"two_bytes", "0xdead", []byte{0xde, 0xad}, 0},
		{"uppercase", "0xDEAD", []byte{0xde, 0xad}, 0},
		{"empty_text", "", nil, ckb.KindEmptyField},
		{"odd_length", "0xabc", nil, ckb.KindMalformedHex},
		{"bad_digit", "0xzz", nil, ckb.KindMalformedHex},
		{"no_prefix", "dead", nil, ckb.KindMalformedHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hexutil.DecodeBytes(tt.in)
			if tt.kind != 0 {
				if !ckb.IsKind(err, tt.kind) {
					t.Fatalf("expected %s, got %v", tt.kind, err)
				}
				e, _ := ckb.AsError(err)
				if e.Value != tt.in {
					t.Fatalf("error should carry the offending text, got %q", e.Value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got %x, want %x", got, tt.want)
			}
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	samples := [][]byte{
		{},
		{0x00},
		{0xAB, 0xCD, 0xEF},
		bytes.Repeat([]byte{0x5a}, 64),
	}
	for _, b := range samples {
		text := hexutil.EncodeBytes(b)
		if text != string(bytes.ToLower([]byte(text))) {
			t.Fatalf("EncodeBytes must be lowercase, got %q", text)
		}
		got, err := hexutil.DecodeBytes(text)
		if err != nil {
			t.Fatalf("%x: %v", b, err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("round-trip changed %x to %x", b, got)
		}
	}
}

func TestDecodeFixed(t *testing.T) {
	hash := "0x" + string(bytes.Repeat([]byte("00"), 32))
	b, err := hexutil.DecodeFixed(hash, 32)
	if err != nil || len(b) != 32 {
		t.Fatalf("got %d bytes, %v", len(b), err)
	}
	if _, err := hexutil.DecodeFixed("0x00", 32); !ckb.IsKind(err, ckb.KindValidation) {
		t.Fatalf("expected ValidationError for short hash, got %v", err)
	}
	if _, err := hexutil.DecodeFixed("0x0", 32); !ckb.IsKind(err, ckb.KindMalformedHex) {
		t.Fatalf("expected MalformedHex for odd hash, got %v", err)
	}
}
