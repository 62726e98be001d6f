package ckbtest

import (
	"reflect"
	"sync"
	"testing"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/types"
)

// RunCodecSuite checks the codec laws of entity T against wire, which
// must be a canonical, valid encoding of T.
func RunCodecSuite[T any, P Entity[T]](t *testing.T, wire string) {
	t.Helper()

	t.Run("reencode_is_identical", func(t *testing.T) {
		Reencode[T, P](t, wire)
	})

	t.Run("decode_encode_decode", func(t *testing.T) {
		first := MustDecode[T, P](t, wire)
		second := MustDecode[T, P](t, MustEncode[T, P](t, first))
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("value changed across re-encoding:\n%+v\n%+v", first, second)
		}
	})

	t.Run("validate_idempotent", func(t *testing.T) {
		v := MustDecode[T, P](t, wire)
		before := MustEncode[T, P](t, v)
		for i := 0; i < 2; i++ {
			if err := P(&v).Validate(); err != nil {
				t.Fatalf("Validate #%d: %v", i+1, err)
			}
		}
		if after := MustEncode[T, P](t, v); after != before {
			t.Fatal("Validate modified the value")
		}
	})

	t.Run("null_is_missing", func(t *testing.T) {
		MustFail[T, P](t, "null", ckb.KindMissingField)
	})

	t.Run("garbage_is_syntax", func(t *testing.T) {
		MustFail[T, P](t, "{", ckb.KindSyntax)
	})

	t.Run("failed_decode_yields_zero", func(t *testing.T) {
		v, err := types.Decode[T, P]([]byte("{"))
		if err == nil {
			t.Fatal("expected error")
		}
		var zero T
		if !reflect.DeepEqual(v, zero) {
			t.Fatalf("expected zero value, got %+v", v)
		}
	})

	t.Run("concurrent_decode", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := types.Decode[T, P]([]byte(wire)); err != nil {
					t.Errorf("concurrent Decode: %v", err)
				}
			}()
		}
		wg.Wait()
	})
}

// RunHasherSuite checks that a TxHasher is a function of the
// transaction body. The factory should return a fresh hasher.
func RunHasherSuite(t *testing.T, factory func() types.TxHasher) {
	t.Helper()

	hash := func(t *testing.T, h types.TxHasher, tx types.RawTransaction) types.Hash {
		t.Helper()
		sum, err := h.TransactionHash(tx)
		if err != nil {
			t.Fatalf("TransactionHash: %v", err)
		}
		return sum
	}

	t.Run("deterministic_across_instances", func(t *testing.T) {
		tx := MakeRawTransaction(2)
		if a, b := hash(t, factory(), tx), hash(t, factory(), tx); a != b {
			t.Fatalf("non-deterministic: %s != %s", a, b)
		}
	})

	t.Run("nonzero", func(t *testing.T) {
		if hash(t, factory(), MakeRawTransaction(1)).IsZero() {
			t.Fatal("hash should not be zero")
		}
	})

	t.Run("body_sensitive", func(t *testing.T) {
		h := factory()
		a := hash(t, h, MakeRawTransaction(1))
		b := hash(t, h, MakeRawTransaction(2))
		if a == b {
			t.Fatal("different bodies share a hash")
		}
	})

	t.Run("output_order_sensitive", func(t *testing.T) {
		h := factory()
		tx := MakeRawTransaction(2)
		a := hash(t, h, tx)
		tx.Outputs[0], tx.Outputs[1] = tx.Outputs[1], tx.Outputs[0]
		if b := hash(t, h, tx); a == b {
			t.Fatal("swapping outputs kept the hash")
		}
	})

	t.Run("seals_valid_transaction", func(t *testing.T) {
		raw := MakeRawTransaction(1)
		tx, err := types.NewTransaction(raw, factory())
		if err != nil {
			t.Fatalf("NewTransaction: %v", err)
		}
		if err := tx.Validate(); err != nil {
			t.Fatalf("sealed transaction is invalid: %v", err)
		}
		if tx.Hash() != hash(t, factory(), raw) {
			t.Fatal("sealed hash differs from TransactionHash")
		}
	})

	t.Run("concurrent_hashing", func(t *testing.T) {
		h := factory()
		tx := MakeRawTransaction(3)
		want := hash(t, h, tx)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := h.TransactionHash(tx)
				if err != nil || got != want {
					t.Errorf("concurrent hash: %s, %v", got, err)
				}
			}()
		}
		wg.Wait()
	})
}
