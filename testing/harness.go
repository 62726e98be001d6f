package ckbtest

import (
	"testing"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/types"
)

// Entity is the constraint satisfied by pointers to schema types.
type Entity[T any] interface {
	*T
	types.Entity
}

// MustDecode decodes wire as T and fails the test on error.
func MustDecode[T any, P Entity[T]](t testing.TB, wire string) T {
	t.Helper()
	v, err := types.Decode[T, P]([]byte(wire))
	if err != nil {
		t.Fatalf("Decode %T: %v", v, err)
	}
	return v
}

// MustEncode encodes v and fails the test on error.
func MustEncode[T any, P Entity[T]](t testing.TB, v T) string {
	t.Helper()
	out, err := types.Encode[T, P](v)
	if err != nil {
		t.Fatalf("Encode %T: %v", v, err)
	}
	return string(out)
}

// Reencode decodes wire, encodes the result and checks the output is
// byte-identical to the input.
func Reencode[T any, P Entity[T]](t testing.TB, wire string) T {
	t.Helper()
	v := MustDecode[T, P](t, wire)
	if out := MustEncode[T, P](t, v); out != wire {
		t.Fatalf("re-encoding differs:\n got: %s\nwant: %s", out, wire)
	}
	return v
}

// MustFail decodes wire as T, expecting an error of the given kind.
// It returns the error for further checks on its location.
func MustFail[T any, P Entity[T]](t testing.TB, wire string, kind ckb.Kind) *ckb.Error {
	t.Helper()
	_, err := types.Decode[T, P]([]byte(wire))
	if err == nil {
		t.Fatalf("expected %s, decode succeeded", kind)
	}
	e, ok := ckb.AsError(err)
	if !ok {
		t.Fatalf("expected *ckb.Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected %s, got %v", kind, err)
	}
	return e
}

// MustFailAt is MustFail that also checks the error location.
func MustFailAt[T any, P Entity[T]](t testing.TB, wire string, kind ckb.Kind, entity, field string) {
	t.Helper()
	e := MustFail[T, P](t, wire, kind)
	if e.Entity != entity || e.Field != field {
		t.Fatalf("expected error at %s.%s, got %s.%s (%v)", entity, field, e.Entity, e.Field, e)
	}
}
