package txhash_test

import (
	"bytes"
	"testing"

	"github.com/blockberries/ckb"
	ckbtest "github.com/blockberries/ckb/testing"
	"github.com/blockberries/ckb/txhash"
	"github.com/blockberries/ckb/types"
)

func sampleTx() types.RawTransaction { return ckbtest.MakeRawTransaction(2) }

func TestHasherCompliance(t *testing.T) {
	ckbtest.RunHasherSuite(t, func() types.TxHasher { return txhash.Hasher{} })
}

func TestImage_Deterministic(t *testing.T) {
	a, err := txhash.Image(sampleTx())
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	b, err := txhash.Image(sampleTx())
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("non-deterministic image")
	}
}

func TestTransactionHash(t *testing.T) {
	var h txhash.Hasher
	base, err := h.TransactionHash(sampleTx())
	if err != nil {
		t.Fatalf("TransactionHash: %v", err)
	}
	if base.IsZero() {
		t.Fatal("zero digest")
	}

	// Witnesses are outside the image.
	tx := sampleTx()
	tx.Witnesses = nil
	if got, _ := h.TransactionHash(tx); got != base {
		t.Fatal("witnesses must not affect the hash")
	}

	// Order of outputs is significant.
	tx = sampleTx()
	tx.Outputs[0], tx.Outputs[1] = tx.Outputs[1], tx.Outputs[0]
	if got, _ := h.TransactionHash(tx); got == base {
		t.Fatal("reordering outputs must change the hash")
	}

	// So is every since.
	tx = sampleTx()
	tx.Inputs[0].Since = types.NewUint(1)
	if got, _ := h.TransactionHash(tx); got == base {
		t.Fatal("changing since must change the hash")
	}
}

func TestTransactionHash_InvalidScript(t *testing.T) {
	tx := sampleTx()
	tx.Outputs[1].Type = types.Some(types.Script{})
	_, err := txhash.Hasher{}.TransactionHash(tx)
	e, ok := ckb.AsError(err)
	if !ok || e.Kind != ckb.KindValidation || e.Field != "outputs[1].type.hashType" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSeal(t *testing.T) {
	tx, err := txhash.Seal(sampleTx())
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	want, _ := txhash.Hasher{}.TransactionHash(sampleTx())
	if tx.Hash() != want {
		t.Fatalf("Seal hash %s, want %s", tx.Hash(), want)
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("sealed transaction should validate: %v", err)
	}
}

func TestSum_Personalized(t *testing.T) {
	if txhash.Sum(nil) == txhash.Sum([]byte{0}) {
		t.Fatal("distinct inputs collided")
	}
}
