package types_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/types"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		value string
		unit  types.CapacityUnit
		want  string
		kind  ckb.Kind
	}{
		{"5", types.CKByte, "500000000", 0},
		{"61", types.CKByte, "6100000000", 0},
		{"0.00000001", types.CKByte, "1", 0},
		{"123.45678901", types.CKByte, "12345678901", 0},
		{"500000000", types.Shannon, "500000000", 0},
		{"0", types.CKByte, "0", 0},
		{"0.000000001", types.CKByte, "", ckb.KindPrecisionLoss},
		{"1.5", types.Shannon, "", ckb.KindPrecisionLoss},
		{"-1", types.CKByte, "", ckb.KindValidation},
	}
	for _, tt := range tests {
		got, err := types.ToBaseUnits(decimal.RequireFromString(tt.value), tt.unit)
		if tt.kind != 0 {
			if !ckb.IsKind(err, tt.kind) {
				t.Fatalf("%s %s: expected %s, got %v", tt.value, tt.unit, tt.kind, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s %s: %v", tt.value, tt.unit, err)
		}
		if got.String() != tt.want {
			t.Fatalf("%s %s: got %s, want %s", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestToDisplayUnits(t *testing.T) {
	got, err := types.ToDisplayUnits(decimal.NewFromInt(500000000), types.Shannon)
	if err != nil {
		t.Fatalf("ToDisplayUnits: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("got %s, want 5", got)
	}

	got, err = types.ToDisplayUnits(decimal.RequireFromString("1.5"), types.CKByte)
	if err != nil || !got.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("CKByte input should pass through, got %s, %v", got, err)
	}

	if _, err := types.ToDisplayUnits(decimal.RequireFromString("0.5"), types.Shannon); !ckb.IsKind(err, ckb.KindPrecisionLoss) {
		t.Fatalf("expected PrecisionLoss, got %v", err)
	}
	if _, err := types.ToDisplayUnits(decimal.RequireFromString("0.000000001"), types.CKByte); !ckb.IsKind(err, ckb.KindPrecisionLoss) {
		t.Fatalf("expected PrecisionLoss below one shannon, got %v", err)
	}
	if got, err := types.ToDisplayUnits(decimal.RequireFromString("0.00000001"), types.CKByte); err != nil || !got.Equal(decimal.RequireFromString("0.00000001")) {
		t.Fatalf("one shannon in CKBytes should pass, got %s, %v", got, err)
	}
	if _, err := types.ToDisplayUnits(decimal.NewFromInt(1), types.CapacityUnit(10)); !ckb.IsKind(err, ckb.KindUnknownVariant) {
		t.Fatalf("expected UnknownVariant for unit, got %v", err)
	}
}

func TestCapacity_Exactness(t *testing.T) {
	for _, shannons := range []int64{0, 100000000, 6100000000, 123456700000000, 9223372036800000000} {
		x := decimal.NewFromInt(shannons)
		display, err := types.ToDisplayUnits(x, types.Shannon)
		if err != nil {
			t.Fatalf("%d: %v", shannons, err)
		}
		back, err := types.ToBaseUnits(display, types.CKByte)
		if err != nil {
			t.Fatalf("%d: %v", shannons, err)
		}
		if back.String() != x.String() {
			t.Fatalf("%d: round-trip gave %s", shannons, back)
		}
	}
}

func TestParseCapacity(t *testing.T) {
	got, err := types.ParseCapacity("61", types.CKByte)
	if err != nil || !got.Equal(types.NewUint(6100000000)) {
		t.Fatalf("got %s, %v", got, err)
	}
	if _, err := types.ParseCapacity("sixty", types.CKByte); !ckb.IsKind(err, ckb.KindSyntax) {
		t.Fatalf("expected Syntax, got %v", err)
	}
	if !types.NewUint(150000000).CKBytes().Equal(decimal.RequireFromString("1.5")) {
		t.Fatal("CKBytes of 1.5e8 shannons should be 1.5")
	}
}

func TestParseCapacityUnit(t *testing.T) {
	for text, want := range map[string]types.CapacityUnit{
		"shannon": types.Shannon,
		"ckbyte":  types.CKByte,
		"CKB":     types.CKByte,
	} {
		got, err := types.ParseCapacityUnit(text)
		if err != nil || got != want {
			t.Fatalf("%q: got %s, %v", text, got, err)
		}
	}
	if _, err := types.ParseCapacityUnit("byte"); !ckb.IsKind(err, ckb.KindUnknownVariant) {
		t.Fatalf("expected UnknownVariant, got %v", err)
	}
}
