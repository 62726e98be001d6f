package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/blockberries/ckb"
)

// CapacityUnit is a capacity scale, valued in shannons per unit.
type CapacityUnit int64

const (
	// Shannon is the indivisible base unit.
	Shannon CapacityUnit = 1
	// CKByte is the display unit, 10^8 shannons.
	CKByte CapacityUnit = 100000000
)

// ckbyteExp is log10 of the CKByte scale.
const ckbyteExp = 8

func (u CapacityUnit) String() string {
	switch u {
	case Shannon:
		return "shannon"
	case CKByte:
		return "ckbyte"
	default:
		return fmt.Sprintf("CapacityUnit(%d)", int64(u))
	}
}

// Valid reports whether u is Shannon or CKByte.
func (u CapacityUnit) Valid() bool { return u == Shannon || u == CKByte }

// ParseCapacityUnit accepts "shannon" or "ckbyte" ("ckb" for short).
func ParseCapacityUnit(text string) (CapacityUnit, error) {
	switch strings.ToLower(text) {
	case "shannon", "shannons":
		return Shannon, nil
	case "ckbyte", "ckbytes", "ckb":
		return CKByte, nil
	default:
		return 0, ckb.UnknownVariant("CapacityUnit", text)
	}
}

// ToBaseUnits converts v, expressed in unit, to shannons. The
// conversion is exact: a value that would need a fraction of a shannon
// fails with PrecisionLoss and a negative value with ValidationError.
func ToBaseUnits(v decimal.Decimal, unit CapacityUnit) (Uint, error) {
	if err := checkCapacityInput(v, unit); err != nil {
		return Uint{}, err
	}
	shannons := v.Mul(decimal.NewFromInt(int64(unit)))
	if !isIntegral(shannons) {
		return Uint{}, ckb.NewError(ckb.KindPrecisionLoss, v.String(),
			fmt.Sprintf("%s %s is not a whole number of shannons", v, unit))
	}
	return UintFromBig(shannons.BigInt())
}

// ToDisplayUnits converts v, expressed in unit, to CKBytes. The amount
// must be a whole number of shannons in either unit.
func ToDisplayUnits(v decimal.Decimal, unit CapacityUnit) (decimal.Decimal, error) {
	if err := checkCapacityInput(v, unit); err != nil {
		return decimal.Zero, err
	}
	shannons := v.Mul(decimal.NewFromInt(int64(unit)))
	if !isIntegral(shannons) {
		return decimal.Zero, ckb.NewError(ckb.KindPrecisionLoss, v.String(),
			fmt.Sprintf("%s %s is not a whole number of shannons", v, unit))
	}
	return shift(shannons, -ckbyteExp), nil
}

// ParseCapacity parses a decimal amount in unit and returns shannons.
func ParseCapacity(text string, unit CapacityUnit) (Uint, error) {
	v, err := decimal.NewFromString(text)
	if err != nil {
		return Uint{}, &ckb.Error{Kind: ckb.KindSyntax, Entity: "Capacity", Value: text, Err: err}
	}
	return ToBaseUnits(v, unit)
}

// CKBytes returns u, taken as shannons, in CKBytes.
func (u Uint) CKBytes() decimal.Decimal {
	return decimal.NewFromBigInt(u.big(), -ckbyteExp)
}

func checkCapacityInput(v decimal.Decimal, unit CapacityUnit) error {
	if !unit.Valid() {
		return ckb.UnknownVariant("CapacityUnit", unit.String())
	}
	if v.Sign() < 0 {
		return ckb.NewError(ckb.KindValidation, v.String(), "capacity must not be negative")
	}
	return nil
}

func isIntegral(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

// shift multiplies d by 10^n without rounding.
func shift(d decimal.Decimal, n int32) decimal.Decimal {
	return decimal.NewFromBigInt(d.Coefficient(), d.Exponent()+n)
}
