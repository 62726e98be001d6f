package types

import (
	"fmt"

	"github.com/blockberries/ckb"
)

// EnumKind names one of the closed string enumerations of the schema.
type EnumKind string

const (
	EnumScriptHashType    EnumKind = "ScriptHashType"
	EnumTransactionStatus EnumKind = "TransactionStatus"
	EnumCellStatus        EnumKind = "CellStatus"
)

// Accepted tags per kind, indexed by variant value. Index 0 is the
// unset variant and is never accepted. Tags match byte-exact: the
// schemas mix casing conventions and each keeps its own.
var enumTags = map[EnumKind][]string{
	EnumScriptHashType:    {"", "Data", "Type"},
	EnumTransactionStatus: {"", "pending", "proposed", "committed"},
	EnumCellStatus:        {"", "live", "unknown"},
}

func parseTag(kind EnumKind, text string) (uint8, error) {
	tags := enumTags[kind]
	for i := 1; i < len(tags); i++ {
		if tags[i] == text {
			return uint8(i), nil
		}
	}
	return 0, ckb.UnknownVariant(string(kind), text)
}

func tagOf(kind EnumKind, v uint8) (string, bool) {
	tags := enumTags[kind]
	if v == 0 || int(v) >= len(tags) {
		return "", false
	}
	return tags[v], true
}

func enumString(kind EnumKind, v uint8) string {
	if tag, ok := tagOf(kind, v); ok {
		return tag
	}
	return fmt.Sprintf("%s(%d)", kind, v)
}

func enumText(kind EnumKind, v uint8) ([]byte, error) {
	tag, ok := tagOf(kind, v)
	if !ok {
		return nil, ckb.NewError(ckb.KindUnknownVariant, enumString(kind, v), "unset or unknown "+string(kind))
	}
	return []byte(tag), nil
}

// ParseEnum parses text as a variant of kind. The returned value is a
// ScriptHashType, TransactionStatus or CellStatus.
func ParseEnum(kind EnumKind, text string) (fmt.Stringer, error) {
	var (
		v   fmt.Stringer
		err error
	)
	switch kind {
	case EnumScriptHashType:
		v, err = ParseScriptHashType(text)
	case EnumTransactionStatus:
		v, err = ParseTransactionStatus(text)
	case EnumCellStatus:
		v, err = ParseCellStatus(text)
	default:
		return nil, ckb.UnknownVariant("EnumKind", string(kind))
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ScriptHashType selects how a script's code hash is matched: against
// the hash of a cell's data or the hash of its type script.
type ScriptHashType uint8

const (
	HashTypeData ScriptHashType = iota + 1
	HashTypeType
)

// ParseScriptHashType accepts exactly "Data" or "Type".
func ParseScriptHashType(text string) (ScriptHashType, error) {
	v, err := parseTag(EnumScriptHashType, text)
	return ScriptHashType(v), err
}

func (t ScriptHashType) String() string { return enumString(EnumScriptHashType, uint8(t)) }

// Valid reports whether t is a recognized variant.
func (t ScriptHashType) Valid() bool {
	_, ok := tagOf(EnumScriptHashType, uint8(t))
	return ok
}

func (t ScriptHashType) MarshalText() ([]byte, error) { return enumText(EnumScriptHashType, uint8(t)) }

// TransactionStatus is a transaction's position in the pool/chain pipeline.
type TransactionStatus uint8

const (
	TxStatusPending TransactionStatus = iota + 1
	TxStatusProposed
	TxStatusCommitted
)

// ParseTransactionStatus accepts exactly "pending", "proposed" or "committed".
func ParseTransactionStatus(text string) (TransactionStatus, error) {
	v, err := parseTag(EnumTransactionStatus, text)
	return TransactionStatus(v), err
}

func (s TransactionStatus) String() string { return enumString(EnumTransactionStatus, uint8(s)) }

// Valid reports whether s is a recognized variant.
func (s TransactionStatus) Valid() bool {
	_, ok := tagOf(EnumTransactionStatus, uint8(s))
	return ok
}

func (s TransactionStatus) MarshalText() ([]byte, error) {
	return enumText(EnumTransactionStatus, uint8(s))
}

// CellStatus is the liveness of a queried cell.
type CellStatus uint8

const (
	CellStatusLive CellStatus = iota + 1
	CellStatusUnknown
)

// ParseCellStatus accepts exactly "live" or "unknown".
func ParseCellStatus(text string) (CellStatus, error) {
	v, err := parseTag(EnumCellStatus, text)
	return CellStatus(v), err
}

func (s CellStatus) String() string { return enumString(EnumCellStatus, uint8(s)) }

// Valid reports whether s is a recognized variant.
func (s CellStatus) Valid() bool {
	_, ok := tagOf(EnumCellStatus, uint8(s))
	return ok
}

func (s CellStatus) MarshalText() ([]byte, error) { return enumText(EnumCellStatus, uint8(s)) }
