package types

import (
	"fmt"

	"github.com/blockberries/ckb"
)

// SinceMetric selects what a since value's magnitude counts.
type SinceMetric uint8

const (
	SinceBlockNumber SinceMetric = 0
	SinceEpoch       SinceMetric = 1
	SinceTimestamp   SinceMetric = 2
)

func (m SinceMetric) String() string {
	switch m {
	case SinceBlockNumber:
		return "block_number"
	case SinceEpoch:
		return "epoch"
	case SinceTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("SinceMetric(%d)", uint8(m))
	}
}

// Since layout (64 bits):
//
//	bit 63      relative flag
//	bits 61-62  metric: 00 block number, 01 epoch, 10 timestamp, 11 invalid
//	bits 56-60  reserved, must be zero
//	bits 0-55   value
const (
	sinceRelativeFlag = uint64(1) << 63
	sinceMetricShift  = 61
	sinceMetricBits   = uint64(0x3)
	sinceReservedMask = uint64(0x1f) << 56
	// SinceValueMask covers the magnitude bits.
	SinceValueMask = uint64(1)<<56 - 1
)

// Since is the decoded form of a CellInput's since field. The zero
// Since (absolute, block number 0) places no restriction on the input.
type Since struct {
	Relative bool
	Metric   SinceMetric
	// Value is a block number, an epoch number with fraction, or a
	// timestamp in seconds. For absolute timestamps it is compared to
	// the median time of the previous 37 blocks.
	Value uint64
}

// DecodeSince unpacks raw: the relative flag first, then the metric,
// then the magnitude. Values wider than 64 bits, metric 11 and
// non-zero reserved bits fail with InvalidSince.
func DecodeSince(raw Uint) (Since, error) {
	v, ok := raw.Uint64()
	if !ok {
		return Since{}, ckb.NewError(ckb.KindInvalidSince, raw.Hex(), "wider than 64 bits")
	}
	return DecodeSinceUint64(v)
}

// DecodeSinceUint64 is DecodeSince for a native value.
func DecodeSinceUint64(v uint64) (Since, error) {
	s := Since{Relative: v&sinceRelativeFlag != 0}
	metric := SinceMetric((v >> sinceMetricShift) & sinceMetricBits)
	switch metric {
	case SinceBlockNumber, SinceEpoch, SinceTimestamp:
		s.Metric = metric
	default:
		return Since{}, ckb.NewError(ckb.KindInvalidSince, NewUint(v).Hex(), "unrecognized metric flag")
	}
	if v&sinceReservedMask != 0 {
		return Since{}, ckb.NewError(ckb.KindInvalidSince, NewUint(v).Hex(), "reserved bits set")
	}
	s.Value = v & SinceValueMask
	return s, nil
}

// EncodeSince packs a since triple. It is the exact inverse of
// DecodeSince.
func EncodeSince(relative bool, metric SinceMetric, value uint64) (Uint, error) {
	v, err := Since{Relative: relative, Metric: metric, Value: value}.Uint64()
	if err != nil {
		return Uint{}, err
	}
	return NewUint(v), nil
}

// Encode is EncodeSince for s.
func (s Since) Encode() (Uint, error) {
	return EncodeSince(s.Relative, s.Metric, s.Value)
}

// Uint64 packs s into its native 64-bit form.
func (s Since) Uint64() (uint64, error) {
	switch s.Metric {
	case SinceBlockNumber, SinceEpoch, SinceTimestamp:
	default:
		return 0, ckb.NewError(ckb.KindInvalidSince, s.Metric.String(), "unrecognized metric")
	}
	if s.Value > SinceValueMask {
		return 0, ckb.NewError(ckb.KindInvalidSince, fmt.Sprint(s.Value), "value exceeds 56 bits")
	}
	v := uint64(s.Metric)<<sinceMetricShift | s.Value
	if s.Relative {
		v |= sinceRelativeFlag
	}
	return v, nil
}

// Unconstrained reports whether s places no restriction on its input.
func (s Since) Unconstrained() bool { return s == Since{} }

// Epoch interprets the value as an epoch number with fraction. ok is
// false for other metrics.
func (s Since) Epoch() (e EpochNumberWithFraction, ok bool) {
	if s.Metric != SinceEpoch {
		return e, false
	}
	return DecodeEpoch(s.Value), true
}

func (s Since) String() string {
	mode := "absolute"
	if s.Relative {
		mode = "relative"
	}
	if e, ok := s.Epoch(); ok {
		return fmt.Sprintf("%s %s %s", mode, s.Metric, e)
	}
	return fmt.Sprintf("%s %s %d", mode, s.Metric, s.Value)
}

// EpochNumberWithFraction is the packed epoch form used by headers and
// epoch-based since values: a 24-bit epoch number and the position
// Index/Length inside it.
type EpochNumberWithFraction struct {
	Number uint32
	Index  uint16
	Length uint16
}

const (
	epochNumberBits = 24
	epochIndexShift = 24
	epochLenShift   = 40
	// MaxEpochNumber is the largest encodable epoch number.
	MaxEpochNumber = 1<<epochNumberBits - 1
)

// DecodeEpoch unpacks v. Bits above 56 are ignored.
func DecodeEpoch(v uint64) EpochNumberWithFraction {
	return EpochNumberWithFraction{
		Number: uint32(v & MaxEpochNumber),
		Index:  uint16(v >> epochIndexShift),
		Length: uint16(v >> epochLenShift),
	}
}

// Uint64 packs e. The number must fit in 24 bits.
func (e EpochNumberWithFraction) Uint64() (uint64, error) {
	if e.Number > MaxEpochNumber {
		return 0, ckb.NewError(ckb.KindValidation, fmt.Sprint(e.Number), "epoch number exceeds 24 bits")
	}
	return uint64(e.Number) | uint64(e.Index)<<epochIndexShift | uint64(e.Length)<<epochLenShift, nil
}

func (e EpochNumberWithFraction) String() string {
	return fmt.Sprintf("%d(%d/%d)", e.Number, e.Index, e.Length)
}
