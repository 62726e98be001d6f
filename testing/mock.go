// Package ckbtest provides test utilities for code built on the CKB
// schema: canonical wire fixtures, decode helpers, a configurable
// transaction hasher and codec compliance suites.
package ckbtest

import (
	"sync/atomic"

	"github.com/blockberries/ckb/types"
)

var _ types.TxHasher = (*MockHasher)(nil)

// FixedHash is what an unconfigured MockHasher returns.
var FixedHash = types.Hash{0xee, 0xee, 0xee, 0xee}

// MockHasher is a configurable TxHasher. If HashFn is nil every
// transaction hashes to FixedHash.
type MockHasher struct {
	HashFn func(types.RawTransaction) (types.Hash, error)

	// Calls counts TransactionHash invocations.
	Calls atomic.Int64
}

func (m *MockHasher) TransactionHash(tx types.RawTransaction) (types.Hash, error) {
	m.Calls.Add(1)
	if m.HashFn != nil {
		return m.HashFn(tx)
	}
	return FixedHash, nil
}

// FailingHasher returns a MockHasher whose every call fails with err.
func FailingHasher(err error) *MockHasher {
	return &MockHasher{HashFn: func(types.RawTransaction) (types.Hash, error) {
		return types.Hash{}, err
	}}
}
