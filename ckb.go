// Package ckb is the codec and validation layer for the data a client
// exchanges with a CKB node: scripts, cells, transactions, blocks,
// headers and the auxiliary chain-state records returned by queries.
//
// The entity schema lives in [github.com/blockberries/ckb/types] and the
// wire primitives in [github.com/blockberries/ckb/hexutil]. This package
// holds the error taxonomy every decode and validate path reports with.
//
// Data flows one way on decode:
//
//	wire JSON → hexutil (scalars) → types (assembly) → Validate → entity
//
// and the reverse on encode. Nothing here performs I/O; transport and
// RPC framing belong to the caller.
package ckb
