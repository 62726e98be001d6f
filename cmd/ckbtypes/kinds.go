package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/blockberries/ckb/batch"
	"github.com/blockberries/ckb/types"
)

// entityKind decodes one entity kind, singly or as an array.
type entityKind struct {
	one  func(data []byte) (any, error)
	many func(ctx context.Context, data []byte, opts batch.Options) (any, error)
}

func kindOf[T any, P interface {
	*T
	types.Entity
}]() entityKind {
	return entityKind{
		one: func(data []byte) (any, error) {
			return types.Decode[T, P](data)
		},
		many: func(ctx context.Context, data []byte, opts batch.Options) (any, error) {
			return batch.Entities[T, P](ctx, data, opts)
		},
	}
}

var kinds = map[string]entityKind{
	"script":                  kindOf[types.Script](),
	"outpoint":                kindOf[types.OutPoint](),
	"cell-input":              kindOf[types.CellInput](),
	"cell-output":             kindOf[types.CellOutput](),
	"cell-dep":                kindOf[types.CellDep](),
	"witness":                 kindOf[types.Witness](),
	"raw-transaction":         kindOf[types.RawTransaction](),
	"transaction":             kindOf[types.Transaction](),
	"tx-status":               kindOf[types.TxStatus](),
	"transaction-with-status": kindOf[types.TransactionWithStatus](),
	"transaction-point":       kindOf[types.TransactionPoint](),
	"transaction-by-lock":     kindOf[types.TransactionByLockHash](),
	"header":                  kindOf[types.BlockHeader](),
	"uncle":                   kindOf[types.UncleBlock](),
	"block":                   kindOf[types.Block](),
	"cell":                    kindOf[types.Cell](),
	"cell-with-outpoint":      kindOf[types.CellIncludingOutPoint](),
	"cell-with-status":        kindOf[types.CellWithStatus](),
	"live-cell":               kindOf[types.LiveCellByLockHash](),
	"blockchain-info":         kindOf[types.BlockchainInfo](),
	"node-info":               kindOf[types.NodeInfo](),
	"peers-state":             kindOf[types.PeersState](),
	"tx-pool-info":            kindOf[types.TxPoolInfo](),
	"epoch":                   kindOf[types.Epoch](),
	"run-dry-result":          kindOf[types.RunDryResult](),
	"lock-hash-index-state":   kindOf[types.LockHashIndexState](),
	"banned-address":          kindOf[types.BannedAddress](),
	"cellbase-details":        kindOf[types.CellbaseOutputCapacityDetails](),
	"transaction-trace":       kindOf[types.TransactionTrace](),
}

func lookupKind(name string) (entityKind, error) {
	k, ok := kinds[name]
	if !ok {
		return entityKind{}, fmt.Errorf("unknown kind %q (known: %s)", name, kindNames())
	}
	return k, nil
}

func kindNames() string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
