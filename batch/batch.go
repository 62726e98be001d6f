// Package batch decodes many independent wire objects in parallel.
//
// Decoding is pure, so the objects of a batch (the transactions of a
// block, a page of query results) share nothing and can be spread over
// a bounded pool of goroutines. Results keep input order. On failure
// the element with the lowest index wins, whatever the scheduling, and
// is returned with that index at the front of its field path, e.g.
// "[3].outputs[0].lock.codeHash". Elements after a known failure are
// skipped.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/types"
)

// Options configures a batch decode. The zero value is usable.
type Options struct {
	// Workers bounds concurrent decodes. Zero means GOMAXPROCS.
	Workers int
	// Logger receives debug output. Nil means no logging.
	Logger *zap.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// Decode runs decode on every item and returns the results in input
// order. On failure no results are returned.
func Decode[T any](ctx context.Context, items []json.RawMessage, opts Options, decode func([]byte) (T, error)) ([]T, error) {
	log := opts.logger()
	out := make([]T, len(items))

	err := run(ctx, len(items), opts, func(i int) error {
		v, err := decode(items[i])
		if err != nil {
			log.Debug("batch element rejected", zap.Int("index", i), zap.Error(err))
			return err
		}
		out[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("batch decoded", zap.Int("count", len(items)), zap.Int("workers", opts.workers()))
	return out, nil
}

// run calls fn for every index in [0, n) on a bounded pool and returns
// the failure with the lowest index. An index above the lowest failure
// seen so far is not started. ctx only stops new work.
func run(ctx context.Context, n int, opts Options, fn func(i int) error) error {
	errs := make([]error, n)
	var lowest atomic.Int64
	lowest.Store(int64(n))

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if int64(i) > lowest.Load() {
				return nil
			}
			if err := fn(i); err != nil {
				errs[i] = ckb.Prefix(err, fmt.Sprintf("[%d]", i))
				for {
					cur := lowest.Load()
					if int64(i) >= cur || lowest.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Split parses a JSON array into its elements without decoding them.
func Split(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ckb.Error{Kind: ckb.KindSyntax, Entity: "batch", Reason: "expected a JSON array", Err: err}
	}
	if items == nil {
		return nil, ckb.MissingField("batch", "")
	}
	return items, nil
}

// Entities decodes and validates a JSON array of T.
func Entities[T any, P interface {
	*T
	types.Entity
}](ctx context.Context, data []byte, opts Options) ([]T, error) {
	items, err := Split(data)
	if err != nil {
		return nil, err
	}
	return Decode(ctx, items, opts, types.Decode[T, P])
}

// Transactions decodes and validates a JSON array of transactions.
func Transactions(ctx context.Context, data []byte, opts Options) ([]types.Transaction, error) {
	return Entities[types.Transaction](ctx, data, opts)
}

// Blocks decodes and validates a JSON array of blocks.
func Blocks(ctx context.Context, data []byte, opts Options) ([]types.Block, error) {
	return Entities[types.Block](ctx, data, opts)
}

// Hash derives the hash of every transaction body with h, in order.
func Hash(ctx context.Context, txs []types.RawTransaction, opts Options, h types.TxHasher) ([]types.Hash, error) {
	if h == nil {
		return nil, ckb.Validation("batch", "hasher", "no hasher")
	}
	out := make([]types.Hash, len(txs))
	err := run(ctx, len(txs), opts, func(i int) error {
		hash, err := h.TransactionHash(txs[i])
		if err != nil {
			return err
		}
		out[i] = hash
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
