package types

import (
	"fmt"

	"github.com/blockberries/ckb"
)

// Validate methods run after assembly. They never modify the value and
// return the first failure with its field path.

func nested(err error, path string) error {
	if err == nil {
		return nil
	}
	return ckb.Prefix(err, path)
}

func validateEach[T interface{ Validate() error }](field string, items []T) error {
	for i, v := range items {
		if err := v.Validate(); err != nil {
			return nested(err, indexed(field, i))
		}
	}
	return nil
}

func validateOption[T interface{ Validate() error }](field string, o Option[T]) error {
	if v, ok := o.Get(); ok {
		return nested(v.Validate(), field)
	}
	return nil
}

func unrecognized(entity, field string, v fmt.Stringer) error {
	return invalid(entity, field, "unrecognized variant "+v.String())
}

// Validate checks that the hash type is a recognized variant.
func (s Script) Validate() error {
	if !s.HashType.Valid() {
		return unrecognized("Script", "hashType", s.HashType)
	}
	return nil
}

func (o OutPoint) Validate() error { return nil }

func (in CellInput) Validate() error {
	return validateOption("previousOutput", in.PreviousOutput)
}

// Validate checks the capacity and both scripts.
func (out CellOutput) Validate() error {
	if out.Capacity.Sign() < 0 {
		return invalid("CellOutput", "capacity", "negative capacity")
	}
	if err := out.Lock.Validate(); err != nil {
		return nested(err, "lock")
	}
	return validateOption("type", out.Type)
}

func (d CellDep) Validate() error { return validateOption("outPoint", d.OutPoint) }

func (wit Witness) Validate() error { return nil }

// Validate checks every nested entity and that each output has exactly
// one data entry.
func (tx RawTransaction) Validate() error { return validateRaw("RawTransaction", tx) }

func validateRaw(entity string, tx RawTransaction) error {
	if err := validateEach("cellDeps", tx.CellDeps); err != nil {
		return err
	}
	if err := validateEach("inputs", tx.Inputs); err != nil {
		return err
	}
	if err := validateEach("outputs", tx.Outputs); err != nil {
		return err
	}
	if err := validateEach("witnesses", tx.Witnesses); err != nil {
		return err
	}
	if len(tx.Outputs) != len(tx.OutputsData) {
		return invalid(entity, "outputsData", fmt.Sprintf(
			"outputs has %d entries but outputsData has %d", len(tx.Outputs), len(tx.OutputsData)))
	}
	return nil
}

// Validate checks the body and that the hash has been derived.
func (tx Transaction) Validate() error {
	if err := validateRaw("Transaction", tx.RawTransaction); err != nil {
		return err
	}
	if tx.hash.IsZero() {
		return invalid("Transaction", "hash", "hash not derived")
	}
	return nil
}

// Validate checks the status variant. A committed transaction must
// name its block.
func (s TxStatus) Validate() error {
	if !s.Status.Valid() {
		return unrecognized("TxStatus", "status", s.Status)
	}
	if s.Status == TxStatusCommitted && s.BlockHash.IsNone() {
		return invalid("TxStatus", "blockHash", "committed transaction without block hash")
	}
	return nil
}

func (v TransactionWithStatus) Validate() error {
	if err := v.Transaction.Validate(); err != nil {
		return nested(err, "transaction")
	}
	return nested(v.TxStatus.Validate(), "txStatus")
}

func (p TransactionPoint) Validate() error { return nil }

func (v TransactionByLockHash) Validate() error { return nil }

func (s Seal) Validate() error { return nil }

func (h BlockHeader) Validate() error {
	if h.Hash.IsZero() {
		return invalid("BlockHeader", "hash", "zero block hash")
	}
	return nil
}

func (u UncleBlock) Validate() error { return nested(u.Header.Validate(), "header") }

// Validate checks the header, uncles and transactions. Every input of
// a non-cellbase transaction must reference a previous output.
func (b Block) Validate() error {
	if err := b.Header.Validate(); err != nil {
		return nested(err, "header")
	}
	if err := validateEach("uncles", b.Uncles); err != nil {
		return err
	}
	if err := validateEach("transactions", b.Transactions); err != nil {
		return err
	}
	for i := 1; i < len(b.Transactions); i++ {
		for j, in := range b.Transactions[i].Inputs {
			if in.PreviousOutput.IsNone() {
				return invalid("Block", fmt.Sprintf("transactions[%d].inputs[%d].previousOutput", i, j),
					"non-cellbase input without previous output")
			}
		}
	}
	return nil
}

func (c CellIncludingOutPoint) Validate() error {
	if err := c.Lock.Validate(); err != nil {
		return nested(err, "lock")
	}
	return validateOption("outPoint", c.OutPoint)
}

func (c LiveCellByLockHash) Validate() error { return nested(c.CellOutput.Validate(), "cellOutput") }

func (c CellWithStatus) Validate() error {
	if !c.Status.Valid() {
		return unrecognized("CellWithStatus", "status", c.Status)
	}
	return validateOption("cell", c.Cell)
}

func (a AlertMessage) Validate() error { return nil }

func (info BlockchainInfo) Validate() error { return validateEach("alerts", info.Alerts) }

func (a NodeAddress) Validate() error { return nil }

func (n NodeInfo) Validate() error { return nil }

func (p PeersState) Validate() error { return nil }

func (p TxPoolInfo) Validate() error { return nil }

func (e Epoch) Validate() error { return nil }

func (res RunDryResult) Validate() error { return nil }

func (s LockHashIndexState) Validate() error { return nil }

func (b BannedAddress) Validate() error { return nil }

// Validate checks that the parts add up to the total.
func (d CellbaseOutputCapacityDetails) Validate() error {
	sum := d.Primary.Add(d.Secondary).Add(d.ProposalReward).Add(d.TxFee)
	if !sum.Equal(d.Total) {
		return invalid("CellbaseOutputCapacityDetails", "total",
			fmt.Sprintf("parts sum to %s, total is %s", sum, d.Total))
	}
	return nil
}

func (e TraceEntry) Validate() error { return nil }

func (t TransactionTrace) Validate() error { return validateEach("", []TraceEntry(t)) }
