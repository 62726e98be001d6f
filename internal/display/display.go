// Package display renders decoded entities for the terminal.
//
// Commands keep decoding separate from rendering by passing validated
// values here.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/types"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

func newTable(w io.Writer, columns ...interface{}) table.Table {
	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	return table.New(columns...).WithHeaderFormatter(headerFmt).WithWriter(w)
}

// Capacity formats shannons in unit.
func Capacity(shannons types.Uint, unit types.CapacityUnit) string {
	if unit == types.Shannon {
		return shannons.String() + " shannon"
	}
	return shannons.CKBytes().String() + " CKB"
}

// Header writes a block header as a field table.
func Header(w io.Writer, h types.BlockHeader) {
	fmt.Fprintf(w, "\n%s #%s\n", bold("Block"), h.Number)
	tbl := newTable(w, "Field", "Value")
	tbl.AddRow("hash", h.Hash)
	tbl.AddRow("parentHash", h.ParentHash)
	tbl.AddRow("timestamp", h.Timestamp)
	if e, err := h.EpochFraction(); err == nil {
		tbl.AddRow("epoch", e)
	} else {
		tbl.AddRow("epoch", red(h.Epoch.Hex()))
	}
	tbl.AddRow("difficulty", h.Difficulty.Hex())
	tbl.AddRow("transactionsRoot", h.TransactionsRoot)
	tbl.AddRow("unclesCount", h.UnclesCount)
	tbl.AddRow("version", h.Version)
	tbl.Print()
}

// Block writes the header followed by one row per transaction.
func Block(w io.Writer, b types.Block, unit types.CapacityUnit) {
	Header(w, b.Header)
	fmt.Fprintln(w)
	tbl := newTable(w, "#", "Hash", "Inputs", "Outputs", "Capacity")
	for i, tx := range b.Transactions {
		var total types.Uint
		for _, out := range tx.Outputs {
			total = total.Add(out.Capacity)
		}
		label := fmt.Sprint(i)
		if i == 0 {
			label = cyan("cellbase")
		}
		tbl.AddRow(label, tx.Hash(), len(tx.Inputs), len(tx.Outputs), Capacity(total, unit))
	}
	tbl.Print()
	fmt.Fprintf(w, "%s uncles, %s proposals\n", dim(len(b.Uncles)), dim(len(b.Proposals)))
}

// Since writes the interpretation of a since value.
func Since(w io.Writer, raw types.Uint, s types.Since) {
	tbl := newTable(w, "Field", "Value")
	tbl.AddRow("raw", raw.Hex())
	tbl.AddRow("relative", s.Relative)
	tbl.AddRow("metric", s.Metric)
	if e, ok := s.Epoch(); ok {
		tbl.AddRow("value", e)
	} else {
		tbl.AddRow("value", s.Value)
	}
	tbl.Print()
	if s.Unconstrained() {
		fmt.Fprintln(w, dim("no restriction"))
	}
}

// OK writes a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, green("✓ ")+msg)
}

// Error writes err, split into its location parts when it is a
// *ckb.Error.
func Error(w io.Writer, err error) {
	e, ok := ckb.AsError(err)
	if !ok {
		fmt.Fprintln(w, red("error: ")+err.Error())
		return
	}
	fmt.Fprintf(w, "%s %s\n", red(e.Kind.String()), e.Error())
	if e.Entity != "" {
		fmt.Fprintf(w, "  entity: %s\n", e.Entity)
	}
	if e.Field != "" {
		fmt.Fprintf(w, "  field:  %s\n", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(w, "  value:  %q\n", e.Value)
	}
}
