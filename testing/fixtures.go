package ckbtest

import (
	"fmt"
	"strings"

	"github.com/blockberries/ckb/types"
)

// HexHash returns a 32-byte hash whose bytes all equal b.
func HexHash(b byte) string {
	return "0x" + strings.Repeat(fmt.Sprintf("%02x", b), types.HashLength)
}

// HexShortID returns a proposal short ID whose bytes all equal b.
func HexShortID(b byte) string {
	return "0x" + strings.Repeat(fmt.Sprintf("%02x", b), types.ProposalShortIDLength)
}

// Canonical wire fixtures. Each re-encodes byte-for-byte.
var (
	ZeroHash = HexHash(0x00)
	HashA    = HexHash(0xab)
	HashB    = HexHash(0xcd)
	ShortID  = HexShortID(0x0a)

	Script        = `{"args":["0x01"],"codeHash":"` + HashA + `","hashType":"Type"}`
	OutPoint      = `{"txHash":"` + HashA + `","index":"0x0"}`
	CellInput     = `{"previousOutput":` + OutPoint + `,"since":"0x0"}`
	CellbaseInput = `{"previousOutput":null,"since":"0x64"}`
	CellOutput    = `{"capacity":"0x1dcd6500","lock":` + Script + `,"type":null}`
	CellDep       = `{"outPoint":` + OutPoint + `,"isDepGroup":true}`
	Witness       = `{"data":["0xdead"]}`

	rawTxBody = `"version":"0x0","cellDeps":[` + CellDep + `],"headerDeps":["` + HashB + `"],` +
		`"inputs":[` + CellInput + `],"outputs":[` + CellOutput + `],"witnesses":[` + Witness + `],` +
		`"outputsData":["0x"]`
	RawTransaction = `{` + rawTxBody + `}`
	Transaction    = `{` + rawTxBody + `,"hash":"` + HashB + `"}`

	CellbaseTransaction = `{"version":"0x0","cellDeps":[],"headerDeps":[],"inputs":[` + CellbaseInput + `],` +
		`"outputs":[],"witnesses":[],"outputsData":[],"hash":"` + HashA + `"}`

	Seal   = `{"nonce":"0x1","proof":"0x0102"}`
	Header = `{"dao":"0x","difficulty":"0x100","epoch":"0x7080005000400","hash":"` + HashA + `",` +
		`"number":"0x400","parentHash":"` + ZeroHash + `","proposalsHash":"` + ZeroHash + `","seal":` + Seal + `,` +
		`"timestamp":"0x16e70e6985c","transactionsRoot":"` + HashB + `","unclesCount":"0x0",` +
		`"unclesHash":"` + ZeroHash + `","witnessesRoot":"` + ZeroHash + `","version":"0x0"}`
	Uncle = `{"header":` + Header + `,"proposals":["` + ShortID + `"]}`
	Block = `{"header":` + Header + `,"uncles":[` + Uncle + `],` +
		`"transactions":[` + CellbaseTransaction + `,` + Transaction + `],"proposals":[]}`

	TransactionPoint = `{"blockNumber":"0x400","index":"0x0","txHash":"` + HashA + `"}`
)

// OutPointAt returns an out point wire object with the given index.
func OutPointAt(index int) string {
	return fmt.Sprintf(`{"txHash":"%s","index":"0x%x"}`, ZeroHash, index)
}

// Array joins wire objects into a JSON array.
func Array(items ...string) string {
	return "[" + strings.Join(items, ",") + "]"
}

// MakeScript builds a Type script over codeHash with the given args.
func MakeScript(codeHash byte, args ...types.Bytes) types.Script {
	if args == nil {
		args = []types.Bytes{}
	}
	return types.Script{Args: args, CodeHash: types.Hash{codeHash}, HashType: types.HashTypeType}
}

// MakeRawTransaction builds a valid transaction body spending one
// input and creating outputs cells of 61 CKBytes each.
func MakeRawTransaction(outputs int) types.RawTransaction {
	lock := MakeScript(0xab, types.Bytes{0x01})
	tx := types.RawTransaction{
		Version:    types.NewUint(0),
		CellDeps:   []types.CellDep{{OutPoint: types.Some(types.OutPoint{TxHash: types.Hash{0x01}}), IsDepGroup: true}},
		HeaderDeps: []types.Hash{{0x02}},
		Inputs: []types.CellInput{
			{PreviousOutput: types.Some(types.OutPoint{TxHash: types.Hash{0x03}, Index: types.NewUint(1)})},
		},
		Outputs:     make([]types.CellOutput, outputs),
		Witnesses:   []types.Witness{{Data: []types.Bytes{{0xde, 0xad}}}},
		OutputsData: make([]types.Bytes, outputs),
	}
	for i := range tx.Outputs {
		tx.Outputs[i] = types.CellOutput{Capacity: types.NewUint(6100000000 + uint64(i)), Lock: lock}
		tx.OutputsData[i] = types.Bytes{}
	}
	return tx
}
