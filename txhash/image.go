package txhash

import (
	"fmt"

	"github.com/blockberries/ckb"
	"github.com/blockberries/ckb/types"
)

// Binary images of the hashed parts of a transaction. Integers are
// carried as minimal big-endian bytes so that any width is accepted;
// optional references are nil pointers when absent.

type scriptImage struct {
	CodeHash [types.HashLength]byte `cramberry:"1"`
	HashType uint8                  `cramberry:"2"`
	Args     [][]byte               `cramberry:"3"`
}

type outPointImage struct {
	TxHash [types.HashLength]byte `cramberry:"1"`
	Index  []byte                 `cramberry:"2"`
}

type cellInputImage struct {
	PreviousOutput *outPointImage `cramberry:"1"`
	Since          []byte         `cramberry:"2"`
}

type cellOutputImage struct {
	Capacity []byte       `cramberry:"1"`
	Lock     scriptImage  `cramberry:"2"`
	Type     *scriptImage `cramberry:"3"`
}

type cellDepImage struct {
	OutPoint   *outPointImage `cramberry:"1"`
	IsDepGroup bool           `cramberry:"2"`
}

type rawTransactionImage struct {
	Version     []byte            `cramberry:"1"`
	CellDeps    []cellDepImage    `cramberry:"2"`
	HeaderDeps  [][]byte          `cramberry:"3"`
	Inputs      []cellInputImage  `cramberry:"4"`
	Outputs     []cellOutputImage `cramberry:"5"`
	OutputsData [][]byte          `cramberry:"6"`
}

func newScriptImage(s types.Script) (scriptImage, error) {
	if !s.HashType.Valid() {
		return scriptImage{}, ckb.Validation("Script", "hashType", "unrecognized variant "+s.HashType.String())
	}
	args := make([][]byte, len(s.Args))
	for i, a := range s.Args {
		args[i] = a
	}
	return scriptImage{CodeHash: s.CodeHash, HashType: uint8(s.HashType), Args: args}, nil
}

func newOutPointImage(o types.OutPoint) *outPointImage {
	return &outPointImage{TxHash: o.TxHash, Index: o.Index.Bytes()}
}

func newRawTransactionImage(tx types.RawTransaction) (rawTransactionImage, error) {
	img := rawTransactionImage{
		Version:     tx.Version.Bytes(),
		CellDeps:    make([]cellDepImage, len(tx.CellDeps)),
		HeaderDeps:  make([][]byte, len(tx.HeaderDeps)),
		Inputs:      make([]cellInputImage, len(tx.Inputs)),
		Outputs:     make([]cellOutputImage, len(tx.Outputs)),
		OutputsData: make([][]byte, len(tx.OutputsData)),
	}
	for i, d := range tx.CellDeps {
		img.CellDeps[i].IsDepGroup = d.IsDepGroup
		if op, ok := d.OutPoint.Get(); ok {
			img.CellDeps[i].OutPoint = newOutPointImage(op)
		}
	}
	for i, h := range tx.HeaderDeps {
		img.HeaderDeps[i] = h[:]
	}
	for i, in := range tx.Inputs {
		img.Inputs[i].Since = in.Since.Bytes()
		if op, ok := in.PreviousOutput.Get(); ok {
			img.Inputs[i].PreviousOutput = newOutPointImage(op)
		}
	}
	for i, out := range tx.Outputs {
		lock, err := newScriptImage(out.Lock)
		if err != nil {
			return rawTransactionImage{}, ckb.Prefix(err, fmt.Sprintf("outputs[%d].lock", i))
		}
		o := cellOutputImage{Capacity: out.Capacity.Bytes(), Lock: lock}
		if typ, ok := out.Type.Get(); ok {
			ti, err := newScriptImage(typ)
			if err != nil {
				return rawTransactionImage{}, ckb.Prefix(err, fmt.Sprintf("outputs[%d].type", i))
			}
			o.Type = &ti
		}
		img.Outputs[i] = o
	}
	for i, d := range tx.OutputsData {
		img.OutputsData[i] = d
	}
	return img, nil
}
