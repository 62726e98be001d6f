// Command ckbtypes decodes, validates and inspects CKB node wire data.
//
// Usage:
//
//	ckbtypes decode block block.json
//	ckbtypes validate transaction tx.json
//	ckbtypes batch transaction txs.json --workers 8
//	ckbtypes since 0x8000000000000064
//	ckbtypes capacity 61 --unit ckbyte
//	ckbtypes hash tx.json
//	ckbtypes inspect block.json
package main

import (
	"os"

	"github.com/blockberries/ckb/internal/display"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		display.Error(os.Stderr, err)
		os.Exit(1)
	}
}
