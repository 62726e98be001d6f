package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blockberries/ckb/txhash"
	"github.com/blockberries/ckb/types"
)

func hashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash [file|-]",
		Short: "Derive the local hash of a transaction body",
		Long: `Decode a raw transaction and print its local hash: blake2b-256 over a
deterministic binary image of the body. This is not the node's hash.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args, 0)
			if err != nil {
				return err
			}
			raw, err := types.Decode[types.RawTransaction](data)
			if err != nil {
				return err
			}
			tx, err := txhash.Seal(raw)
			if err != nil {
				return err
			}
			a.log.Debug("hashed", zap.Int("inputs", len(raw.Inputs)), zap.Int("outputs", len(raw.Outputs)))
			_, err = fmt.Fprintln(a.out, tx.Hash().Hex())
			return err
		},
	}
}
