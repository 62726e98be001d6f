package main

import (
	"github.com/spf13/cobra"

	"github.com/blockberries/ckb/config"
	"github.com/blockberries/ckb/internal/display"
	"github.com/blockberries/ckb/types"
)

func inspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "Summarize a block",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args, 0)
			if err != nil {
				return err
			}
			b, err := types.Decode[types.Block](data)
			if err != nil {
				return err
			}
			if a.cfg.Output == config.OutputJSON {
				return writeJSON(a, b.Header)
			}
			display.Block(a.out, b, a.cfg.Unit())
			return nil
		},
	}
}
