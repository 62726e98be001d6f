package main

import (
	"github.com/spf13/cobra"

	"github.com/blockberries/ckb/config"
	"github.com/blockberries/ckb/internal/display"
	"github.com/blockberries/ckb/types"
)

type sinceView struct {
	Raw      string `json:"raw"`
	Relative bool   `json:"relative"`
	Metric   string `json:"metric"`
	Value    uint64 `json:"value"`
	Epoch    string `json:"epoch,omitempty"`
}

func sinceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "since <hex>",
		Short: "Interpret a packed since value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := types.ParseUint(args[0])
			if err != nil {
				return err
			}
			s, err := types.DecodeSince(raw)
			if err != nil {
				return err
			}
			if a.cfg.Output == config.OutputTable {
				display.Since(a.out, raw, s)
				return nil
			}
			view := sinceView{Raw: raw.Hex(), Relative: s.Relative, Metric: s.Metric.String(), Value: s.Value}
			if e, ok := s.Epoch(); ok {
				view.Epoch = e.String()
			}
			return writeJSON(a, view)
		},
	}
}
