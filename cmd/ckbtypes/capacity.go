package main

import (
	"github.com/spf13/cobra"

	"github.com/blockberries/ckb/types"
)

type capacityView struct {
	Shannons string `json:"shannons"`
	Hex      string `json:"hex"`
	CKBytes  string `json:"ckbytes"`
}

func capacityCmd(a *app) *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "capacity <amount>",
		Short: "Convert a capacity amount exactly between shannons and CKBytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := a.cfg.Unit()
			if unit != "" {
				parsed, err := types.ParseCapacityUnit(unit)
				if err != nil {
					return err
				}
				u = parsed
			}
			shannons, err := types.ParseCapacity(args[0], u)
			if err != nil {
				return err
			}
			return writeJSON(a, capacityView{
				Shannons: shannons.String(),
				Hex:      shannons.Hex(),
				CKBytes:  shannons.CKBytes().String(),
			})
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of the amount: shannon|ckbyte (default from config)")
	return cmd
}
