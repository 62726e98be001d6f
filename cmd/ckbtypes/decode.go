package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blockberries/ckb/batch"
	"github.com/blockberries/ckb/internal/display"
)

func decodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <kind> [file|-]",
		Short: "Decode and validate one entity, print its canonical form",
		Long: `Decode one wire object of the given kind, validate it and print the
canonical re-encoding. Input is read from the file, or stdin when the
file is omitted or "-".

Kinds: ` + kindNames(),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args, 1)
			if err != nil {
				return err
			}
			v, err := k.one(data)
			if err != nil {
				return err
			}
			a.log.Debug("decoded", zap.String("kind", args[0]), zap.Int("bytes", len(data)))
			return writeJSON(a, v)
		},
	}
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <kind> [file|-]",
		Short: "Check that input decodes and validates as the given kind",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args, 1)
			if err != nil {
				return err
			}
			if _, err := k.one(data); err != nil {
				return err
			}
			display.OK(a.out, "valid "+args[0])
			return nil
		},
	}
}

func batchCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch <kind> [file|-]",
		Short: "Decode and validate a JSON array of entities in parallel",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args, 1)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = a.cfg.Workers
			}
			v, err := k.many(cmd.Context(), data, batch.Options{Workers: workers, Logger: a.log})
			if err != nil {
				return err
			}
			return writeJSON(a, v)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel decodes (default from config)")
	return cmd
}

func writeJSON(a *app, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(out))
	return err
}
