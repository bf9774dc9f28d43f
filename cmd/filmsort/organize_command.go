package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"filmsort/internal/organizer"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var force bool
	var safeCopy bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Scan the source directories and move films into the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if force {
				cfg.Transfer.ForceOverwrite = true
			}
			if safeCopy {
				cfg.Transfer.SafeCopy = true
			}

			logger, err := ctx.runLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			org, err := organizer.New(cfg, store, logger)
			if err != nil {
				return err
			}
			summary, err := org.Run(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, "Dry run: nothing was moved")
			}
			fmt.Fprintf(out, "Scanned %d, moved %d (%s), skipped %d, failed %d\n",
				summary.Scanned, summary.Moved,
				humanize.Bytes(uint64(summary.BytesMoved)),
				summary.Skipped, summary.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate every transfer without moving anything")
	cmd.Flags().BoolVar(&force, "force", false, "Replace existing destinations regardless of size")
	cmd.Flags().BoolVar(&safeCopy, "safe-copy", false, "Copy through a staging file even on the same volume")
	return cmd
}
