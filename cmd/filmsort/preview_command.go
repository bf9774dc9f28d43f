package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"filmsort/internal/logging"
	"filmsort/internal/organizer"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show where each candidate file would be moved",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			org, err := organizer.New(cfg, nil, logging.NewNop())
			if err != nil {
				return err
			}
			plans, err := org.Plans(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plans) == 0 {
				fmt.Fprintln(out, "No candidate files found")
				return nil
			}

			rows := make([][]string, 0, len(plans))
			for _, plan := range plans {
				year := ""
				if plan.Attrs.Year > 0 {
					year = strconv.Itoa(plan.Attrs.Year)
				}
				rel, err := filepath.Rel(cfg.Paths.LibraryDir, plan.Destination)
				if err != nil {
					rel = plan.Destination
				}
				rows = append(rows, []string{
					filepath.Base(plan.Source),
					plan.Attrs.Title,
					year,
					rel,
					humanize.Bytes(uint64(plan.Size)),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Title", "Year", "Destination", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}
}
