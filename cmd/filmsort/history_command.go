package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transfers from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			transfers, err := store.RecentTransfers(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(transfers) == 0 {
				fmt.Fprintln(out, "No transfers recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(transfers))
			for _, t := range transfers {
				year := ""
				if t.Year > 0 {
					year = strconv.Itoa(t.Year)
				}
				status := t.Action
				if !t.Success && t.Reason != "" {
					status = t.Reason
				}
				rows = append(rows, []string{
					t.CreatedAt.Local().Format("2006-01-02 15:04"),
					t.Title,
					year,
					filepath.Base(t.Destination),
					humanize.Bytes(uint64(t.Size)),
					status,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Title", "Year", "Destination", "Size", "Outcome"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of transfers to show")
	return cmd
}
