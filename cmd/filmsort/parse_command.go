package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filmsort/internal/organizer"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <path>",
		Short: "Print the attributes extracted from a release name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			p, err := organizer.NewParser(cfg)
			if err != nil {
				return err
			}
			attrs := p.Parse(args[0])

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:      %s\n", attrs.Title)
			if attrs.Year > 0 {
				fmt.Fprintf(out, "Year:       %d\n", attrs.Year)
			}
			if attrs.Resolution != "" {
				fmt.Fprintf(out, "Resolution: %s\n", attrs.Resolution)
			}
			if label := attrs.Media.Label(); label != "" {
				fmt.Fprintf(out, "Media:      %s\n", label)
			}
			if attrs.Edition != "" {
				fmt.Fprintf(out, "Edition:    %s\n", attrs.Edition)
			}
			if attrs.Part != "" {
				fmt.Fprintf(out, "Part:       %s\n", attrs.Part)
			}
			fmt.Fprintf(out, "HDR:        %s\n", yesNo(attrs.HDR))
			fmt.Fprintf(out, "Proper:     %s\n", yesNo(attrs.Proper))
			return nil
		},
	}
}
