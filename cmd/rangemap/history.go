package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/rangemap/internal/log"
)

func historyCmd() *cobra.Command {
	var (
		limit  int
		forget string
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored solutions, newest first",
		Long: `List stored solutions, newest first.

With --forget FILE the solutions cached for that almanac are removed before
listing, so the next solve computes them again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := log.NewStderrLogger(cfg)
			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			if forget != "" {
				a, err := readAlmanac(cmd.InOrStdin(), forget, format)
				if err != nil {
					return err
				}
				if err := client.Solutions.Forget(cmd.Context(), a.Checksum()); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "forgot solutions for %s\n", a.Checksum()[:12])
			}

			found, err := client.Solutions.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintf(tw, "ID\tMODE\tLOWEST\tSEEDS\tSTAGES\tDURATION\tCREATED\tCHECKSUM\n")
			for _, s := range found {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
					s.ID(), s.Mode(), s.Lowest(), s.SeedCount(), s.StageCount(),
					s.Duration().Round(time.Microsecond),
					s.CreatedAt().Local().Format(time.DateTime),
					s.Checksum()[:12],
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of solutions to list")
	cmd.Flags().StringVar(&forget, "forget", "", "Remove the solutions stored for this almanac file first")
	cmd.Flags().StringVar(&format, "format", "", "Format of the --forget file: text or yaml (default: from file extension)")

	return cmd
}
