package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/helixml/rangemap/application/service"
	"github.com/helixml/rangemap/internal/log"
)

func traceCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "trace FILE SEED",
		Short: "Show the value of one seed after every stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", args[1], err)
			}
			a, err := readAlmanac(cmd.InOrStdin(), args[0], format)
			if err != nil {
				return err
			}

			// Tracing never touches the store.
			solver := service.NewSolver(nil, log.Discard())
			steps := solver.Trace(a, seed)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintf(tw, "STAGE\tIN\tOUT\n")
			for _, s := range steps {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", s.Stage, s.Input, s.Output)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format: text or yaml (default: from file extension)")

	return cmd
}
