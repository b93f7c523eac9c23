package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/infrastructure/almanacfile"
	"github.com/helixml/rangemap/internal/config"
	"github.com/helixml/rangemap/internal/log"
)

// errVerifyMismatch is returned when enumeration disagrees with range mode.
var errVerifyMismatch = errors.New("verification disagrees with range-mode answer")

type solveFlags struct {
	mode      string
	format    string
	verify    bool
	noPersist bool
	asJSON    bool
}

type solveOutput struct {
	Mode     string  `json:"mode"`
	Lowest   uint64  `json:"lowest"`
	Cached   bool    `json:"cached"`
	Verified *uint64 `json:"verified,omitempty"`
}

func solveCmd() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Find the lowest final value for an almanac",
		Long: `Find the lowest value any seed maps to through the almanac's tables.

FILE is a text almanac, a .yaml/.yml almanac, or "-" for stdin.

Modes:
  point   every seed number is one value
  range   seed numbers are (start, count) pairs
  both    report both answers (default); range is skipped when the seed
          count is odd

With --verify the range answer is recomputed by enumerating every seed value,
within the ENUMERATE_BUDGET limit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", "both", "Seed reading: point, range or both")
	cmd.Flags().StringVar(&flags.format, "format", "", "Input format: text or yaml (default: from file extension)")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Cross-check the range answer by enumeration")
	cmd.Flags().BoolVar(&flags.noPersist, "no-persist", false, "Do not read or store solutions")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

func runSolve(cmd *cobra.Command, path string, flags solveFlags) error {
	ctx := cmd.Context()

	modes, err := parseModes(flags.mode)
	if err != nil {
		return err
	}
	if flags.verify && !containsMode(modes, almanac.ModeRange) {
		return errors.New("--verify needs range mode")
	}

	a, err := readAlmanac(cmd.InOrStdin(), path, flags.format)
	if err != nil {
		return err
	}
	if flags.mode == "both" && !flags.verify {
		modes = pointOnlyIfUnpaired(cmd.ErrOrStderr(), a, modes)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flags.noPersist {
		cfg = cfg.Apply(config.WithPersistSolutions(false))
	}

	logger := log.NewStderrLogger(cfg)
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	outputs := make([]solveOutput, 0, len(modes))
	var mismatch error
	for _, mode := range modes {
		result, err := client.Solver.Solve(ctx, a, mode)
		if err != nil {
			return fmt.Errorf("solve %s: %w", mode, err)
		}
		out := solveOutput{Mode: mode.String(), Lowest: result.Lowest(), Cached: result.Cached()}

		if flags.verify && mode == almanac.ModeRange {
			verified, err := client.Solver.Verify(ctx, a)
			if err != nil {
				return err
			}
			out.Verified = &verified
			if verified != result.Lowest() {
				mismatch = fmt.Errorf("%w: %d by ranges, %d by enumeration", errVerifyMismatch, result.Lowest(), verified)
			}
		}
		outputs = append(outputs, out)
	}

	if err := printSolve(cmd.OutOrStdout(), outputs, flags.asJSON); err != nil {
		return err
	}
	return mismatch
}

func parseModes(s string) ([]almanac.Mode, error) {
	if s == "both" {
		return []almanac.Mode{almanac.ModePoint, almanac.ModeRange}, nil
	}
	mode, err := almanac.ParseMode(s)
	if err != nil {
		return nil, err
	}
	return []almanac.Mode{mode}, nil
}

// pointOnlyIfUnpaired drops range mode when the seeds cannot be read as
// pairs, and says so on w.
func pointOnlyIfUnpaired(w io.Writer, a almanac.Almanac, modes []almanac.Mode) []almanac.Mode {
	err := a.Validate(almanac.ModeRange)
	if !errors.Is(err, almanac.ErrOddSeedCount) {
		return modes
	}
	_, _ = fmt.Fprintf(w, "skipping range mode: %v\n", err)
	return slices.DeleteFunc(modes, func(m almanac.Mode) bool { return m == almanac.ModeRange })
}

func containsMode(modes []almanac.Mode, want almanac.Mode) bool {
	for _, m := range modes {
		if m == want {
			return true
		}
	}
	return false
}

// readAlmanac loads path, or parses stdin when path is "-". An empty format
// is taken from the file extension.
func readAlmanac(stdin io.Reader, path, format string) (almanac.Almanac, error) {
	var f almanacfile.Format
	if format != "" {
		var err error
		if f, err = almanacfile.ParseFormat(format); err != nil {
			return almanac.Almanac{}, err
		}
	}
	if path != "-" {
		return almanacfile.Load(path, f)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return almanac.Almanac{}, fmt.Errorf("read almanac: %w", err)
	}
	a, err := almanacfile.Parse(data, f)
	if err != nil {
		return almanac.Almanac{}, fmt.Errorf("stdin: %w", err)
	}
	return a, nil
}

func printSolve(w io.Writer, outputs []solveOutput, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outputs)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, o := range outputs {
		note := ""
		if o.Cached {
			note = "cached"
		}
		if o.Verified != nil {
			note = joinNote(note, fmt.Sprintf("verified=%d", *o.Verified))
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", o.Mode, o.Lowest, note)
	}
	return tw.Flush()
}

func joinNote(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}
