package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bargom/codeai/internal/bmpp/analyzer"
	"github.com/bargom/codeai/internal/bmpp/format"
)

var formatWrite bool

// newFormatCmd creates the format command.
func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Reformat a BMPP file into canonical form",
		Long: `Parse a BMPP file and re-emit it in canonical form: fixed indentation,
fixed section order (roles, parameters, interactions). Prints the
result to stdout unless --write is given.`,
		Args: cobra.ExactArgs(1),
		Example: `  codeai format purchase.bmpp
  codeai format --write purchase.bmpp`,
		RunE: runFormat,
	}

	cmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "write result back to the source file instead of stdout")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	filename := args[0]
	start := time.Now()

	program, err := analyzer.ParseFile(filename)
	if metricsRegistry != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metricsRegistry.Analyzer().RecordOperation("format", outcome, time.Since(start).Seconds(), protocolCount(program))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	canonical := format.Program(program)

	if !formatWrite {
		fmt.Fprint(cmd.OutOrStdout(), canonical)
		return nil
	}

	if err := os.WriteFile(filename, []byte(canonical), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", filename)
	return nil
}
