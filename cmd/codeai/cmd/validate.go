package cmd

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bargom/codeai/internal/bmpp/analyzer"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file|glob>",
		Short: "Validate one or more BMPP files end to end",
		Long: `Validate BMPP protocol files: parse, resolve composition references, and
run the flow analyzer (safety and causality checks). Exit code 0 means
every file validated cleanly; non-zero means at least one file failed.`,
		Args: cobra.ExactArgs(1),
		Example: `  codeai validate purchase.bmpp
  codeai validate --verbose purchase.bmpp
  codeai validate "protocols/**/*.bmpp"`,
		RunE: runValidate,
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := resolveFiles(args[0])
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Validating"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var failures int
	for _, filename := range files {
		ok, err := validateOne(cmd, filename)
		if err != nil {
			return err
		}
		if !ok {
			failures++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed validation", failures, len(files))
	}
	return nil
}

func validateOne(cmd *cobra.Command, filename string) (bool, error) {
	start := time.Now()
	summaries, err := validateFile(filename)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if metricsRegistry != nil {
		metricsRegistry.Analyzer().RecordOperation("validate", outcome, time.Since(start).Seconds(), len(summaries))
	}
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", failStyle.Render("FAIL"), filename, err)
		return false, nil
	}

	warnCount := 0
	for _, s := range summaries {
		warnCount += len(s.Warnings)
	}

	status := passStyle.Render("PASS")
	if warnCount > 0 {
		status = warnStyle.Render("WARN")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", status, filename,
		dimStyle.Render(fmt.Sprintf("(%d protocol(s), %d warning(s))", len(summaries), warnCount)))

	if verbose {
		for _, s := range summaries {
			for _, w := range s.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", w.String())
			}
		}
	}

	return true, nil
}

func validateFile(filename string) ([]analyzer.ProtocolSummary, error) {
	program, err := analyzer.ParseFile(filename)
	if err != nil {
		return nil, err
	}
	resolved, err := analyzer.Resolve(program)
	if err != nil {
		return nil, err
	}
	return analyzer.ValidateFlow(resolved)
}
