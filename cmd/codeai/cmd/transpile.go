package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bargom/codeai/internal/bmpp/analyzer"
	"github.com/bargom/codeai/internal/bmpp/codegen"
	"github.com/bargom/codeai/internal/manifest"
)

var (
	transpileOut    string
	transpileTarget string
)

// newTranspileCmd creates the transpile command.
func newTranspileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transpile <file>",
		Short: "Parse, validate, and emit a reference target-language binding",
		Long: `Run the full analyzer pipeline (parse, resolve, validate_flow) and emit
a reference target-language binding for every protocol in the file.`,
		Args: cobra.ExactArgs(1),
		Example: `  codeai transpile purchase.bmpp --target go
  codeai transpile purchase.bmpp --target go --out ./generated`,
		RunE: runTranspile,
	}

	cmd.Flags().StringVar(&transpileOut, "out", "", "output directory (default: print to stdout)")
	cmd.Flags().StringVar(&transpileTarget, "target", "", "code-generation target (go); defaults to bmpp.toml's default_target, then \"go\"")

	return cmd
}

func runTranspile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	start := time.Now()

	target := transpileTarget
	if target == "" {
		if _, m, err := manifest.Find(filepath.Dir(filename)); err == nil && m != nil {
			target = m.DefaultTarget
			printVerbose(cmd, "using default_target %q from bmpp.toml\n", target)
		}
	}
	if target == "" {
		target = "go"
	}

	program, err := analyzer.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	resolved, err := analyzer.Resolve(program)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if _, err := analyzer.ValidateFlow(resolved); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	output, err := codegen.Generate(resolved, codegen.Target(target))
	if metricsRegistry != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metricsRegistry.Analyzer().RecordOperation("transpile", outcome, time.Since(start).Seconds(), protocolCount(resolved))
	}
	if err != nil {
		return err
	}

	if transpileOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}

	if err := os.MkdirAll(transpileOut, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	outPath := filepath.Join(transpileOut, base+".go")
	if err := os.WriteFile(outPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	return nil
}
