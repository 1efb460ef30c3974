package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bargom/codeai/internal/bmpp/analyzer"
	"github.com/bargom/codeai/internal/bmpp/ast"
)

// newParseCmd creates the parse command.
func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file|glob>",
		Short: "Parse a BMPP file and print its AST",
		Long: `Parse one or more BMPP protocol files and print the resulting Abstract
Syntax Tree. Accepts a single file or a doublestar glob pattern
(e.g. "protocols/**/*.bmpp") to parse many files in one invocation.`,
		Args: cobra.ExactArgs(1),
		Example: `  codeai parse purchase.bmpp
  codeai parse --output json purchase.bmpp
  codeai parse "protocols/**/*.bmpp"`,
		RunE: runParse,
	}

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	files, err := resolveFiles(args[0])
	if err != nil {
		return err
	}

	for _, filename := range files {
		printVerbose(cmd, "Parsing file: %s\n", filename)

		start := time.Now()
		program, err := analyzer.ParseFile(filename)
		if metricsRegistry != nil {
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			metricsRegistry.Analyzer().RecordOperation("parse", outcome, time.Since(start).Seconds(), protocolCount(program))
		}
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}

		switch getOutputFormat() {
		case "json":
			if err := outputJSON(cmd, program); err != nil {
				return err
			}
		default:
			if err := outputAST(cmd, program); err != nil {
				return err
			}
		}
	}

	return nil
}

func protocolCount(program *ast.Program) int {
	if program == nil {
		return 0
	}
	return len(program.Protocols)
}

// outputJSON outputs data as indented JSON.
func outputJSON(cmd *cobra.Command, data interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// outputAST outputs the AST in a readable indented form.
func outputAST(cmd *cobra.Command, program interface{}) error {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatAST(program))
	return nil
}

func formatAST(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
