package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const replPrompt = "bmpp> "

// lineReader is the minimal interface runRepl needs from an input
// source, satisfied by readline in interactive mode and by a plain
// bufio.Scanner otherwise.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

type scannerReader struct {
	scanner *bufio.Scanner
}

func (s *scannerReader) Readline() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scannerReader) Close() error { return nil }

// newReplCmd creates the repl command.
func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session for loading and validating protocols",
		Long: `Start a read-eval-print loop. Use ":load <file>" to parse and validate
a BMPP file, ":quit" (or Ctrl-D) to exit.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
	return cmd
}

func runRepl(cmd *cobra.Command, args []string) error {
	rl, err := newLineReader(cmd)
	if err != nil {
		return fmt.Errorf("starting repl: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(cmd.OutOrStdout(), `BMPP interactive session. Type ":load <file>" or ":quit".`)

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}

		quit, err := processReplLine(cmd, strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func newLineReader(cmd *cobra.Command) (lineReader, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		rl, err := readline.NewEx(&readline.Config{Prompt: replPrompt})
		if err != nil {
			return nil, err
		}
		return rl, nil
	}
	return &scannerReader{scanner: bufio.NewScanner(cmd.InOrStdin())}, nil
}

// processReplLine handles a single line of repl input. It reports
// quit=true when the session should end.
func processReplLine(cmd *cobra.Command, line string) (quit bool, err error) {
	if line == "" {
		return false, nil
	}

	switch {
	case line == ":quit" || line == ":exit":
		return true, nil
	case strings.HasPrefix(line, ":load "):
		filename := strings.TrimSpace(strings.TrimPrefix(line, ":load "))
		return false, replLoad(cmd, filename)
	default:
		return false, fmt.Errorf("unrecognized command %q (try \":load <file>\")", line)
	}
}

func replLoad(cmd *cobra.Command, filename string) error {
	summaries, err := validateFile(filename)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		status := "ok"
		if len(s.Warnings) > 0 {
			status = fmt.Sprintf("%d warning(s)", len(s.Warnings))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d role(s), %d parameter(s), %d interaction(s) - %s\n",
			s.Name, s.RoleCount, s.ParamCount, s.InteractionCount, status)
		for _, w := range s.Warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", w.String())
		}
	}
	return nil
}
