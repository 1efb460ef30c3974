// Package cmd provides the CLI commands for CodeAI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bargom/codeai/internal/cliconfig"
	"github.com/bargom/codeai/pkg/logging"
	"github.com/bargom/codeai/pkg/metrics"
)

var (
	// cfgFile holds the path to the user config file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// outputFormat specifies the output format (json, table, plain).
	outputFormat string

	// cliCfg is the loaded user-level configuration, populated in
	// PersistentPreRunE before any subcommand runs.
	cliCfg *cliconfig.Config
	// log is the process-wide structured logger.
	log *logging.Logger
	// metricsRegistry records parse/validate/transpile instrumentation.
	metricsRegistry *metrics.Registry
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "codeai",
	Short: "BMPP protocol analyzer and reference compiler",
	Long: `codeai parses, validates, and transpiles BMPP (Business Multi-Party
Protocol) specifications: parallel business-protocol descriptions in the
style of BSPL. It checks safety and causality properties, resolves
protocol composition, and emits reference target-language bindings.`,
	SilenceUsage:      true,
	PersistentPreRunE: rootPersistentPreRunE,
}

func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = cliconfig.DefaultPath()
	}
	cfg, err := cliconfig.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cliCfg = cfg

	if outputFormat == "" {
		outputFormat = string(cfg.OutputFormat)
	}
	if !verbose {
		verbose = cfg.Verbose
	}

	logCfg := logging.ConfigFromEnv()
	logCfg.Format = "text"
	logCfg.Output = "stderr"
	if verbose {
		logCfg.Level = "debug"
	}
	log = logging.New(logCfg)
	metricsRegistry = metrics.Global()

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// NewRootCmd creates a new root command for testing, independent of the
// package-level rootCmd singleton.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "codeai",
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		SilenceUsage:      true,
		PersistentPreRunE: rootPersistentPreRunE,
	}
	addFlagsAndCommands(cmd)
	return cmd
}

func addFlagsAndCommands(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "user config file (default $HOME/.config/codeai/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (json|table|plain)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newTranspileCmd())
	cmd.AddCommand(newFormatCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newDocsCmd())
	cmd.AddCommand(newReplCmd())
	cmd.AddCommand(newServerCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())
}

func init() {
	addFlagsAndCommands(rootCmd)
}

// isVerbose returns true if verbose mode is enabled.
func isVerbose() bool {
	return verbose
}

// getOutputFormat returns the current output format, defaulting to "table".
func getOutputFormat() string {
	if outputFormat == "" {
		return "table"
	}
	return outputFormat
}

// printVerbose prints message only if verbose mode is enabled.
func printVerbose(cmd *cobra.Command, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	}
}

// printError prints an error message to stderr.
func printError(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: "+format+"\n", args...)
}

// exitWithError prints an error and exits with code 1.
func exitWithError(cmd *cobra.Command, err error) {
	printError(cmd, "%v", err)
	os.Exit(1)
}
