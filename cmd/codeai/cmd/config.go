package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/bargom/codeai/internal/cliconfig"
)

// newConfigCmd creates the config command with subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and edit the user-level CLI configuration",
		Long: `Manage the user-level CLI configuration file
(~/.config/codeai/config.yaml by default, overridable with --config or
CODEAI_* environment variables).`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return cliconfig.DefaultPath()
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(configPath())
			if err != nil {
				return err
			}
			data, err := yamlv3.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configPath())
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value and persist it",
		Long: `Set one of output_format, verbose, default_template, or color, then
write the result back to the configuration file.`,
		Args: cobra.ExactArgs(2),
		Example: `  codeai config set output_format json
  codeai config set verbose true
  codeai config set default_template multi-party`,
		RunE: runConfigSet,
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	path := configPath()

	cfg, err := cliconfig.Load(path)
	if err != nil {
		return err
	}

	switch key {
	case "output_format":
		cfg.OutputFormat = cliconfig.OutputFormat(value)
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose: %w", err)
		}
		cfg.Verbose = b
	case "default_template":
		cfg.DefaultTemplate = value
	case "color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("color: %w", err)
		}
		cfg.Color = b
	default:
		return fmt.Errorf("unknown config key %q (want one of output_format, verbose, default_template, color)", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "set %s = %s (%s)\n", key, value, path)
	return nil
}
