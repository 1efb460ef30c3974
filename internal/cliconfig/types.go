// Package cliconfig loads the user-level CLI configuration
// (~/.config/codeai/config.yaml, overridable with CODEAI_* environment
// variables), supplying defaults for output format, verbosity, and the
// default `init` template.
package cliconfig

// OutputFormat controls how `parse` and `version` render their results.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputPlain OutputFormat = "plain"
)

// Config is the top-level CLI configuration, corresponding to
// ~/.config/codeai/config.yaml.
type Config struct {
	OutputFormat    OutputFormat `yaml:"output_format" koanf:"output_format"`
	Verbose         bool         `yaml:"verbose" koanf:"verbose"`
	DefaultTemplate string       `yaml:"default_template" koanf:"default_template"`
	Color           bool         `yaml:"color" koanf:"color"`
}

// DefaultConfig returns the configuration used when no config file or
// environment override is present.
func DefaultConfig() *Config {
	return &Config{
		OutputFormat:    OutputTable,
		Verbose:         false,
		DefaultTemplate: "basic",
		Color:           true,
	}
}
