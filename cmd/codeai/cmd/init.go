package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/bargom/codeai/internal/manifest"
)

var (
	initTemplate     string
	initWithManifest bool
)

const basicTemplate = `Purchase <Protocol>("a two-party request/response protocol") {
  roles Buyer <Agent>("the requesting party"), Seller <Agent>("the responding party")
  parameters ID <String>("a unique session identifier"), item <String>("the item being purchased"), price <Float>("the quoted price")
  Buyer -> Seller: rfq <Action>("request a quote")[out ID, out item]
  Seller -> Buyer: quote <Action>("respond with a price")[in ID, in item, out price]
}
`

const multiPartyTemplate = `Purchase <Protocol>("a three-party purchase and shipping protocol") {
  roles Buyer <Agent>("the requesting party"), Seller <Agent>("the responding party"), Shipper <Agent>("the delivery party")
  parameters ID <String>("a unique session identifier"), item <String>("the item being purchased"), price <Float>("the quoted price"), address <String>("the delivery address")
  Buyer -> Seller: rfq <Action>("request a quote")[out ID, out item]
  Seller -> Buyer: quote <Action>("respond with a price")[in ID, in item, out price]
  Buyer -> Shipper: ship <Action>("request delivery")[in ID, in item, out address]
}
`

const compositionTemplate = `Quote <Protocol>("a reusable request/response sub-protocol") {
  roles Requester <Agent>("the requesting party"), Responder <Agent>("the responding party")
  parameters ID <String>("a unique session identifier"), item <String>("the item being quoted"), price <Float>("the quoted price")
  Requester -> Responder: rfq <Action>("request a quote")[out ID, out item]
  Responder -> Requester: quote <Action>("respond with a price")[in ID, in item, out price]
}

Purchase <Protocol>("a purchase protocol built from a composed sub-protocol") {
  roles Buyer <Agent>("the requesting party"), Seller <Agent>("the responding party")
  parameters ID <String>("a unique session identifier"), item <String>("the item being purchased"), price <Float>("the quoted price")
  Quote <Enactment>[Buyer, Seller, out ID, out item, out price]
}
`

var initTemplates = map[string]string{
	"basic":       basicTemplate,
	"multi-party": multiPartyTemplate,
	"composition": compositionTemplate,
}

var initTemplateOrder = []string{"basic", "multi-party", "composition"}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Scaffold a new BMPP protocol file",
		Long: `Write a starter BMPP protocol file. With --template, scaffolds that
template directly; otherwise, if stdin is a terminal, prompts
interactively for which template to use.`,
		Args: cobra.ExactArgs(1),
		Example: `  codeai init purchase.bmpp --template basic
  codeai init purchase.bmpp --template multi-party
  codeai init purchase.bmpp`,
		RunE: runInit,
	}

	cmd.Flags().StringVar(&initTemplate, "template", "", "template to scaffold (basic|multi-party|composition)")
	cmd.Flags().BoolVar(&initWithManifest, "manifest", false, "also scaffold a bmpp.toml project manifest alongside the protocol file")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	name := initTemplate
	if name == "" {
		var err error
		name, err = selectTemplate()
		if err != nil {
			return fmt.Errorf("template selection: %w", err)
		}
	}

	body, ok := initTemplates[name]
	if !ok {
		return fmt.Errorf("unknown template %q (want one of %v)", name, initTemplateOrder)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s template)\n", path, name)

	if initWithManifest {
		manifestPath := filepath.Join(filepath.Dir(path), manifest.Filename)
		if _, err := os.Stat(manifestPath); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, leaving it untouched\n", manifestPath)
		} else {
			if err := manifest.Write(manifestPath, manifest.Default()); err != nil {
				return fmt.Errorf("writing %s: %w", manifestPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", manifestPath)
		}
	}

	return nil
}

func selectTemplate() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		if cliCfg != nil && cliCfg.DefaultTemplate != "" {
			return cliCfg.DefaultTemplate, nil
		}
		return "basic", nil
	}

	prompt := promptui.Select{
		Label: "Select a protocol template",
		Items: initTemplateOrder,
	}
	_, name, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return name, nil
}
