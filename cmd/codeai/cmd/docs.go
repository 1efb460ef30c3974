package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/bargom/codeai/internal/bmpp/analyzer"
	"github.com/bargom/codeai/internal/bmpp/ast"
)

var docsOut string

// newDocsCmd creates the docs command.
func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs <file|glob>",
		Short: "Render protocol annotations into a documentation report",
		Long: `Parse BMPP files and render each protocol's annotations (roles,
parameters, interactions) into a Markdown report, then render that
report to HTML.`,
		Args: cobra.ExactArgs(1),
		Example: `  codeai docs purchase.bmpp
  codeai docs --out docs "protocols/**/*.bmpp"`,
		RunE: runDocs,
	}

	cmd.Flags().StringVar(&docsOut, "out", "docs", "output directory for rendered reports")

	return cmd
}

func runDocs(cmd *cobra.Command, args []string) error {
	files, err := resolveFiles(args[0])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(docsOut, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	for _, filename := range files {
		start := time.Now()
		program, err := analyzer.ParseFile(filename)
		if metricsRegistry != nil {
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			metricsRegistry.Analyzer().RecordOperation("docs", outcome, time.Since(start).Seconds(), protocolCount(program))
		}
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}

		report := renderMarkdown(program)
		base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

		mdPath := filepath.Join(docsOut, base+".md")
		if err := os.WriteFile(mdPath, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", mdPath, err)
		}

		var htmlBuf strings.Builder
		if err := md.Convert([]byte(report), &htmlBuf); err != nil {
			return fmt.Errorf("rendering %s: %w", filename, err)
		}
		htmlPath := filepath.Join(docsOut, base+".html")
		if err := os.WriteFile(htmlPath, []byte(htmlBuf.String()), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", htmlPath, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s, %s\n", mdPath, htmlPath)
	}

	return nil
}

func renderMarkdown(program *ast.Program) string {
	var b strings.Builder
	for _, p := range program.Protocols {
		fmt.Fprintf(&b, "# %s\n\n%s\n\n", p.Name.Name, p.Annotation.Description)

		b.WriteString("## Roles\n\n")
		for _, r := range p.Roles.Roles {
			fmt.Fprintf(&b, "- **%s**: %s\n", r.Identifier.Name, r.Annotation.Description)
		}
		b.WriteString("\n")

		b.WriteString("## Parameters\n\n")
		for _, param := range p.Parameters.Parameters {
			fmt.Fprintf(&b, "- `%s` (%s): %s\n", param.Identifier.Name, param.BasicType.Name, param.Annotation.Description)
		}
		b.WriteString("\n")

		b.WriteString("## Interactions\n\n")
		for _, item := range p.Interactions.Items {
			if item.IsComposition() {
				fmt.Fprintf(&b, "- enacts `%s`\n", item.Composition.Reference.Identifier.Name)
				continue
			}
			s := item.Standard
			fmt.Fprintf(&b, "- `%s -> %s`: **%s**: %s\n", s.From.Name, s.To.Name, s.Action.Name, s.Annotation.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
