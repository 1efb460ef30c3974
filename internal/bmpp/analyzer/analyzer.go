// Package analyzer exposes the language-neutral analyzer API described
// for BMPP: parse, resolve, validate_flow, validate_composition. Every
// other package in internal/bmpp is a collaborator; this package is the
// single entry point a driver (CLI or HTTP) should depend on.
package analyzer

import (
	"github.com/bargom/codeai/internal/bmpp/ast"
	"github.com/bargom/codeai/internal/bmpp/bmpperr"
	"github.com/bargom/codeai/internal/bmpp/flow"
	"github.com/bargom/codeai/internal/bmpp/parser"
	"github.com/bargom/codeai/internal/bmpp/registry"
)

// GrammarVersion identifies the revision of the BMPP grammar this
// analyzer implements. Bump it when the grammar in parser/grammar.go changes in a way
// that affects acceptance of existing protocol sources.
const GrammarVersion = "1.0"

// ProtocolSummary is the user-visible report the driver prints on a
// successful analysis: name, description, role count, parameter count,
// interaction count, plus any warnings.
type ProtocolSummary struct {
	Name         string
	Description  string
	RoleCount    int
	ParamCount   int
	InteractionCount int
	Warnings     []bmpperr.Warning
}

// Parse parses BMPP source text into a Program. On failure it returns a
// *bmpperr.ParseError and no partial tree.
func Parse(filename, source string) (*ast.Program, error) {
	return parser.ParseString(filename, source)
}

// ParseFile reads and parses a BMPP source file.
func ParseFile(filename string) (*ast.Program, error) {
	return parser.ParseFile(filename)
}

// Resolve registers every protocol in program and expands composition
// references, returning a new Program whose protocols contain only
// StandardInteraction items.
func Resolve(program *ast.Program) (*ast.Program, error) {
	reg, err := registry.Register(program)
	if err != nil {
		return nil, err
	}
	return reg.ResolveAll()
}

// ValidateComposition registers program and validates every composition
// reference (arity, parameter declarations, direct/indirect recursion,
// unknown references) without running the flow analyzer.
func ValidateComposition(program *ast.Program) error {
	_, err := Resolve(program)
	return err
}

// ValidateFlow runs the BSPL flow analyzer against every protocol in a
// resolved program, stopping at the first hard error.
func ValidateFlow(program *ast.Program) ([]ProtocolSummary, error) {
	summaries := make([]ProtocolSummary, 0, len(program.Protocols))
	for _, p := range program.Protocols {
		result, err := flow.Analyze(p)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ProtocolSummary{
			Name:             p.Name.Name,
			Description:      p.Annotation.Description,
			RoleCount:        len(p.Roles.Roles),
			ParamCount:       len(p.Parameters.Parameters),
			InteractionCount: len(p.Interactions.Items),
			Warnings:         result.Warnings,
		})
	}
	return summaries, nil
}

// Validate runs the complete pipeline: parse, resolve, validate_flow.
func Validate(filename, source string) ([]ProtocolSummary, error) {
	program, err := Parse(filename, source)
	if err != nil {
		return nil, err
	}
	resolved, err := Resolve(program)
	if err != nil {
		return nil, err
	}
	return ValidateFlow(resolved)
}
