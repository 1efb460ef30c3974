// Package parser turns BMPP source text into a typed internal/bmpp/ast
// tree using a participle grammar. Parsing performs no semantic check
// beyond grammar conformance and closed-set membership of BasicType and
// Direction; it never returns a partial tree on failure.
package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/bargom/codeai/internal/bmpp/ast"
	"github.com/bargom/codeai/internal/bmpp/bmpperr"
)

var bmppLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Tag", Pattern: `<(?:Protocol|Agent|Action|Enactment)>`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Punct", Pattern: `[{}\[\]:,<>()]`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_]*`},
})

var bmppParser = participle.MustBuild[pProgram](
	participle.Lexer(bmppLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// ParseString parses BMPP source held in memory. filename is used only
// for diagnostics and position reporting.
func ParseString(filename, source string) (*ast.Program, error) {
	irProgram, err := bmppParser.ParseString(filename, source)
	if err != nil {
		return nil, convertParseError(filename, err)
	}
	return convertProgram(filename, irProgram), nil
}

// ParseFile reads and parses a BMPP source file from disk.
func ParseFile(filename string) (*ast.Program, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return ParseString(filename, string(data))
}

func convertParseError(filename string, err error) error {
	if perr, ok := err.(participle.Error); ok {
		p := perr.Position()
		return &bmpperr.ParseError{
			Filename: filename,
			Offset:   p.Offset,
			Line:     p.Line,
			Column:   p.Column,
			Reason:   perr.Message(),
		}
	}
	return &bmpperr.ParseError{Filename: filename, Reason: err.Error()}
}
