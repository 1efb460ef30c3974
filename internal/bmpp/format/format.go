// Package format implements the canonical BMPP pretty-printer: fixed
// indentation, fixed section order (roles, parameters, interactions),
// driven by the same ast accessors the analyzer's summary printer uses.
// Formatting a valid program and re-parsing it yields an AST with an
// identical ProtocolSummary.
package format

import (
	"fmt"
	"strings"

	"github.com/bargom/codeai/internal/bmpp/ast"
)

// Program renders program as canonical BMPP source text.
func Program(program *ast.Program) string {
	var b strings.Builder
	for i, p := range program.Protocols {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Protocol(p))
	}
	return b.String()
}

// Protocol renders a single protocol declaration.
func Protocol(p *ast.Protocol) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <Protocol>(%q) {\n", p.Name.Name, p.Annotation.Description)

	b.WriteString("  roles ")
	for i, r := range p.Roles.Roles {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s <Agent>(%q)", r.Identifier.Name, r.Annotation.Description)
	}
	b.WriteString("\n")

	b.WriteString("  parameters ")
	for i, param := range p.Parameters.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s <%s>(%q)", param.Identifier.Name, param.BasicType.Name, param.Annotation.Description)
	}
	b.WriteString("\n")

	for _, item := range p.Interactions.Items {
		b.WriteString("  ")
		b.WriteString(interactionItem(item))
		b.WriteString("\n")
	}

	b.WriteString("}\n")
	return b.String()
}

func interactionItem(item *ast.InteractionItem) string {
	if item.IsComposition() {
		return composition(item.Composition)
	}
	return standardInteraction(item.Standard)
}

func standardInteraction(s *ast.StandardInteraction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %s: %s <Action>(%q)[", s.From.Name, s.To.Name, s.Action.Name, s.Annotation.Description)
	for i, flow := range s.Flows {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", flow.Direction, flow.Identifier.Name)
	}
	b.WriteString("]")
	return b.String()
}

func composition(c *ast.ProtocolComposition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <Enactment>[", c.Reference.Identifier.Name)
	for i, entry := range c.ParamOrder {
		if i > 0 {
			b.WriteString(", ")
		}
		if entry.Bare != nil {
			b.WriteString(entry.Bare.Name)
		} else {
			fmt.Fprintf(&b, "%s %s", entry.Flow.Direction, entry.Flow.Identifier.Name)
		}
	}
	b.WriteString("]")
	return b.String()
}
