// Package codegen implements the BMPP reference emitter: a straightforward
// tree-to-string walk that assumes its input has already passed the
// analyzer. It performs no semantic check of its own.
package codegen

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/bargom/codeai/internal/bmpp/ast"
)

// Target names a reference emitter back-end. Only TargetGo is
// implemented.
type Target string

const TargetGo Target = "go"

// mapBasicType is the fixed BMPP-to-Go type mapping; unknown types
// default to string.
func mapBasicType(t ast.BasicTypeName) string {
	switch t {
	case ast.TypeString:
		return "string"
	case ast.TypeInt:
		return "int32"
	case ast.TypeFloat:
		return "float64"
	case ast.TypeBool:
		return "bool"
	default:
		return "string"
	}
}

// Generate walks program and emits one typed record per protocol, one
// operation per StandardInteraction, and one composition-dispatch
// operation per ProtocolComposition.
func Generate(program *ast.Program, target Target) (string, error) {
	if target != TargetGo {
		return "", fmt.Errorf("codegen: unsupported target %q", target)
	}

	var b strings.Builder
	b.WriteString("// Code generated by codeai transpile. DO NOT EDIT.\n\n")
	b.WriteString("package bmppgen\n\n")

	for _, p := range program.Protocols {
		generateProtocol(&b, p)
	}
	return b.String(), nil
}

func generateProtocol(b *strings.Builder, p *ast.Protocol) {
	typeName := strcase.ToCamel(p.Name.Name)
	fmt.Fprintf(b, "// %s -- %s\n", typeName, p.Annotation.Description)
	fmt.Fprintf(b, "type %s struct {\n", typeName)
	for _, r := range p.Roles.Roles {
		fmt.Fprintf(b, "\t%s string // %s\n", strcase.ToCamel(r.Name()), r.Annotation.Description)
	}
	paramTypes := make(map[string]ast.BasicTypeName, len(p.Parameters.Parameters))
	for _, param := range p.Parameters.Parameters {
		paramTypes[param.Name()] = param.BasicType.Name
		fmt.Fprintf(b, "\t%s %s // %s\n", strcase.ToCamel(param.Name()), mapBasicType(param.BasicType.Name), param.Annotation.Description)
	}
	b.WriteString("}\n\n")

	for _, item := range p.Interactions.Items {
		if item.IsComposition() {
			generateCompositionDispatch(b, typeName, item.Composition)
		} else {
			generateInteractionOp(b, typeName, item.Standard, paramTypes)
		}
	}
	b.WriteString("\n")
}

func generateInteractionOp(b *strings.Builder, receiver string, si *ast.StandardInteraction, paramTypes map[string]ast.BasicTypeName) {
	funcName := strcase.ToCamel(si.Action.Name)
	var params []string
	var results []string
	for _, flow := range si.Flows {
		goType := mapBasicType(paramTypes[flow.Name()])
		name := strcase.ToLowerCamel(flow.Name())
		switch flow.Direction {
		case ast.DirIn:
			params = append(params, fmt.Sprintf("%s %s", name, goType))
		case ast.DirOut:
			results = append(results, fmt.Sprintf("%s %s", name, goType))
		}
	}
	resultsStr := ""
	if len(results) > 0 {
		resultsStr = fmt.Sprintf(" (%s)", strings.Join(results, ", "))
	}
	fmt.Fprintf(b, "// %s implements %s -> %s: %s\nfunc (p *%s) %s(%s)%s {\n\tpanic(\"not implemented\")\n}\n\n",
		funcName, si.From.Name, si.To.Name, si.Action.Name, receiver, funcName, strings.Join(params, ", "), resultsStr)
}

func generateCompositionDispatch(b *strings.Builder, receiver string, comp *ast.ProtocolComposition) {
	funcName := "Dispatch" + strcase.ToCamel(comp.Reference.Identifier.Name)
	var roleArgs []string
	for _, r := range comp.RoleBinds {
		roleArgs = append(roleArgs, fmt.Sprintf("%s string", strcase.ToLowerCamel(r.Name)))
	}
	fmt.Fprintf(b, "// %s dispatches the composed protocol %s\nfunc (p *%s) %s(%s) {\n\tpanic(\"not implemented\")\n}\n\n",
		funcName, comp.Reference.Identifier.Name, receiver, funcName, strings.Join(roleArgs, ", "))
}
