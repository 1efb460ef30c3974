package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/bargom/codeai/internal/bmpp/ast"
)

func pos(filename string, p lexer.Position) ast.Position {
	return ast.Position{Filename: filename, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

// unquote strips the surrounding double quotes from a String token's raw
// value. Escapes are not part of the grammar, so a plain strip (rather
// than strconv.Unquote) is correct and never fails.
func unquote(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func convertProgram(filename string, p *pProgram) *ast.Program {
	protocols := make([]*ast.Protocol, len(p.Protocols))
	for i, proto := range p.Protocols {
		protocols[i] = convertProtocol(filename, proto)
	}
	return ast.NewProgram(pos(filename, p.Pos), protocols)
}

func convertProtocol(filename string, p *pProtocol) *ast.Protocol {
	name := ast.NewProtocolName(pos(filename, p.Pos), p.Name)
	ann := convertAnnotation(filename, p.Annotation)
	roles := convertRolesSection(filename, p.Roles)
	params := convertParametersSection(filename, p.Parameters)
	interactions := convertInteractionSection(filename, p.Interactions, roles)
	return ast.NewProtocol(pos(filename, p.Pos), name, ann, roles, params, interactions)
}

func convertAnnotation(filename string, p *pAnnotation) *ast.Annotation {
	return ast.NewAnnotation(pos(filename, p.Pos), unquote(p.Description))
}

func convertRolesSection(filename string, p *pRolesSection) *ast.RolesSection {
	roles := make([]*ast.RoleDecl, len(p.Roles))
	for i, r := range p.Roles {
		id := ast.NewIdentifier(pos(filename, r.Pos), r.Name)
		roles[i] = ast.NewRoleDecl(pos(filename, r.Pos), id, convertAnnotation(filename, r.Annotation))
	}
	return ast.NewRolesSection(pos(filename, p.Pos), roles)
}

func convertParametersSection(filename string, p *pParametersSection) *ast.ParametersSection {
	params := make([]*ast.ParameterDecl, len(p.Params))
	for i, d := range p.Params {
		id := ast.NewIdentifier(pos(filename, d.Pos), d.Name)
		t := ast.NewBasicType(pos(filename, d.Pos), ast.BasicTypeName(d.BasicType))
		params[i] = ast.NewParameterDecl(pos(filename, d.Pos), id, t, convertAnnotation(filename, d.Annotation))
	}
	return ast.NewParametersSection(pos(filename, p.Pos), params)
}

func convertInteractionSection(filename string, p *pInteractionSection, roles *ast.RolesSection) *ast.InteractionSection {
	items := make([]*ast.InteractionItem, len(p.Items))
	for i, it := range p.Items {
		if it.Standard != nil {
			items[i] = ast.NewStandardItem(convertStandardInteraction(filename, it.Standard))
		} else {
			items[i] = ast.NewCompositionItem(convertProtocolComposition(filename, it.Composition))
		}
	}
	return ast.NewInteractionSection(pos(filename, p.Pos), items)
}

func convertStandardInteraction(filename string, p *pStandardInteraction) *ast.StandardInteraction {
	from := ast.NewRoleRef(pos(filename, p.Pos), p.From)
	to := ast.NewRoleRef(pos(filename, p.Pos), p.To)
	action := ast.NewActionName(pos(filename, p.Pos), p.Action)
	ann := convertAnnotation(filename, p.Annotation)
	flows := make([]*ast.ParameterFlow, len(p.Flows))
	for i, f := range p.Flows {
		flows[i] = convertParamFlow(filename, f)
	}
	return ast.NewStandardInteraction(pos(filename, p.Pos), from, to, action, ann, flows)
}

func convertParamFlow(filename string, p *pParamFlow) *ast.ParameterFlow {
	id := ast.NewIdentifier(pos(filename, p.Pos), p.Name)
	return ast.NewParameterFlow(pos(filename, p.Pos), ast.Direction(p.Direction), id)
}

// convertProtocolComposition splits a composition site's CompParam list
// into positional role bindings (bare identifiers) and parameter threads
// (directed flows) -- the grammar does not separate the two
// syntactically; by convention a composition site lists its role
// bindings before its parameter flows.
func convertProtocolComposition(filename string, p *pProtocolComposition) *ast.ProtocolComposition {
	refID := ast.NewIdentifier(pos(filename, p.Pos), p.Name)
	ref := ast.NewProtocolReference(pos(filename, p.Pos), refID)

	var roleBinds []*ast.Identifier
	var paramFlows []*ast.ParameterFlow
	order := make([]ast.CompParam, len(p.Params))
	for i, cp := range p.Params {
		if cp.Flow != nil {
			flow := convertParamFlow(filename, cp.Flow)
			paramFlows = append(paramFlows, flow)
			order[i] = ast.CompParam{Flow: flow}
			continue
		}
		// A bare identifier is a role binding regardless of where it
		// appears in the list; the composition resolver's arity check
		// surfaces any malformed mixing.
		id := ast.NewIdentifier(pos(filename, cp.Pos), cp.Bare)
		roleBinds = append(roleBinds, id)
		order[i] = ast.CompParam{Bare: id}
	}
	return ast.NewProtocolComposition(pos(filename, p.Pos), ref, roleBinds, paramFlows, order)
}
