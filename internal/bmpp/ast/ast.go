// Package ast defines the Abstract Syntax Tree for BMPP protocol sources.
// Nodes are built bottom-up by the parser and are immutable once returned;
// the composition resolver clones subtrees rather than mutating them.
package ast

import (
	"fmt"
	"strings"
)

// Node is the interface implemented by every AST node. Children returns
// the node's ordered child list generically, so tree-printers and the
// JSON emitter can walk the tree without a type switch per node kind.
type Node interface {
	Pos() Position
	Type() NodeType
	Children() []Node
	String() string
}

// =============================================================================
// Program
// =============================================================================

// Program is the root node: zero or more Protocol declarations.
type Program struct {
	pos       Position
	Protocols []*Protocol
}

func NewProgram(pos Position, protocols []*Protocol) *Program {
	return &Program{pos: pos, Protocols: protocols}
}

func (p *Program) Pos() Position  { return p.pos }
func (p *Program) Type() NodeType { return NodeProgram }
func (p *Program) Children() []Node {
	out := make([]Node, len(p.Protocols))
	for i, c := range p.Protocols {
		out[i] = c
	}
	return out
}
func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("Program{\n")
	for _, proto := range p.Protocols {
		b.WriteString("  ")
		b.WriteString(proto.String())
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// =============================================================================
// Protocol
// =============================================================================

// Protocol is a single top-level protocol declaration. A well-formed
// Protocol has exactly one of each section, in this order.
type Protocol struct {
	pos          Position
	Name         *ProtocolName
	Annotation   *Annotation
	Roles        *RolesSection
	Parameters   *ParametersSection
	Interactions *InteractionSection
}

func NewProtocol(pos Position, name *ProtocolName, ann *Annotation, roles *RolesSection, params *ParametersSection, interactions *InteractionSection) *Protocol {
	return &Protocol{pos: pos, Name: name, Annotation: ann, Roles: roles, Parameters: params, Interactions: interactions}
}

func (p *Protocol) Pos() Position  { return p.pos }
func (p *Protocol) Type() NodeType { return NodeProtocol }
func (p *Protocol) Children() []Node {
	return []Node{p.Name, p.Annotation, p.Roles, p.Parameters, p.Interactions}
}
func (p *Protocol) String() string {
	return fmt.Sprintf("Protocol{Name: %s, Roles: %d, Parameters: %d, Interactions: %d}",
		p.Name.Name, len(p.Roles.Roles), len(p.Parameters.Parameters), len(p.Interactions.Items))
}

// ProtocolName carries the declared identifier naming a protocol.
type ProtocolName struct {
	pos  Position
	Name string
}

func NewProtocolName(pos Position, name string) *ProtocolName { return &ProtocolName{pos: pos, Name: name} }
func (n *ProtocolName) Pos() Position                          { return n.pos }
func (n *ProtocolName) Type() NodeType                         { return NodeProtocolName }
func (n *ProtocolName) Children() []Node                       { return nil }
func (n *ProtocolName) String() string                         { return fmt.Sprintf("ProtocolName(%q)", n.Name) }

// Annotation carries a free-text description attribute.
type Annotation struct {
	pos         Position
	Description string
}

func NewAnnotation(pos Position, desc string) *Annotation { return &Annotation{pos: pos, Description: desc} }
func (a *Annotation) Pos() Position                       { return a.pos }
func (a *Annotation) Type() NodeType                      { return NodeAnnotation }
func (a *Annotation) Children() []Node                    { return nil }
func (a *Annotation) String() string                      { return fmt.Sprintf("Annotation(%q)", a.Description) }

// =============================================================================
// Roles
// =============================================================================

// RolesSection holds one or more RoleDecl.
type RolesSection struct {
	pos   Position
	Roles []*RoleDecl
}

func NewRolesSection(pos Position, roles []*RoleDecl) *RolesSection {
	return &RolesSection{pos: pos, Roles: roles}
}
func (r *RolesSection) Pos() Position  { return r.pos }
func (r *RolesSection) Type() NodeType { return NodeRolesSection }
func (r *RolesSection) Children() []Node {
	out := make([]Node, len(r.Roles))
	for i, c := range r.Roles {
		out[i] = c
	}
	return out
}
func (r *RolesSection) String() string { return fmt.Sprintf("RolesSection{%d roles}", len(r.Roles)) }

// RoleDecl declares one participant role.
type RoleDecl struct {
	pos        Position
	Identifier *Identifier
	Annotation *Annotation
}

func NewRoleDecl(pos Position, id *Identifier, ann *Annotation) *RoleDecl {
	return &RoleDecl{pos: pos, Identifier: id, Annotation: ann}
}
func (r *RoleDecl) Pos() Position         { return r.pos }
func (r *RoleDecl) Type() NodeType        { return NodeRoleDecl }
func (r *RoleDecl) Children() []Node      { return []Node{r.Identifier, r.Annotation} }
func (r *RoleDecl) String() string        { return fmt.Sprintf("RoleDecl(%s)", r.Identifier.Name) }
func (r *RoleDecl) Name() string          { return r.Identifier.Name }

// =============================================================================
// Parameters
// =============================================================================

// ParametersSection holds one or more ParameterDecl.
type ParametersSection struct {
	pos        Position
	Parameters []*ParameterDecl
}

func NewParametersSection(pos Position, params []*ParameterDecl) *ParametersSection {
	return &ParametersSection{pos: pos, Parameters: params}
}
func (p *ParametersSection) Pos() Position  { return p.pos }
func (p *ParametersSection) Type() NodeType { return NodeParametersSection }
func (p *ParametersSection) Children() []Node {
	out := make([]Node, len(p.Parameters))
	for i, c := range p.Parameters {
		out[i] = c
	}
	return out
}
func (p *ParametersSection) String() string {
	return fmt.Sprintf("ParametersSection{%d parameters}", len(p.Parameters))
}

// ParameterDecl declares one typed parameter.
type ParameterDecl struct {
	pos        Position
	Identifier *Identifier
	BasicType  *BasicType
	Annotation *Annotation
}

func NewParameterDecl(pos Position, id *Identifier, t *BasicType, ann *Annotation) *ParameterDecl {
	return &ParameterDecl{pos: pos, Identifier: id, BasicType: t, Annotation: ann}
}
func (p *ParameterDecl) Pos() Position    { return p.pos }
func (p *ParameterDecl) Type() NodeType   { return NodeParameterDecl }
func (p *ParameterDecl) Children() []Node { return []Node{p.Identifier, p.BasicType, p.Annotation} }
func (p *ParameterDecl) String() string {
	return fmt.Sprintf("ParameterDecl(%s: %s)", p.Identifier.Name, p.BasicType.Name)
}
func (p *ParameterDecl) Name() string { return p.Identifier.Name }

// BasicType names one of the closed set of primitive types.
type BasicType struct {
	pos  Position
	Name BasicTypeName
}

func NewBasicType(pos Position, name BasicTypeName) *BasicType { return &BasicType{pos: pos, Name: name} }
func (b *BasicType) Pos() Position                              { return b.pos }
func (b *BasicType) Type() NodeType                             { return NodeBasicType }
func (b *BasicType) Children() []Node                           { return nil }
func (b *BasicType) String() string                             { return fmt.Sprintf("BasicType(%s)", b.Name) }

// =============================================================================
// Interactions
// =============================================================================

// InteractionSection holds one or more InteractionItem.
type InteractionSection struct {
	pos   Position
	Items []*InteractionItem
}

func NewInteractionSection(pos Position, items []*InteractionItem) *InteractionSection {
	return &InteractionSection{pos: pos, Items: items}
}
func (s *InteractionSection) Pos() Position  { return s.pos }
func (s *InteractionSection) Type() NodeType { return NodeInteractionSection }
func (s *InteractionSection) Children() []Node {
	out := make([]Node, len(s.Items))
	for i, c := range s.Items {
		out[i] = c
	}
	return out
}
func (s *InteractionSection) String() string {
	return fmt.Sprintf("InteractionSection{%d items}", len(s.Items))
}

// InteractionItem wraps exactly one of StandardInteraction or
// ProtocolComposition.
type InteractionItem struct {
	pos         Position
	Standard    *StandardInteraction
	Composition *ProtocolComposition
}

func NewStandardItem(i *StandardInteraction) *InteractionItem {
	return &InteractionItem{pos: i.Pos(), Standard: i}
}
func NewCompositionItem(c *ProtocolComposition) *InteractionItem {
	return &InteractionItem{pos: c.Pos(), Composition: c}
}
func (i *InteractionItem) Pos() Position  { return i.pos }
func (i *InteractionItem) Type() NodeType { return NodeInteractionItem }
func (i *InteractionItem) Children() []Node {
	if i.Standard != nil {
		return []Node{i.Standard}
	}
	return []Node{i.Composition}
}
func (i *InteractionItem) String() string {
	if i.Standard != nil {
		return i.Standard.String()
	}
	return i.Composition.String()
}

// IsComposition reports whether this item is a ProtocolComposition rather
// than a StandardInteraction.
func (i *InteractionItem) IsComposition() bool { return i.Composition != nil }

// StandardInteraction is a single directed message between two roles,
// naming an action and binding zero or more parameter flows.
type StandardInteraction struct {
	pos        Position
	From       *RoleRef
	To         *RoleRef
	Action     *ActionName
	Annotation *Annotation
	Flows      []*ParameterFlow
}

func NewStandardInteraction(pos Position, from, to *RoleRef, action *ActionName, ann *Annotation, flows []*ParameterFlow) *StandardInteraction {
	return &StandardInteraction{pos: pos, From: from, To: to, Action: action, Annotation: ann, Flows: flows}
}
func (s *StandardInteraction) Pos() Position  { return s.pos }
func (s *StandardInteraction) Type() NodeType { return NodeStandardInteraction }
func (s *StandardInteraction) Children() []Node {
	out := []Node{s.From, s.To, s.Action, s.Annotation}
	for _, f := range s.Flows {
		out = append(out, f)
	}
	return out
}
func (s *StandardInteraction) String() string {
	return fmt.Sprintf("%s -> %s: %s[%d flows]", s.From.Name, s.To.Name, s.Action.Name, len(s.Flows))
}

// Name returns the action name identifying this interaction, used as the
// node identity in the flow analyzer's derived graphs.
func (s *StandardInteraction) Name() string { return s.Action.Name }

// ProtocolComposition is a textual inclusion of another protocol at this
// site. The composition parameter list interleaves bare identifiers
// (every one a positional role binding) and directed
// ParameterFlow entries (parameter threading by identical name).
type ProtocolComposition struct {
	pos        Position
	Reference  *ProtocolReference
	RoleBinds  []*Identifier    // positional role-binding identifiers, in source order
	ParamFlows []*ParameterFlow // parameter threads, in source order
	ParamOrder []CompParam      // full interleaving order, for deterministic re-emission
}

// CompParam records, in source order, whether a composition-site entry
// was a bare role-binding identifier or a directed ParameterFlow.
type CompParam struct {
	Bare *Identifier
	Flow *ParameterFlow
}

func NewProtocolComposition(pos Position, ref *ProtocolReference, roleBinds []*Identifier, paramFlows []*ParameterFlow, order []CompParam) *ProtocolComposition {
	return &ProtocolComposition{pos: pos, Reference: ref, RoleBinds: roleBinds, ParamFlows: paramFlows, ParamOrder: order}
}
func (c *ProtocolComposition) Pos() Position  { return c.pos }
func (c *ProtocolComposition) Type() NodeType { return NodeProtocolComposition }
func (c *ProtocolComposition) Children() []Node {
	out := []Node{c.Reference}
	for _, p := range c.ParamOrder {
		if p.Bare != nil {
			out = append(out, p.Bare)
		} else {
			out = append(out, p.Flow)
		}
	}
	return out
}
func (c *ProtocolComposition) String() string {
	return fmt.Sprintf("ProtocolComposition(%s, %d roles)", c.Reference.Identifier.Name, len(c.RoleBinds))
}

// ProtocolReference names the composed protocol.
type ProtocolReference struct {
	pos        Position
	Identifier *Identifier
}

func NewProtocolReference(pos Position, id *Identifier) *ProtocolReference {
	return &ProtocolReference{pos: pos, Identifier: id}
}
func (r *ProtocolReference) Pos() Position    { return r.pos }
func (r *ProtocolReference) Type() NodeType   { return NodeProtocolReference }
func (r *ProtocolReference) Children() []Node { return []Node{r.Identifier} }
func (r *ProtocolReference) String() string   { return fmt.Sprintf("ProtocolReference(%s)", r.Identifier.Name) }

// ParameterFlow binds a parameter identifier with an explicit direction.
type ParameterFlow struct {
	pos        Position
	Direction  Direction
	Identifier *Identifier
}

func NewParameterFlow(pos Position, dir Direction, id *Identifier) *ParameterFlow {
	return &ParameterFlow{pos: pos, Direction: dir, Identifier: id}
}
func (f *ParameterFlow) Pos() Position    { return f.pos }
func (f *ParameterFlow) Type() NodeType   { return NodeParameterFlow }
func (f *ParameterFlow) Children() []Node { return []Node{f.Identifier} }
func (f *ParameterFlow) String() string   { return fmt.Sprintf("%s %s", f.Direction, f.Identifier.Name) }
func (f *ParameterFlow) Name() string     { return f.Identifier.Name }

// RoleRef names a role at an interaction site.
type RoleRef struct {
	pos  Position
	Name string
}

func NewRoleRef(pos Position, name string) *RoleRef { return &RoleRef{pos: pos, Name: name} }
func (r *RoleRef) Pos() Position                    { return r.pos }
func (r *RoleRef) Type() NodeType                   { return NodeRoleRef }
func (r *RoleRef) Children() []Node                 { return nil }
func (r *RoleRef) String() string                   { return fmt.Sprintf("RoleRef(%s)", r.Name) }

// ActionName names the message/action of a StandardInteraction.
type ActionName struct {
	pos  Position
	Name string
}

func NewActionName(pos Position, name string) *ActionName { return &ActionName{pos: pos, Name: name} }
func (a *ActionName) Pos() Position                        { return a.pos }
func (a *ActionName) Type() NodeType                       { return NodeActionName }
func (a *ActionName) Children() []Node                     { return nil }
func (a *ActionName) String() string                       { return fmt.Sprintf("ActionName(%s)", a.Name) }

// Identifier is a bare name reference (used for roles, parameters, and
// protocol references wherever the grammar asks for Ident).
type Identifier struct {
	pos  Position
	Name string
}

func NewIdentifier(pos Position, name string) *Identifier { return &Identifier{pos: pos, Name: name} }
func (i *Identifier) Pos() Position                        { return i.pos }
func (i *Identifier) Type() NodeType                       { return NodeIdentifier }
func (i *Identifier) Children() []Node                     { return nil }
func (i *Identifier) String() string                       { return fmt.Sprintf("Identifier(%s)", i.Name) }

// Walk visits n and every descendant in child order, depth-first,
// calling fn on each node. It is the shared traversal used by the tree
// printer, the JSON emitter, and the composition resolver's substitution
// pass.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
