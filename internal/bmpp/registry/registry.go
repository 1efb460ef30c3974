// Package registry implements the BMPP composition resolver: it registers
// top-level protocols by name and expands ProtocolComposition sites into
// the referenced protocol's own interactions, with role and parameter
// bindings applied. The registry is read-only once built; expansion works
// on freshly constructed nodes, never mutating a registered protocol.
package registry

import (
	"github.com/bargom/codeai/internal/bmpp/ast"
	"github.com/bargom/codeai/internal/bmpp/bmpperr"
)

// Registry maps protocol name to its declaration.
type Registry struct {
	protocols map[string]*ast.Protocol
	order     []string
}

// New builds an empty registry.
func New() *Registry {
	return &Registry{protocols: make(map[string]*ast.Protocol)}
}

// Register indexes every top-level protocol in program by name. A
// duplicate name is a hard error; registration stops at the first one.
func Register(program *ast.Program) (*Registry, error) {
	reg := New()
	for _, p := range program.Protocols {
		name := p.Name.Name
		if _, exists := reg.protocols[name]; exists {
			return nil, &bmpperr.DuplicateProtocolName{Name: name}
		}
		reg.protocols[name] = p
		reg.order = append(reg.order, name)
	}
	return reg, nil
}

// Get returns the protocol registered under name.
func (r *Registry) Get(name string) (*ast.Protocol, bool) {
	p, ok := r.protocols[name]
	return p, ok
}

// Names returns all registered protocol names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.protocols[name]
	return ok
}

// ResolveAll expands every registered protocol's compositions and returns
// a new Program containing only flattened, composition-free protocols.
func (r *Registry) ResolveAll() (*ast.Program, error) {
	resolved := make([]*ast.Protocol, 0, len(r.order))
	for _, name := range r.order {
		p, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, p)
	}
	return ast.NewProgram(ast.Position{}, resolved), nil
}

// Resolve expands composition references inside the named protocol and
// returns a new Protocol whose InteractionSection contains only
// StandardInteraction items. Role names are rewritten according to each
// composition site's positional role bindings; parameter names are
// threaded by identity, since the grammar names composition parameters
// only by the referenced protocol's own declared parameter names.
func (r *Registry) Resolve(name string) (*ast.Protocol, error) {
	proto, ok := r.protocols[name]
	if !ok {
		return nil, &bmpperr.UnknownProtocolReference{Parent: "", Referenced: name}
	}
	items, err := r.resolveItems(proto.Interactions.Items, nil, []string{name})
	if err != nil {
		return nil, err
	}
	interactionItems := make([]*ast.InteractionItem, len(items))
	for i, si := range items {
		interactionItems[i] = ast.NewStandardItem(si)
	}
	newInteractions := ast.NewInteractionSection(proto.Interactions.Pos(), interactionItems)
	return ast.NewProtocol(proto.Pos(), proto.Name, proto.Annotation, proto.Roles, proto.Parameters, newInteractions), nil
}

// resolveItems walks items, renaming roles per roleMap (old name in the
// current scope -> new name to substitute), and recursively expanding any
// ProtocolComposition it encounters. visited is the stack of protocol
// names currently being expanded, used to reject both direct
// self-reference and indirect composition cycles.
func (r *Registry) resolveItems(items []*ast.InteractionItem, roleMap map[string]string, visited []string) ([]*ast.StandardInteraction, error) {
	var out []*ast.StandardInteraction
	current := visited[len(visited)-1]

	for _, item := range items {
		if !item.IsComposition() {
			out = append(out, renameInteraction(item.Standard, roleMap))
			continue
		}

		comp := item.Composition
		childName := comp.Reference.Identifier.Name

		if contains(visited, childName) {
			if childName == current {
				return nil, &bmpperr.DirectRecursion{Protocol: childName}
			}
			return nil, &bmpperr.IndirectRecursion{Cycle: append(append([]string{}, visited...), childName)}
		}

		referenced, ok := r.protocols[childName]
		if !ok {
			return nil, &bmpperr.UnknownProtocolReference{Parent: current, Referenced: childName}
		}

		if len(comp.RoleBinds) != len(referenced.Roles.Roles) {
			return nil, &bmpperr.CompositionArityMismatch{
				Protocol: current,
				Expected: len(referenced.Roles.Roles),
				Got:      len(comp.RoleBinds),
			}
		}

		declaredParams := make(map[string]bool, len(referenced.Parameters.Parameters))
		for _, pd := range referenced.Parameters.Parameters {
			declaredParams[pd.Name()] = true
		}
		for _, flow := range comp.ParamFlows {
			if !declaredParams[flow.Name()] {
				return nil, &bmpperr.CompositionParameterUndeclared{Protocol: current, Parameter: flow.Name()}
			}
		}

		childRoleMap := make(map[string]string, len(referenced.Roles.Roles))
		for i, decl := range referenced.Roles.Roles {
			bindName := comp.RoleBinds[i].Name
			if resolved, ok := roleMap[bindName]; ok {
				bindName = resolved
			}
			childRoleMap[decl.Name()] = bindName
		}

		childVisited := append(append([]string{}, visited...), childName)
		expanded, err := r.resolveItems(referenced.Interactions.Items, childRoleMap, childVisited)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func renameInteraction(si *ast.StandardInteraction, roleMap map[string]string) *ast.StandardInteraction {
	from := si.From.Name
	if mapped, ok := roleMap[from]; ok {
		from = mapped
	}
	to := si.To.Name
	if mapped, ok := roleMap[to]; ok {
		to = mapped
	}
	if from == si.From.Name && to == si.To.Name {
		return si
	}
	return ast.NewStandardInteraction(
		si.Pos(),
		ast.NewRoleRef(si.From.Pos(), from),
		ast.NewRoleRef(si.To.Pos(), to),
		si.Action,
		si.Annotation,
		si.Flows,
	)
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
