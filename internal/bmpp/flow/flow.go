// Package flow implements the BSPL static analyzer: it builds the
// per-protocol parameter-flow graph and runs the collection, reachability,
// safety, causality, and completeness/enactability passes over it.
// The analyzer expects a composition-free protocol (see
// internal/bmpp/registry) -- it reasons only about StandardInteraction
// nodes.
package flow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bargom/codeai/internal/bmpp/ast"
	"github.com/bargom/codeai/internal/bmpp/bmpperr"
)

// preProtocolParameters is the fixed, case-insensitive whitelist of
// identifiers an interaction may consume without any producer in the
// protocol itself.
var preProtocolParameters = map[string]bool{
	"ID":         true,
	"TIMESTAMP":  true,
	"NONCE":      true,
	"SESSION_ID": true,
}

func isPreProtocolParameter(name string) bool {
	return preProtocolParameters[strings.ToUpper(name)]
}

// ParameterInfo is the derived per-parameter record materialised during
// analysis.
type ParameterInfo struct {
	Name      string
	Type      ast.BasicTypeName
	Producers map[string]bool // action names
	Consumers map[string]bool // action names
}

// InteractionInfo is the derived per-interaction record materialised
// during analysis.
type InteractionInfo struct {
	Name  string
	From  string
	To    string
	Flows []*ast.ParameterFlow
}

// Result carries the non-fatal findings of a successful analysis.
type Result struct {
	Warnings []bmpperr.Warning
}

// Analyze runs all five passes against proto and returns the first hard
// error encountered, or a Result carrying accumulated warnings.
func Analyze(proto *ast.Protocol) (*Result, error) {
	protoName := proto.Name.Name

	declaredParameters := make(map[string]bool, len(proto.Parameters.Parameters))
	parameterInfo := make(map[string]*ParameterInfo, len(proto.Parameters.Parameters))
	for _, pd := range proto.Parameters.Parameters {
		if declaredParameters[pd.Name()] {
			return nil, &bmpperr.ParseError{Filename: protoName, Reason: fmt.Sprintf("duplicate parameter identifier %q", pd.Name())}
		}
		declaredParameters[pd.Name()] = true
		parameterInfo[pd.Name()] = &ParameterInfo{
			Name:      pd.Name(),
			Type:      pd.BasicType.Name,
			Producers: make(map[string]bool),
			Consumers: make(map[string]bool),
		}
	}

	declaredRoles := make(map[string]bool, len(proto.Roles.Roles))
	for _, rd := range proto.Roles.Roles {
		if declaredRoles[rd.Name()] {
			return nil, &bmpperr.ParseError{Filename: protoName, Reason: fmt.Sprintf("duplicate role identifier %q", rd.Name())}
		}
		declaredRoles[rd.Name()] = true
	}

	// Collection pass
	var interactions []*InteractionInfo
	for _, item := range proto.Interactions.Items {
		if item.IsComposition() {
			continue // already expanded by the composition resolver
		}
		si := item.Standard
		ii := &InteractionInfo{Name: si.Name(), From: si.From.Name, To: si.To.Name, Flows: si.Flows}
		for _, flow := range si.Flows {
			if !declaredParameters[flow.Name()] {
				return nil, &bmpperr.UndeclaredParameter{Protocol: protoName, Interaction: si.Name(), Parameter: flow.Name()}
			}
			pi := parameterInfo[flow.Name()]
			if flow.Direction == ast.DirOut {
				pi.Producers[si.Name()] = true
			} else {
				pi.Consumers[si.Name()] = true
			}
		}
		interactions = append(interactions, ii)
	}

	// Reachability pass
	for _, ii := range interactions {
		for _, flow := range ii.Flows {
			if flow.Direction != ast.DirIn {
				continue
			}
			pi := parameterInfo[flow.Name()]
			if len(pi.Producers) == 0 && !isPreProtocolParameter(flow.Name()) {
				return nil, &bmpperr.UnreachableInteraction{Protocol: protoName, Interaction: ii.Name, Parameter: flow.Name()}
			}
		}
	}

	// Safety pass
	interactionByName := make(map[string]*InteractionInfo, len(interactions))
	for _, ii := range interactions {
		interactionByName[ii.Name] = ii
	}
	for _, pi := range parameterInfo {
		if len(pi.Producers) <= 1 {
			continue
		}
		producers := sortedKeys(pi.Producers)
		fromRole := interactionByName[producers[0]].From
		allSame := true
		for _, p := range producers[1:] {
			if interactionByName[p].From != fromRole {
				allSame = false
				break
			}
		}
		if !allSame {
			return nil, &bmpperr.MultipleProducers{Protocol: protoName, Parameter: pi.Name, Producers: producers}
		}
	}

	// Causality pass
	edges := make(map[string]map[string]bool)
	nodeSet := make(map[string]bool, len(interactions))
	for _, ii := range interactions {
		nodeSet[ii.Name] = true
		edges[ii.Name] = make(map[string]bool)
	}
	for _, pi := range parameterInfo {
		if len(pi.Producers) == 0 || len(pi.Consumers) == 0 {
			continue
		}
		parallelBroadcast := isParallelBroadcast(pi, interactionByName)
		for a := range pi.Producers {
			for b := range pi.Consumers {
				if a == b {
					continue
				}
				if parallelBroadcast && isExcludedParallelEdge(interactionByName[a], interactionByName[b]) {
					continue
				}
				edges[a][b] = true
			}
		}
	}
	if cyclePath, ok := findCycle(nodeSet, edges); ok {
		return nil, &bmpperr.CausalityViolation{Protocol: protoName, CyclePath: cyclePath}
	}

	// Completeness and enactability passes
	for _, ii := range interactions {
		if !declaredRoles[ii.From] {
			return nil, &bmpperr.UndefinedRole{Protocol: protoName, Interaction: ii.Name, Role: ii.From}
		}
		if !declaredRoles[ii.To] {
			return nil, &bmpperr.UndefinedRole{Protocol: protoName, Interaction: ii.Name, Role: ii.To}
		}
	}

	var warnings []bmpperr.Warning
	for _, name := range sortedKeys(declaredParameters) {
		pi := parameterInfo[name]
		switch {
		case len(pi.Producers) == 0 && len(pi.Consumers) == 0:
			warnings = append(warnings, bmpperr.Warning{Protocol: protoName, Kind: "orphaned", Detail: name})
		case len(pi.Producers) > 0 && len(pi.Consumers) == 0:
			warnings = append(warnings, bmpperr.Warning{Protocol: protoName, Kind: "dead-end", Detail: name})
		}
	}

	executable := fixpointExecutable(interactions, parameterInfo)
	for _, ii := range interactions {
		if !executable[ii.Name] {
			warnings = append(warnings, bmpperr.Warning{Protocol: protoName, Kind: "unreachable", Detail: ii.Name})
		}
	}

	return &Result{Warnings: warnings}, nil
}

// isParallelBroadcast reports whether every producer of pi shares the
// same from_role -- the safety pass's acceptance condition, re-derived
// here because causality exclusion only applies to accepted broadcasts.
func isParallelBroadcast(pi *ParameterInfo, byName map[string]*InteractionInfo) bool {
	if len(pi.Producers) <= 1 {
		return false
	}
	producers := sortedKeys(pi.Producers)
	fromRole := byName[producers[0]].From
	for _, p := range producers[1:] {
		if byName[p].From != fromRole {
			return false
		}
	}
	return true
}

// isExcludedParallelEdge reports whether the producer->consumer edge
// between a and b is part of an accepted parallel-branch relationship:
// both interactions share a from_role but target different to_roles, so
// they represent concurrent branches rather than a real precedence
// requirement.
func isExcludedParallelEdge(a, b *InteractionInfo) bool {
	return a.From == b.From && a.To != b.To
}

// fixpointExecutable computes the set of interactions reachable given
// that pre-protocol parameters are available from the start. The
// executable set only grows, so the loop is guaranteed to terminate.
func fixpointExecutable(interactions []*InteractionInfo, parameterInfo map[string]*ParameterInfo) map[string]bool {
	executable := make(map[string]bool, len(interactions))

	ready := func(ii *InteractionInfo) bool {
		for _, flow := range ii.Flows {
			if flow.Direction != ast.DirIn {
				continue
			}
			if isPreProtocolParameter(flow.Name()) {
				continue
			}
			pi := parameterInfo[flow.Name()]
			hasExecutableProducer := false
			for producer := range pi.Producers {
				if executable[producer] {
					hasExecutableProducer = true
					break
				}
			}
			if !hasExecutableProducer {
				return false
			}
		}
		return true
	}

	for {
		changed := false
		for _, ii := range interactions {
			if executable[ii.Name] {
				continue
			}
			if ready(ii) {
				executable[ii.Name] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return executable
}

// findCycle runs Kahn's algorithm over nodes/edges; if any node is never
// emitted, a cycle exists and an iterative DFS with an explicit path
// stack recovers one concrete cycle for the error message.
func findCycle(nodes map[string]bool, edges map[string]map[string]bool) ([]string, bool) {
	inDegree := make(map[string]int, len(nodes))
	for n := range nodes {
		inDegree[n] = 0
	}
	for _, outs := range edges {
		for to := range outs {
			inDegree[to]++
		}
	}

	var queue []string
	for _, n := range sortedKeys(nodes) {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	emitted := make(map[string]bool, len(nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		emitted[n] = true
		for _, to := range sortedKeys(edges[n]) {
			inDegree[to]--
			if inDegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(emitted) == len(nodes) {
		return nil, false
	}
	return dfsFindCycle(nodes, edges, emitted), true
}

// dfsFindCycle performs an iterative depth-first search with an explicit
// path stack over the nodes not resolved by Kahn's algorithm, returning
// the first back-edge cycle it finds.
func dfsFindCycle(nodes map[string]bool, edges map[string]map[string]bool, emitted map[string]bool) []string {
	type frame struct {
		node     string
		children []string
		idx      int
	}

	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	for _, start := range sortedKeys(nodes) {
		if emitted[start] || visited[start] {
			continue
		}
		var stack []frame
		stack = append(stack, frame{node: start, children: sortedKeys(edges[start])})
		visiting[start] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.idx >= len(top.children) {
				visiting[top.node] = false
				visited[top.node] = true
				stack = stack[:len(stack)-1]
				continue
			}
			child := top.children[top.idx]
			top.idx++
			if visiting[child] {
				path := make([]string, 0, len(stack)+1)
				found := false
				for _, f := range stack {
					if f.node == child {
						found = true
					}
					if found {
						path = append(path, f.node)
					}
				}
				path = append(path, child)
				return path
			}
			if !visited[child] {
				visiting[child] = true
				stack = append(stack, frame{node: child, children: sortedKeys(edges[child])})
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

