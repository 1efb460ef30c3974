// Package bmpperr defines the closed taxonomy of errors the BMPP analyzer
// can return. Every exported type implements error; callers use
// errors.As to recover the structured fields for a specific kind.
package bmpperr

import (
	"fmt"
	"strings"
)

// ParseError reports a grammar violation at a byte offset in the source.
type ParseError struct {
	Filename string
	Offset   int
	Line     int
	Column   int
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: parse error at offset %d: %s", e.Filename, e.Line, e.Column, e.Offset, e.Reason)
}

// UndeclaredParameter reports a parameter flow referencing an identifier
// absent from the protocol's ParametersSection.
type UndeclaredParameter struct {
	Protocol    string
	Interaction string
	Parameter   string
}

func (e *UndeclaredParameter) Error() string {
	return fmt.Sprintf("protocol %q: interaction %q references undeclared parameter %q", e.Protocol, e.Interaction, e.Parameter)
}

// UnreachableInteraction reports an interaction consuming a parameter that
// has no producer and is not a pre-protocol parameter.
type UnreachableInteraction struct {
	Protocol    string
	Interaction string
	Parameter   string
}

func (e *UnreachableInteraction) Error() string {
	return fmt.Sprintf("protocol %q: interaction %q is unreachable: parameter %q has no producer", e.Protocol, e.Interaction, e.Parameter)
}

// MultipleProducers reports a parameter with more than one producer that
// is not an accepted parallel broadcast.
type MultipleProducers struct {
	Protocol  string
	Parameter string
	Producers []string
}

func (e *MultipleProducers) Error() string {
	return fmt.Sprintf("protocol %q: parameter %q has multiple producers from distinct senders: %s",
		e.Protocol, e.Parameter, strings.Join(e.Producers, ", "))
}

// CausalityViolation reports a cycle in the precedence graph.
type CausalityViolation struct {
	Protocol  string
	CyclePath []string
}

func (e *CausalityViolation) Error() string {
	return fmt.Sprintf("protocol %q: causality violation, cycle: %s", e.Protocol, strings.Join(e.CyclePath, " -> "))
}

// UndefinedRole reports an interaction naming a role absent from the
// protocol's RolesSection.
type UndefinedRole struct {
	Protocol    string
	Interaction string
	Role        string
}

func (e *UndefinedRole) Error() string {
	return fmt.Sprintf("protocol %q: interaction %q references undefined role %q", e.Protocol, e.Interaction, e.Role)
}

// UnknownProtocolReference reports a composition naming a protocol absent
// from the registry.
type UnknownProtocolReference struct {
	Parent     string
	Referenced string
}

func (e *UnknownProtocolReference) Error() string {
	return fmt.Sprintf("protocol %q: composition references unknown protocol %q", e.Parent, e.Referenced)
}

// DirectRecursion reports a composition inside protocol P that names P.
type DirectRecursion struct {
	Protocol string
}

func (e *DirectRecursion) Error() string {
	return fmt.Sprintf("protocol %q: composes itself directly", e.Protocol)
}

// IndirectRecursion reports a composition cycle discovered through more
// than one level of expansion (P composes Q composes P).
type IndirectRecursion struct {
	Cycle []string
}

func (e *IndirectRecursion) Error() string {
	return fmt.Sprintf("composition cycle: %s", strings.Join(e.Cycle, " -> "))
}

// CompositionArityMismatch reports a composition site whose role-binding
// count disagrees with the referenced protocol's declared role count.
type CompositionArityMismatch struct {
	Protocol string
	Expected int
	Got      int
}

func (e *CompositionArityMismatch) Error() string {
	return fmt.Sprintf("protocol %q: composition arity mismatch: expected %d roles, got %d", e.Protocol, e.Expected, e.Got)
}

// DuplicateProtocolName reports two top-level protocols sharing a name.
type DuplicateProtocolName struct {
	Name string
}

func (e *DuplicateProtocolName) Error() string {
	return fmt.Sprintf("duplicate protocol name %q", e.Name)
}

// CompositionParameterUndeclared reports a composition site naming a
// parameter the referenced protocol never declares.
type CompositionParameterUndeclared struct {
	Protocol  string
	Parameter string
}

func (e *CompositionParameterUndeclared) Error() string {
	return fmt.Sprintf("protocol %q: composition references undeclared parameter %q", e.Protocol, e.Parameter)
}

// Warning is a non-fatal finding surfaced after a successful analysis.
type Warning struct {
	Protocol string
	Kind     string // "dead-end", "orphaned", "unreachable"
	Detail   string
}

func (w Warning) String() string {
	return fmt.Sprintf("protocol %q: %s: %s", w.Protocol, w.Kind, w.Detail)
}
