package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalk_VisitsEveryDescendant(t *testing.T) {
	t.Parallel()

	id := NewIdentifier(Position{}, "p")
	flow := NewParameterFlow(Position{}, DirOut, id)
	from := NewRoleRef(Position{}, "A")
	to := NewRoleRef(Position{}, "B")
	action := NewActionName(Position{}, "go")
	ann := NewAnnotation(Position{}, "desc")
	si := NewStandardInteraction(Position{}, from, to, action, ann, []*ParameterFlow{flow})

	var visited []NodeType
	Walk(si, func(n Node) { visited = append(visited, n.Type()) })

	assert.Equal(t, NodeStandardInteraction, visited[0])
	assert.Contains(t, visited, NodeRoleRef)
	assert.Contains(t, visited, NodeActionName)
	assert.Contains(t, visited, NodeAnnotation)
	assert.Contains(t, visited, NodeParameterFlow)
	assert.Contains(t, visited, NodeIdentifier)
}

func TestNodeType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Protocol", NodeProtocol.String())
	assert.Equal(t, "StandardInteraction", NodeStandardInteraction.String())
	assert.Contains(t, NodeType(999).String(), "Unknown")
}

func TestProtocol_String_SummarisesCounts(t *testing.T) {
	t.Parallel()

	name := NewProtocolName(Position{}, "P")
	roleID := NewIdentifier(Position{}, "A")
	role := NewRoleDecl(Position{}, roleID, NewAnnotation(Position{}, "a"))
	roles := NewRolesSection(Position{}, []*RoleDecl{role})

	paramID := NewIdentifier(Position{}, "x")
	param := NewParameterDecl(Position{}, paramID, NewBasicType(Position{}, TypeString), NewAnnotation(Position{}, "x"))
	params := NewParametersSection(Position{}, []*ParameterDecl{param})

	from := NewRoleRef(Position{}, "A")
	to := NewRoleRef(Position{}, "A")
	si := NewStandardInteraction(Position{}, from, to, NewActionName(Position{}, "go"), NewAnnotation(Position{}, "g"), nil)
	interactions := NewInteractionSection(Position{}, []*InteractionItem{NewStandardItem(si)})

	p := NewProtocol(Position{}, name, NewAnnotation(Position{}, "d"), roles, params, interactions)

	assert.Equal(t, "Protocol{Name: P, Roles: 1, Parameters: 1, Interactions: 1}", p.String())
}

func TestPosition_String(t *testing.T) {
	t.Parallel()

	pos := Position{Filename: "f.bmpp", Line: 3, Column: 5, Offset: 12}
	assert.Equal(t, "f.bmpp:3:5", pos.String())
	assert.True(t, pos.IsValid())
	assert.False(t, Position{}.IsValid())
}
