package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bargom/codeai/internal/bmpp/bmpperr"
	"github.com/bargom/codeai/internal/bmpp/parser"
)

func TestRegister_DuplicateProtocolName(t *testing.T) {
	t.Parallel()

	src := `P <Protocol>("one") {
  roles A <Agent>("a"), B <Agent>("b")
  parameters x <String>("x")
  A -> B: go <Action>("g") [out x]
}
P <Protocol>("two") {
  roles A <Agent>("a"), B <Agent>("b")
  parameters x <String>("x")
  A -> B: go <Action>("g") [out x]
}`
	program, err := parser.ParseString("t.bmpp", src)
	require.NoError(t, err)

	_, err = Register(program)
	require.Error(t, err)
	var dup *bmpperr.DuplicateProtocolName
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "P", dup.Name)
}

func TestResolve_ExpandsCompositionWithRoleAndParamBinding(t *testing.T) {
	t.Parallel()

	src := `Child <Protocol>("child") {
  roles X <Agent>("x"), Y <Agent>("y")
  parameters v <String>("v")
  X -> Y: give <Action>("g") [out v]
}
Parent <Protocol>("parent") {
  roles A <Agent>("a"), B <Agent>("b")
  parameters v <String>("v")
  Child <Enactment> [A, B, out v]
}`
	program, err := parser.ParseString("t.bmpp", src)
	require.NoError(t, err)

	reg, err := Register(program)
	require.NoError(t, err)

	resolved, err := reg.Resolve("Parent")
	require.NoError(t, err)
	require.Len(t, resolved.Interactions.Items, 1)

	item := resolved.Interactions.Items[0]
	require.False(t, item.IsComposition())
	assert.Equal(t, "A", item.Standard.From.Name)
	assert.Equal(t, "B", item.Standard.To.Name)
	assert.Equal(t, "give", item.Standard.Action.Name)
}

// TestResolve_CompositionArityMismatch implements scenario S6.
func TestResolve_CompositionArityMismatch(t *testing.T) {
	t.Parallel()

	src := `Child <Protocol>("child") {
  roles X <Agent>("x"), Y <Agent>("y")
  parameters v <String>("v")
  X -> Y: give <Action>("g") [out v]
}
Parent <Protocol>("parent") {
  roles A <Agent>("a"), B <Agent>("b"), C <Agent>("c")
  parameters v <String>("v")
  Child <Enactment> [A, B, C, out v]
}`
	program, err := parser.ParseString("t.bmpp", src)
	require.NoError(t, err)

	reg, err := Register(program)
	require.NoError(t, err)

	_, err = reg.Resolve("Parent")
	require.Error(t, err)
	var mismatch *bmpperr.CompositionArityMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 3, mismatch.Got)
}

func TestResolve_UnknownProtocolReference(t *testing.T) {
	t.Parallel()

	src := `Parent <Protocol>("parent") {
  roles A <Agent>("a"), B <Agent>("b")
  parameters v <String>("v")
  Missing <Enactment> [A, B]
}`
	program, err := parser.ParseString("t.bmpp", src)
	require.NoError(t, err)

	reg, err := Register(program)
	require.NoError(t, err)

	_, err = reg.Resolve("Parent")
	require.Error(t, err)
	var unknown *bmpperr.UnknownProtocolReference
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Missing", unknown.Referenced)
}

func TestResolve_DirectRecursionRejected(t *testing.T) {
	t.Parallel()

	src := `P <Protocol>("self") {
  roles A <Agent>("a"), B <Agent>("b")
  parameters v <String>("v")
  P <Enactment> [A, B]
}`
	program, err := parser.ParseString("t.bmpp", src)
	require.NoError(t, err)

	reg, err := Register(program)
	require.NoError(t, err)

	_, err = reg.Resolve("P")
	require.Error(t, err)
	var rec *bmpperr.DirectRecursion
	require.ErrorAs(t, err, &rec)
}

func TestResolve_IndirectRecursionRejected(t *testing.T) {
	t.Parallel()

	src := `P <Protocol>("p") {
  roles A <Agent>("a"), B <Agent>("b")
  parameters v <String>("v")
  Q <Enactment> [A, B]
}
Q <Protocol>("q") {
  roles A <Agent>("a"), B <Agent>("b")
  parameters v <String>("v")
  P <Enactment> [A, B]
}`
	program, err := parser.ParseString("t.bmpp", src)
	require.NoError(t, err)

	reg, err := Register(program)
	require.NoError(t, err)

	_, err = reg.Resolve("P")
	require.Error(t, err)
	var indirect *bmpperr.IndirectRecursion
	require.ErrorAs(t, err, &indirect)
}

func TestResolve_CompositionParameterUndeclared(t *testing.T) {
	t.Parallel()

	src := `Child <Protocol>("child") {
  roles X <Agent>("x"), Y <Agent>("y")
  parameters v <String>("v")
  X -> Y: give <Action>("g") [out v]
}
Parent <Protocol>("parent") {
  roles A <Agent>("a"), B <Agent>("b")
  parameters w <String>("w")
  Child <Enactment> [A, B, out w]
}`
	program, err := parser.ParseString("t.bmpp", src)
	require.NoError(t, err)

	reg, err := Register(program)
	require.NoError(t, err)

	_, err = reg.Resolve("Parent")
	require.Error(t, err)
	var undeclared *bmpperr.CompositionParameterUndeclared
	require.ErrorAs(t, err, &undeclared)
	assert.Equal(t, "w", undeclared.Parameter)
}
