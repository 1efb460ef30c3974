package bmpperr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_MessagesNameOffendingIdentifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "parse error",
			err:  &ParseError{Filename: "f.bmpp", Line: 2, Column: 3, Offset: 10, Reason: "unexpected token"},
			want: []string{"f.bmpp", "10", "unexpected token"},
		},
		{
			name: "undeclared parameter",
			err:  &UndeclaredParameter{Protocol: "P", Interaction: "go", Parameter: "x"},
			want: []string{"P", "go", "x"},
		},
		{
			name: "unreachable interaction",
			err:  &UnreachableInteraction{Protocol: "P", Interaction: "go", Parameter: "x"},
			want: []string{"P", "go", "x"},
		},
		{
			name: "multiple producers",
			err:  &MultipleProducers{Protocol: "P", Parameter: "x", Producers: []string{"a", "b"}},
			want: []string{"P", "x", "a", "b"},
		},
		{
			name: "causality violation",
			err:  &CausalityViolation{Protocol: "P", CyclePath: []string{"a", "b", "a"}},
			want: []string{"P", "a -> b -> a"},
		},
		{
			name: "undefined role",
			err:  &UndefinedRole{Protocol: "P", Interaction: "go", Role: "Ghost"},
			want: []string{"P", "go", "Ghost"},
		},
		{
			name: "unknown protocol reference",
			err:  &UnknownProtocolReference{Parent: "P", Referenced: "Q"},
			want: []string{"P", "Q"},
		},
		{
			name: "direct recursion",
			err:  &DirectRecursion{Protocol: "P"},
			want: []string{"P"},
		},
		{
			name: "composition arity mismatch",
			err:  &CompositionArityMismatch{Protocol: "P", Expected: 2, Got: 3},
			want: []string{"P", "2", "3"},
		},
		{
			name: "duplicate protocol name",
			err:  &DuplicateProtocolName{Name: "P"},
			want: []string{"P"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := tt.err.Error()
			for _, substr := range tt.want {
				assert.Contains(t, msg, substr)
			}
		})
	}
}
