package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken_String(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{name: "literal", token: NewLiteral('a'), expected: "Literal('a')"},
		{name: "wildcard", token: NewWildcard(), expected: "Wildcard()"},
		{name: "integer", token: NewInteger().Named("age"), expected: "Integer()~age"},
		{name: "optional", token: NewOptional(NewSequence(NewLiteral('x'))), expected: "Optional([Literal('x')])"},
		{name: "empty optional", token: NewOptional(nil), expected: "Optional([])"},
		{
			name:     "choice",
			token:    NewChoice(NewSequence(NewLiteral('a')), NewSequence(NewWildcard())).Named("pick"),
			expected: "Choice([Literal('a')] | [Wildcard()])~pick",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.token.String())
		})
	}
}

func TestSequence_String(t *testing.T) {
	seq := NewSequence(NewWildcard(), NewLiteral(' '), NewLiteral('h'))
	assert.Equal(t, "[Wildcard(), Literal(' '), Literal('h')]", seq.String())
	assert.Equal(t, "[]", (*Sequence)(nil).String())
}

func TestSequence_Template(t *testing.T) {
	seq := NewSequence(
		NewChoice(NewSequence(NewLiteral('a')), NewSequence()).Named("c"),
		NewOptional(NewSequence(NewInteger())),
		NewWildcard(),
	)
	assert.Equal(t, "[a|]~c(INT)*", seq.Template())
	assert.Equal(t, "", (*Sequence)(nil).Template())
}

func TestSequence_CaptureNames(t *testing.T) {
	seq := NewDefaultCompiler(nil).Compile("[[galangal|millet]~name|hi]~greeting *~name (INT~age)")
	assert.Equal(t, []string{"greeting", "name", "age"}, seq.CaptureNames())
	assert.Empty(t, NewSequence(NewLiteral('a')).CaptureNames())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Literal", KindLiteral.String())
	assert.Equal(t, "Wildcard", KindWildcard.String())
	assert.Equal(t, "Integer", KindInteger.String())
	assert.Equal(t, "Optional", KindOptional.String())
	assert.Equal(t, "Choice", KindChoice.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestSequence_Len(t *testing.T) {
	assert.Equal(t, 0, (*Sequence)(nil).Len())
	assert.Equal(t, 2, NewSequence(NewWildcard(), NewInteger()).Len())
}
