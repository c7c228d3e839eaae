package coriander

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_Introspection(t *testing.T) {
	engine := MustNew()

	tests := []struct {
		template string
		tree     string
		names    []string
	}{
		{template: "he*o", tree: "[Literal('h'), Literal('e'), Wildcard(), Literal('o')]", names: nil},
		{template: "INT~age", tree: "[Integer()~age]", names: []string{"age"}},
		{template: "(a)~opt", tree: "[Optional([Literal('a')])~opt]", names: []string{"opt"}},
		{template: "[a|*~x]~c", tree: "[Choice([Literal('a')] | [Wildcard()~x])~c]", names: []string{"c", "x"}},
		{template: "", tree: "[]", names: nil},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			p := engine.Compile(tt.template)
			assert.Equal(t, tt.template, p.Source())
			assert.Equal(t, tt.tree, p.String())
			assert.Equal(t, tt.template, p.Template())
			assert.Equal(t, tt.names, p.CaptureNames())
		})
	}
}

func TestPattern_Tokens(t *testing.T) {
	p := MustNew().Compile("a*INT")

	tokens := p.Tokens()
	require.Len(t, tokens, 3)
	assert.Equal(t, KindLiteral, tokens[0].Kind)
	assert.Equal(t, KindWildcard, tokens[1].Kind)
	assert.Equal(t, KindInteger, tokens[2].Kind)
}

func TestPattern_MatchSequence(t *testing.T) {
	p := MustNew().Compile("(a)~x*")

	candidates, err := p.MatchSequence(context.Background(), "ab")
	require.NoError(t, err)

	ends := make([]int, 0, len(candidates))
	for _, c := range candidates {
		ends = append(ends, c.End)
	}
	assert.Equal(t, []int{1, 2}, ends)
	assert.Equal(t, map[string]any{"x": false}, candidates[0].Context)
}

func TestPattern_MatchSequence_Aborted(t *testing.T) {
	p := MustNew(WithMatchBudget(5)).Compile("*a*a*a*b")

	candidates, err := p.MatchSequence(context.Background(), strings.Repeat("a", 100))
	require.Error(t, err)
	assert.Nil(t, candidates)
}

func TestPattern_Generate(t *testing.T) {
	p := MustNew(WithSeed(1)).Compile("INT~n *~w")
	assert.Equal(t, "7 seven", p.Generate(map[string]any{"n": 7, "w": "seven"}))
}
