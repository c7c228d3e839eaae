package coriander

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSimilarNames(t *testing.T) {
	candidates := []string{"greeting", "farewell", "order_status", "age"}

	tests := []struct {
		name     string
		target   string
		max      int
		expected []string
	}{
		{name: "typo", target: "greting", max: 3, expected: []string{"greeting"}},
		{name: "subsequence", target: "order", max: 3, expected: []string{"order_status"}},
		{name: "case insensitive", target: "AGE", max: 3, expected: []string{"age"}},
		{name: "no match", target: "zzzzzzzz", max: 3, expected: []string{}},
		{name: "zero max", target: "age", max: 0, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindSimilarNames(tt.target, candidates, tt.max))
		})
	}
}

func TestFindSimilarNames_OrderAndLimit(t *testing.T) {
	candidates := []string{"tag", "tab", "taxi", "ta"}

	got := FindSimilarNames("ta", candidates, 2)
	assert.Equal(t, []string{"ta", "tab"}, got)
}

func TestFindSimilarNames_NoCandidates(t *testing.T) {
	assert.Nil(t, FindSimilarNames("x", nil, 3))
}
