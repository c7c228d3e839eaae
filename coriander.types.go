package coriander

import (
	"github.com/itsatony/go-coriander/internal"
)

// Token is one compiled grammar unit: a Literal, Wildcard, Integer,
// Optional or Choice, optionally carrying a capture name.
type Token = internal.Token

// Kind identifies the variant of a Token.
type Kind = internal.Kind

// Token kinds
const (
	KindLiteral  = internal.KindLiteral
	KindWildcard = internal.KindWildcard
	KindInteger  = internal.KindInteger
	KindOptional = internal.KindOptional
	KindChoice   = internal.KindChoice
)

// Sequence is an ordered run of tokens matched by concatenation.
type Sequence = internal.Sequence

// Candidate is one way a pattern can consume a prefix of a message.
type Candidate = internal.Candidate

// Compiler is handed to finders so they can compile nested sub-templates.
type Compiler = internal.Compiler

// Finder recognizes one token kind at the start of a template. Custom
// finders extend the grammar; see WithFinders.
type Finder = internal.Finder

// FinderFunc adapts a plain function to the Finder interface.
type FinderFunc = internal.FinderFunc

// RandSource supplies randomness for unbound tokens during generation.
type RandSource = internal.RandSource

// Built-in finders, in their default priority order.
type (
	WildcardFinder = internal.WildcardFinder
	OptionalFinder = internal.OptionalFinder
	ChoiceFinder   = internal.ChoiceFinder
	IntegerFinder  = internal.IntegerFinder
	LiteralFinder  = internal.LiteralFinder
)

// Token constructors for custom finders.
var (
	NewLiteral  = internal.NewLiteral
	NewWildcard = internal.NewWildcard
	NewInteger  = internal.NewInteger
	NewOptional = internal.NewOptional
	NewChoice   = internal.NewChoice
	NewSequence = internal.NewSequence
)

// DefaultFinders returns the built-in finders in priority order:
// wildcard, optional, choice, integer. The literal fallback is implicit.
func DefaultFinders() []Finder {
	return internal.DefaultFinders()
}

// NewSeededRand returns a deterministic, concurrency-safe RandSource.
func NewSeededRand(seed uint64) RandSource {
	return internal.NewSeededRand(seed)
}

// MatchResult is the outcome of matching a message against a pattern.
// On failure Context is empty.
type MatchResult struct {
	Success bool           `json:"success" yaml:"success"`
	Context map[string]any `json:"context" yaml:"context"`
}

// Get returns a captured value.
func (r *MatchResult) Get(name string) (any, bool) {
	if r == nil || r.Context == nil {
		return nil, false
	}
	v, ok := r.Context[name]
	return v, ok
}

// Classification is one registered template that matched a message.
type Classification struct {
	Name    string         `json:"name" yaml:"name"`
	Context map[string]any `json:"context" yaml:"context"`
}

// Built-in finder names.
const (
	FinderNameWildcard = internal.FinderNameWildcard
	FinderNameOptional = internal.FinderNameOptional
	FinderNameChoice   = internal.FinderNameChoice
	FinderNameInteger  = internal.FinderNameInteger
	FinderNameLiteral  = internal.FinderNameLiteral
)
