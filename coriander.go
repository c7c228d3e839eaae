// Package coriander implements a small pattern language that works both as a
// matcher and as a generator. The same template recognizes messages, pulling
// out named captures, and synthesizes messages, steered by captured values or
// filled in randomly.
//
//	engine := coriander.MustNew()
//	result, _ := engine.Match(ctx, "[hello|hi] my name is *~name", "hi my name is Docker")
//	// result.Success: true, result.Context: {"name": "Docker"}
//
//	msg := engine.Generate("INT~age years old", map[string]any{"age": 25})
//	// msg: "25 years old"
//
// # Template Syntax
//
//	*          any non-empty run of characters
//	INT        a run of decimal digits, captured as an int
//	(...)      optional group
//	[a|b|c]    choice between branches
//	~name      attaches a capture name to the preceding token
//
// Every other character matches itself. The symbols are reserved and cannot
// be escaped; an unterminated group falls back to a literal delimiter.
//
// # Captures
//
// Matching binds each named token that took part in the successful path:
// wildcards and choices bind the text they consumed, INT binds an int,
// optional groups bind true or false depending on whether their body was
// used. Generation reads the same names back, so a match context round-trips:
//
//	result, _ := engine.Match(ctx, tmpl, msg)
//	engine.Generate(tmpl, result.Context) == msg
//
// # Extending the Grammar
//
// Custom finders recognize new constructs and take priority over the
// built-in ones:
//
//	hash := coriander.FinderFunc{
//	    FinderName: "hash",
//	    Fn: func(tmpl []rune, _ *coriander.Compiler) (coriander.Token, int, bool) {
//	        if tmpl[0] != '#' {
//	            return coriander.Token{}, 0, false
//	        }
//	        return coriander.NewInteger(), 1, true
//	    },
//	}
//	engine := coriander.MustNew(coriander.WithFinders(hash))
//
// # Configuration
//
//	engine, _ := coriander.New(
//	    coriander.WithSeed(42),
//	    coriander.WithMatchBudget(1_000_000),
//	    coriander.WithLogger(logger),
//	)
package coriander

import (
	"context"
	"sync"
)

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the shared engine used by the package-level helpers.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = MustNew()
	})
	return defaultEngine
}

// Compile compiles a template with the default finders.
func Compile(template string) *Pattern {
	return Default().Compile(template)
}

// Match matches message against template using the default engine.
// A non-matching message is not an error.
func Match(template, message string) *MatchResult {
	result, err := Default().Match(context.Background(), template, message)
	if err != nil {
		return &MatchResult{Context: map[string]any{}}
	}
	return result
}

// Generate renders a message from template using the default engine.
func Generate(template string, data map[string]any) string {
	return Default().Generate(template, data)
}
