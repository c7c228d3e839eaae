package coriander

import (
	"context"
)

// Pattern is a compiled template. It is immutable and safe for concurrent
// use; matching and generation keep their state per call.
type Pattern struct {
	source string
	seq    *Sequence
	engine *Engine
}

func newPattern(source string, seq *Sequence, engine *Engine) *Pattern {
	return &Pattern{
		source: source,
		seq:    seq,
		engine: engine,
	}
}

// Source returns the template string the pattern was compiled from.
func (p *Pattern) Source() string {
	return p.source
}

// Sequence returns the compiled token tree. Callers must not modify it.
func (p *Pattern) Sequence() *Sequence {
	return p.seq
}

// Tokens returns the top-level tokens.
func (p *Pattern) Tokens() []Token {
	return p.seq.Tokens
}

// String renders the token tree, e.g. [Wildcard(), Literal(' ')].
func (p *Pattern) String() string {
	return p.seq.String()
}

// Template renders the pattern back into template syntax.
func (p *Pattern) Template() string {
	return p.seq.Template()
}

// CaptureNames lists the pattern's capture names, depth-first.
func (p *Pattern) CaptureNames() []string {
	return p.seq.CaptureNames()
}

// Match matches the whole message against the pattern.
func (p *Pattern) Match(ctx context.Context, message string) (*MatchResult, error) {
	ok, captured, err := p.engine.matcher.Match(ctx, p.seq, message)
	if err != nil {
		return &MatchResult{Context: map[string]any{}}, NewMatchError(err)
	}
	return &MatchResult{Success: ok, Context: captured}, nil
}

// MatchSequence returns every distinct prefix length of message the pattern
// can consume, ascending, each with the context of the first path found.
func (p *Pattern) MatchSequence(ctx context.Context, message string) ([]Candidate, error) {
	candidates, err := p.engine.matcher.MatchSequence(ctx, p.seq, message)
	if err != nil {
		return nil, NewMatchError(err)
	}
	return candidates, nil
}

// Generate renders a message, taking captured values from data and filling
// the rest randomly.
func (p *Pattern) Generate(data map[string]any) string {
	return p.engine.generator.Generate(p.seq, data)
}
