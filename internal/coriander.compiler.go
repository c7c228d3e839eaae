package internal

import (
	"go.uber.org/zap"
)

// Compiler turns template strings into token sequences by scanning left to
// right and asking an ordered list of finders to recognize the next token.
// The first finder that reports a match wins; the literal finder is always
// tried last, so compilation never fails.
//
// A Compiler holds no per-call state and is safe for concurrent use.
type Compiler struct {
	finders  []Finder
	fallback Finder
	logger   *zap.Logger
}

// NewCompiler creates a compiler that tries finders in order before the
// literal fallback. A nil or empty finder list compiles everything as literals.
func NewCompiler(finders []Finder, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	list := make([]Finder, 0, len(finders))
	for _, f := range finders {
		if f != nil {
			list = append(list, f)
		}
	}
	logger.Debug(LogMsgCompilerCreated, zap.Int(LogFieldFinders, len(list)))
	return &Compiler{
		finders:  list,
		fallback: LiteralFinder{},
		logger:   logger,
	}
}

// NewDefaultCompiler creates a compiler with the built-in finders
func NewDefaultCompiler(logger *zap.Logger) *Compiler {
	return NewCompiler(DefaultFinders(), logger)
}

// Finders returns a copy of the configured finder list, without the fallback
func (c *Compiler) Finders() []Finder {
	out := make([]Finder, len(c.finders))
	copy(out, c.finders)
	return out
}

// Compile compiles a template string
func (c *Compiler) Compile(template string) *Sequence {
	runes := []rune(template)
	c.logger.Debug(LogMsgCompileStart, zap.Int(LogFieldTemplate, len(runes)))
	seq := c.CompileRunes(runes)
	c.logger.Debug(LogMsgCompileEnd, zap.Int(LogFieldTokens, seq.Len()))
	return seq
}

// CompileRunes compiles a template given as code points. Finders call this to
// compile the contents of groups.
func (c *Compiler) CompileRunes(template []rune) *Sequence {
	tokens := make([]Token, 0, len(template))

	pos := 0
	for pos < len(template) {
		tok, consumed := c.find(template[pos:])
		pos += consumed

		if name, n := scanCaptureName(template[pos:]); n > 0 {
			tok = tok.Named(name)
			pos += n
		}
		tokens = append(tokens, tok)
	}

	return NewSequence(tokens...)
}

// find returns the first recognized token at the start of rest and how many
// runes it consumed. rest is never empty.
func (c *Compiler) find(rest []rune) (Token, int) {
	for _, f := range c.finders {
		tok, consumed, ok := f.Find(rest, c)
		if !ok {
			continue
		}
		if consumed <= 0 {
			c.logger.Debug(LogMsgFinderRejected, zap.String(LogFieldFinder, f.Name()))
			continue
		}
		if consumed > len(rest) {
			consumed = len(rest)
		}
		return tok, consumed
	}

	tok, consumed, _ := c.fallback.Find(rest, c)
	return tok, consumed
}

// scanCaptureName reads a "~name" suffix. It returns the name and the number
// of runes consumed including the marker, or 0 when there is no suffix.
func scanCaptureName(rest []rune) (string, int) {
	if len(rest) < 2 || rest[0] != SymCaptureMark || !isCaptureNameRune(rest[1]) {
		return "", 0
	}
	end := 1
	for end < len(rest) && isCaptureNameRune(rest[end]) {
		end++
	}
	return string(rest[1:end]), end
}

// isCaptureNameRune reports whether r may appear in a capture name: ASCII
// letters and underscore.
func isCaptureNameRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
