package internal

// Finder recognizes one token kind at the start of a template.
// Find returns the built token and how many runes of template it consumed,
// or ok=false when the template does not start with this kind.
// Composite finders use the compiler to compile their nested sub-templates.
type Finder interface {
	Name() string
	Find(template []rune, compiler *Compiler) (tok Token, consumed int, ok bool)
}

// FinderFunc adapts a plain function to the Finder interface
type FinderFunc struct {
	FinderName string
	Fn         func(template []rune, compiler *Compiler) (Token, int, bool)
}

// Name returns the finder's name
func (f FinderFunc) Name() string { return f.FinderName }

// Find calls the wrapped function
func (f FinderFunc) Find(template []rune, compiler *Compiler) (Token, int, bool) {
	return f.Fn(template, compiler)
}

// Finder names
const (
	FinderNameWildcard = "wildcard"
	FinderNameOptional = "optional"
	FinderNameChoice   = "choice"
	FinderNameInteger  = "integer"
	FinderNameLiteral  = "literal"
)

// DefaultFinders returns the built-in recognizers in priority order.
// The literal fallback is not part of the list: the compiler always
// applies it last.
func DefaultFinders() []Finder {
	return []Finder{
		WildcardFinder{},
		OptionalFinder{},
		ChoiceFinder{},
		IntegerFinder{},
	}
}

// WildcardFinder recognizes '*'
type WildcardFinder struct{}

// Name returns the finder's name
func (WildcardFinder) Name() string { return FinderNameWildcard }

// Find recognizes a wildcard
func (WildcardFinder) Find(template []rune, _ *Compiler) (Token, int, bool) {
	if len(template) == 0 || template[0] != SymWildcard {
		return Token{}, 0, false
	}
	return NewWildcard(), 1, true
}

// IntegerFinder recognizes the INT keyword
type IntegerFinder struct{}

// Name returns the finder's name
func (IntegerFinder) Name() string { return FinderNameInteger }

// Find recognizes an integer placeholder
func (IntegerFinder) Find(template []rune, _ *Compiler) (Token, int, bool) {
	keyword := []rune(KeywordInteger)
	if len(template) < len(keyword) {
		return Token{}, 0, false
	}
	for i, r := range keyword {
		if template[i] != r {
			return Token{}, 0, false
		}
	}
	return NewInteger(), len(keyword), true
}

// OptionalFinder recognizes a balanced ( ... ) group
type OptionalFinder struct{}

// Name returns the finder's name
func (OptionalFinder) Name() string { return FinderNameOptional }

// Find recognizes an optional group. An unterminated group is not an optional.
func (OptionalFinder) Find(template []rune, compiler *Compiler) (Token, int, bool) {
	if len(template) == 0 || template[0] != SymOptionalOpen {
		return Token{}, 0, false
	}

	depth := 0
	for i, r := range template {
		switch r {
		case SymOptionalOpen:
			depth++
		case SymOptionalEnd:
			depth--
			if depth == 0 {
				body := compiler.CompileRunes(template[1:i])
				return NewOptional(body), i + 1, true
			}
		}
	}
	return Token{}, 0, false
}

// ChoiceFinder recognizes a balanced [ a | b ] group
type ChoiceFinder struct{}

// Name returns the finder's name
func (ChoiceFinder) Name() string { return FinderNameChoice }

// Find recognizes a choice group, splitting branches on '|' at the group's
// own nesting level. An unterminated group is not a choice.
func (ChoiceFinder) Find(template []rune, compiler *Compiler) (Token, int, bool) {
	if len(template) == 0 || template[0] != SymChoiceOpen {
		return Token{}, 0, false
	}

	depth := 0
	start := 1
	var raw [][]rune
	for i, r := range template {
		switch r {
		case SymChoiceOpen:
			depth++
		case SymChoiceSep:
			if depth == 1 {
				raw = append(raw, template[start:i])
				start = i + 1
			}
		case SymChoiceEnd:
			depth--
			if depth == 0 {
				raw = append(raw, template[start:i])
				branches := make([]*Sequence, 0, len(raw))
				for _, branch := range raw {
					branches = append(branches, compiler.CompileRunes(branch))
				}
				return NewChoice(branches...), i + 1, true
			}
		}
	}
	return Token{}, 0, false
}

// LiteralFinder consumes exactly one code point. It never fails on
// non-empty input.
type LiteralFinder struct{}

// Name returns the finder's name
func (LiteralFinder) Name() string { return FinderNameLiteral }

// Find builds a literal for the first code point
func (LiteralFinder) Find(template []rune, _ *Compiler) (Token, int, bool) {
	if len(template) == 0 {
		return Token{}, 0, false
	}
	return NewLiteral(template[0]), 1, true
}
