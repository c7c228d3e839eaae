package internal

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a Token.
type Kind int

const (
	// KindLiteral matches exactly one fixed code point.
	KindLiteral Kind = iota
	// KindWildcard matches any non-empty prefix.
	KindWildcard
	// KindInteger matches the maximal leading run of decimal digits.
	KindInteger
	// KindOptional matches the empty prefix or anything its body matches.
	KindOptional
	// KindChoice matches anything any one of its branches matches.
	KindChoice
)

// String returns the variant name
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindWildcard:
		return "Wildcard"
	case KindInteger:
		return "Integer"
	case KindOptional:
		return "Optional"
	case KindChoice:
		return "Choice"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one compiled grammar unit. Which fields are meaningful depends on
// Kind: Char for literals, Body for optionals, Branches for choices.
// Tokens are immutable once built; composites own their sub-sequences.
type Token struct {
	Kind     Kind
	Char     rune
	Body     *Sequence
	Branches []*Sequence
	Name     string // capture name, empty when absent
}

// Sequence is an ordered run of tokens matched by concatenation.
// A compiled template is a Sequence. The pointer doubles as the identity
// used by the matcher's memo table, so sequences must not be copied by value
// after compilation.
type Sequence struct {
	Tokens []Token
}

// NewSequence wraps tokens in a Sequence
func NewSequence(tokens ...Token) *Sequence {
	return &Sequence{Tokens: tokens}
}

// NewLiteral creates a Literal token
func NewLiteral(ch rune) Token {
	return Token{Kind: KindLiteral, Char: ch}
}

// NewWildcard creates a Wildcard token
func NewWildcard() Token {
	return Token{Kind: KindWildcard}
}

// NewInteger creates an Integer token
func NewInteger() Token {
	return Token{Kind: KindInteger}
}

// NewOptional creates an Optional token owning body
func NewOptional(body *Sequence) Token {
	if body == nil {
		body = NewSequence()
	}
	return Token{Kind: KindOptional, Body: body}
}

// NewChoice creates a Choice token owning branches
func NewChoice(branches ...*Sequence) Token {
	return Token{Kind: KindChoice, Branches: branches}
}

// Named returns a copy of t carrying the capture name
func (t Token) Named(name string) Token {
	t.Name = name
	return t
}

// HasName reports whether the token carries a capture name
func (t Token) HasName() bool {
	return t.Name != ""
}

// String renders the token tree for debugging, e.g. Literal('h') or
// Choice([Literal('a')] | [Literal('b')])~name.
func (t Token) String() string {
	var sb strings.Builder
	t.writeDebug(&sb)
	return sb.String()
}

func (t Token) writeDebug(sb *strings.Builder) {
	sb.WriteString(t.Kind.String())
	switch t.Kind {
	case KindLiteral:
		sb.WriteString("(")
		sb.WriteString(strconv.QuoteRune(t.Char))
		sb.WriteString(")")
	case KindOptional:
		sb.WriteString("(")
		t.Body.writeDebug(sb)
		sb.WriteString(")")
	case KindChoice:
		sb.WriteString("(")
		for i, branch := range t.Branches {
			if i > 0 {
				sb.WriteString(" | ")
			}
			branch.writeDebug(sb)
		}
		sb.WriteString(")")
	default:
		sb.WriteString("()")
	}
	if t.HasName() {
		sb.WriteRune(SymCaptureMark)
		sb.WriteString(t.Name)
	}
}

// Template renders the token back into template syntax.
func (t Token) Template() string {
	var sb strings.Builder
	t.writeTemplate(&sb)
	return sb.String()
}

func (t Token) writeTemplate(sb *strings.Builder) {
	switch t.Kind {
	case KindLiteral:
		sb.WriteRune(t.Char)
	case KindWildcard:
		sb.WriteRune(SymWildcard)
	case KindInteger:
		sb.WriteString(KeywordInteger)
	case KindOptional:
		sb.WriteRune(SymOptionalOpen)
		t.Body.writeTemplate(sb)
		sb.WriteRune(SymOptionalEnd)
	case KindChoice:
		sb.WriteRune(SymChoiceOpen)
		for i, branch := range t.Branches {
			if i > 0 {
				sb.WriteRune(SymChoiceSep)
			}
			branch.writeTemplate(sb)
		}
		sb.WriteRune(SymChoiceEnd)
	}
	if t.HasName() {
		sb.WriteRune(SymCaptureMark)
		sb.WriteString(t.Name)
	}
}

// Len returns the number of top-level tokens
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Tokens)
}

// String renders the sequence as a bracketed token list
func (s *Sequence) String() string {
	var sb strings.Builder
	s.writeDebug(&sb)
	return sb.String()
}

func (s *Sequence) writeDebug(sb *strings.Builder) {
	sb.WriteString("[")
	if s != nil {
		for i, tok := range s.Tokens {
			if i > 0 {
				sb.WriteString(", ")
			}
			tok.writeDebug(sb)
		}
	}
	sb.WriteString("]")
}

// Template renders the sequence back into template syntax
func (s *Sequence) Template() string {
	var sb strings.Builder
	s.writeTemplate(&sb)
	return sb.String()
}

func (s *Sequence) writeTemplate(sb *strings.Builder) {
	if s == nil {
		return
	}
	for _, tok := range s.Tokens {
		tok.writeTemplate(sb)
	}
}

// CaptureNames lists every capture name in the tree, depth-first, without
// duplicates.
func (s *Sequence) CaptureNames() []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(seq *Sequence)
	walk = func(seq *Sequence) {
		if seq == nil {
			return
		}
		for _, tok := range seq.Tokens {
			if tok.HasName() && !seen[tok.Name] {
				seen[tok.Name] = true
				names = append(names, tok.Name)
			}
			switch tok.Kind {
			case KindOptional:
				walk(tok.Body)
			case KindChoice:
				for _, branch := range tok.Branches {
					walk(branch)
				}
			}
		}
	}
	walk(s)
	return names
}
