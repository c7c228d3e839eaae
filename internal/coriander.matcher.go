package internal

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// Candidate is one way a token or sequence can consume a prefix of the
// message. End is the number of runes consumed, Value the payload the token
// binds to its capture name, Context the captures gathered along the path.
//
// Value by kind: Literal and Wildcard bind the consumed text, Integer an int,
// Choice the consumed text. Optional binds true when its body matched and
// false when it was skipped; it is never absent, so a matched context fed to
// the generator reproduces the same choice.
type Candidate struct {
	End     int
	Value   any
	Context map[string]any
}

// MatcherConfig holds matcher configuration options.
type MatcherConfig struct {
	MaxSteps int // Search step budget per call (0 = unlimited)
}

// DefaultMatcherConfig returns the default matcher configuration.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		MaxSteps: DefaultMaxSteps,
	}
}

// Matcher enumerates every way a token sequence can consume a prefix of a
// message. State lives in a per-call search, so a Matcher is safe for
// concurrent use.
type Matcher struct {
	config MatcherConfig
	logger *zap.Logger
}

// NewMatcher creates a new matcher.
func NewMatcher(config MatcherConfig, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgMatcherCreated)
	return &Matcher{
		config: config,
		logger: logger,
	}
}

// Match reports whether seq consumes the whole message and returns the
// context of the first full-length path found.
func (m *Matcher) Match(ctx context.Context, seq *Sequence, message string) (bool, map[string]any, error) {
	runes := []rune(message)
	candidates, err := m.matchSequence(ctx, seq, runes)
	if err != nil {
		return false, map[string]any{}, err
	}
	for _, c := range candidates {
		if c.End == len(runes) {
			return true, ensureContext(c.Context), nil
		}
	}
	return false, map[string]any{}, nil
}

// MatchSequence returns the sequence's candidates against message, one per
// distinct end offset, in ascending order of End.
func (m *Matcher) MatchSequence(ctx context.Context, seq *Sequence, message string) ([]Candidate, error) {
	candidates, err := m.matchSequence(ctx, seq, []rune(message))
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = Candidate{End: c.End, Context: ensureContext(c.Context)}
	}
	return out, nil
}

// MatchToken returns the candidates of a single token against message, in
// the token's own enumeration order.
func (m *Matcher) MatchToken(ctx context.Context, tok Token, message string) ([]Candidate, error) {
	s := m.newSearch(ctx, []rune(message))
	candidates := s.token(tok, 0)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = Candidate{End: c.End, Value: c.Value, Context: ensureContext(c.Context)}
	}
	return out, nil
}

func (m *Matcher) matchSequence(ctx context.Context, seq *Sequence, message []rune) ([]Candidate, error) {
	if seq == nil {
		seq = NewSequence()
	}
	m.logger.Debug(LogMsgMatchStart,
		zap.Int(LogFieldTokens, seq.Len()),
		zap.Int(LogFieldMessage, len(message)))

	s := m.newSearch(ctx, message)
	candidates := s.sequence(seq, 0, 0)
	if s.err != nil {
		m.logger.Debug(LogMsgMatchAborted, zap.Int(LogFieldSteps, s.steps), zap.Error(s.err))
		return nil, s.err
	}

	m.logger.Debug(LogMsgMatchEnd,
		zap.Int(LogFieldCandidates, len(candidates)),
		zap.Int(LogFieldSteps, s.steps))
	return candidates, nil
}

func (m *Matcher) newSearch(ctx context.Context, message []rune) *search {
	if ctx == nil {
		ctx = context.Background()
	}
	return &search{
		ctx:      ctx,
		message:  message,
		maxSteps: m.config.MaxSteps,
		memo:     make(map[memoKey][]Candidate),
	}
}

// memoKey identifies a suffix of a sequence applied at a message offset.
type memoKey struct {
	seq *Sequence
	idx int
	pos int
}

// search is the state of one match call. Results are memoized by
// (sequence, token index, offset), which prunes repeated sub-searches
// without changing what is found. Memoized contexts are never mutated.
type search struct {
	ctx      context.Context
	message  []rune
	maxSteps int
	steps    int
	memo     map[memoKey][]Candidate
	err      error
}

// step counts one unit of work and reports whether the search may continue.
func (s *search) step() bool {
	if s.err != nil {
		return false
	}
	s.steps++
	if s.maxSteps > 0 && s.steps > s.maxSteps {
		s.err = NewMatchError(ErrMsgMatchBudgetExceeded, s.steps, nil)
		return false
	}
	if s.steps%CancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = NewMatchError(ErrMsgMatchCanceled, s.steps, err)
			return false
		}
	}
	return true
}

// sequence matches seq.Tokens[idx:] at message offset pos. Ends are relative
// to pos. Paths reaching the same end are merged; the first one found keeps
// its context.
func (s *search) sequence(seq *Sequence, idx, pos int) []Candidate {
	if idx >= len(seq.Tokens) {
		return []Candidate{{End: 0}}
	}

	key := memoKey{seq: seq, idx: idx, pos: pos}
	if cached, ok := s.memo[key]; ok {
		return cached
	}
	if !s.step() {
		return nil
	}

	head := seq.Tokens[idx]
	byEnd := make(map[int]Candidate)
	var ends []int

	for _, h := range s.token(head, pos) {
		for _, t := range s.sequence(seq, idx+1, pos+h.End) {
			end := h.End + t.End
			if _, seen := byEnd[end]; seen {
				continue
			}
			byEnd[end] = Candidate{End: end, Context: mergeContexts(head, h, t)}
			ends = append(ends, end)
		}
		if s.err != nil {
			return nil
		}
	}

	sort.Ints(ends)
	out := make([]Candidate, len(ends))
	for i, end := range ends {
		out[i] = byEnd[end]
	}
	s.memo[key] = out
	return out
}

// token enumerates every way tok can consume a prefix of message[pos:].
func (s *search) token(tok Token, pos int) []Candidate {
	if !s.step() {
		return nil
	}
	rest := s.message[pos:]

	switch tok.Kind {
	case KindLiteral:
		if len(rest) > 0 && rest[0] == tok.Char {
			return []Candidate{{End: 1, Value: string(tok.Char)}}
		}
		return nil

	case KindWildcard:
		out := make([]Candidate, 0, len(rest))
		for end := 1; end <= len(rest); end++ {
			out = append(out, Candidate{End: end, Value: string(rest[:end])})
		}
		return out

	case KindInteger:
		end := 0
		for end < len(rest) && isDigit(rest[end]) {
			end++
		}
		if end == 0 {
			return nil
		}
		n, err := strconv.Atoi(string(rest[:end]))
		if err != nil {
			return nil
		}
		return []Candidate{{End: end, Value: n}}

	case KindOptional:
		out := []Candidate{{End: 0, Value: false}}
		for _, c := range s.sequence(tok.Body, 0, pos) {
			out = append(out, Candidate{End: c.End, Value: true, Context: c.Context})
		}
		return out

	case KindChoice:
		var out []Candidate
		for _, branch := range tok.Branches {
			for _, c := range s.sequence(branch, 0, pos) {
				out = append(out, Candidate{End: c.End, Value: string(rest[:c.End]), Context: c.Context})
			}
		}
		return out
	}

	return nil
}

// mergeContexts builds the context of a head+tail combination: the head's
// own binding, overlaid by the head's nested captures, overlaid by the tail's.
func mergeContexts(head Token, h, t Candidate) map[string]any {
	size := len(h.Context) + len(t.Context)
	if head.HasName() {
		size++
	}
	if size == 0 {
		return nil
	}

	merged := make(map[string]any, size)
	if head.HasName() {
		merged[head.Name] = h.Value
	}
	for k, v := range h.Context {
		merged[k] = v
	}
	for k, v := range t.Context {
		merged[k] = v
	}
	return merged
}

func ensureContext(ctx map[string]any) map[string]any {
	out := make(map[string]any, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// MatchError reports an aborted search.
type MatchError struct {
	Message string
	Steps   int
	Cause   error
}

// NewMatchError creates a new match error.
func NewMatchError(message string, steps int, cause error) *MatchError {
	return &MatchError{
		Message: message,
		Steps:   steps,
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *MatchError) Error() string {
	result := fmt.Sprintf(ErrFmtWithSteps, e.Message, e.Steps)
	if e.Cause != nil {
		result = fmt.Sprintf(ErrFmtWithCause, result, e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *MatchError) Unwrap() error {
	return e.Cause
}

// Matcher error message constants
const (
	ErrMsgMatchBudgetExceeded = "match step budget exceeded"
	ErrMsgMatchCanceled       = "match canceled"
	ErrFmtWithSteps           = "%s after %d steps"
	ErrFmtWithCause           = "%s: %v"
)

// Default configuration values
const (
	DefaultMaxSteps = 0
)
