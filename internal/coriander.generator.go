package internal

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// RandSource is the only source of non-determinism in generation.
// *rand.Rand from math/rand/v2 satisfies it, but is not safe for concurrent
// use; NewSeededRand returns a locked one.
type RandSource interface {
	IntN(n int) int
}

// globalRand draws from the math/rand/v2 top-level generator, which is safe
// for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRandSource returns a concurrency-safe, randomly seeded source.
func DefaultRandSource() RandSource {
	return globalRand{}
}

// lockedRand serializes access to a seeded generator.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// NewSeededRand returns a deterministic, concurrency-safe source.
func NewSeededRand(seed uint64) RandSource {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed))}
}

// Generator renders token sequences into messages, reading capture values
// from a context and filling unbound tokens from its random source.
type Generator struct {
	rand   RandSource
	logger *zap.Logger
}

// NewGenerator creates a new generator. A nil source uses DefaultRandSource.
func NewGenerator(source RandSource, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if source == nil {
		source = DefaultRandSource()
	}
	logger.Debug(LogMsgGeneratorCreated)
	return &Generator{
		rand:   source,
		logger: logger,
	}
}

// Generate renders seq using values from data.
func (g *Generator) Generate(seq *Sequence, data map[string]any) string {
	g.logger.Debug(LogMsgGenerateStart, zap.Int(LogFieldTokens, seq.Len()))

	var sb strings.Builder
	g.writeSequence(&sb, seq, data)

	g.logger.Debug(LogMsgGenerateEnd, zap.Int(LogFieldOutput, sb.Len()))
	return sb.String()
}

func (g *Generator) writeSequence(sb *strings.Builder, seq *Sequence, data map[string]any) {
	if seq == nil {
		return
	}
	for _, tok := range seq.Tokens {
		g.writeToken(sb, tok, data)
	}
}

func (g *Generator) writeToken(sb *strings.Builder, tok Token, data map[string]any) {
	value, bound := lookup(tok, data)

	switch tok.Kind {
	case KindLiteral:
		sb.WriteRune(tok.Char)

	case KindWildcard:
		if bound && IsTruthy(value) {
			sb.WriteString(fmt.Sprint(value))
			return
		}
		n := RandomWildcardMinLen + g.rand.IntN(RandomWildcardMaxLen-RandomWildcardMinLen+1)
		for i := 0; i < n; i++ {
			sb.WriteByte(RandomWildcardAlphabet[g.rand.IntN(len(RandomWildcardAlphabet))])
		}

	case KindInteger:
		if bound {
			sb.WriteString(FormatInteger(value))
			return
		}
		sb.WriteString(strconv.Itoa(g.rand.IntN(RandomIntegerMax + 1)))

	case KindOptional:
		include, explicit := value.(bool)
		if !bound || !explicit {
			include = g.rand.IntN(2) == 1
		}
		if include {
			g.writeSequence(sb, tok.Body, data)
		}

	case KindChoice:
		if bound {
			sb.WriteString(fmt.Sprint(value))
			return
		}
		if len(tok.Branches) == 0 {
			return
		}
		g.writeSequence(sb, tok.Branches[g.rand.IntN(len(tok.Branches))], data)
	}
}

// lookup returns the token's bound value; a nil value counts as unbound.
func lookup(tok Token, data map[string]any) (any, bool) {
	if !tok.HasName() || data == nil {
		return nil, false
	}
	value, ok := data[tok.Name]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// IsTruthy reports whether v is a non-empty string, non-zero number, true,
// or any other non-nil value.
func IsTruthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case int:
		return x != 0
	case int8:
		return x != 0
	case int16:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint8:
		return x != 0
	case uint16:
		return x != 0
	case uint32:
		return x != 0
	case uint64:
		return x != 0
	case float32:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

// FormatInteger renders a bound Integer value in decimal. Whole floats, as
// produced by JSON and YAML decoders, print without a fractional part.
func FormatInteger(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'f', 0, 64)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
