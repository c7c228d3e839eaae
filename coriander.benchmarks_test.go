package coriander

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

const benchGreeting = "[hello|hi|hey] my name is *~name( and I am INT~age years old)~aged"

// =============================================================================
// COMPILE BENCHMARKS
// =============================================================================

func BenchmarkCompile_Simple(b *testing.B) {
	engine := MustNew(WithoutPatternCache())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Compile("INT~age years old")
	}
}

func BenchmarkCompile_Nested(b *testing.B) {
	engine := MustNew(WithoutPatternCache())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Compile(benchGreeting)
	}
}

func BenchmarkCompile_Cached(b *testing.B) {
	engine := MustNew()
	engine.Compile(benchGreeting)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Compile(benchGreeting)
	}
}

// =============================================================================
// MATCH BENCHMARKS
// =============================================================================

func BenchmarkMatch_Greeting(b *testing.B) {
	pattern := MustNew().Compile(benchGreeting)
	ctx := context.Background()
	message := "hello my name is Grace Hopper and I am 85 years old"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = pattern.Match(ctx, message)
	}
}

func BenchmarkMatch_Wildcards(b *testing.B) {
	for _, n := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("wildcards=%d", n), func(b *testing.B) {
			template := strings.TrimSuffix(strings.Repeat("*a", n), "a") + "b"
			pattern := MustNew().Compile(template)
			message := strings.Repeat("a", 64)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = pattern.Match(ctx, message)
			}
		})
	}
}

func BenchmarkClassify(b *testing.B) {
	engine := MustNew()
	for i := 0; i < 50; i++ {
		engine.MustRegisterTemplate(fmt.Sprintf("t%02d", i), fmt.Sprintf("[cmd%d|c%d] *~arg", i, i))
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Classify(ctx, "c42 hello world")
	}
}

// =============================================================================
// GENERATE BENCHMARKS
// =============================================================================

func BenchmarkGenerate_Bound(b *testing.B) {
	pattern := MustNew(WithSeed(1)).Compile(benchGreeting)
	data := map[string]any{"name": "Ada", "aged": true, "age": 36}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pattern.Generate(data)
	}
}

func BenchmarkGenerate_Random(b *testing.B) {
	pattern := MustNew(WithSeed(1)).Compile(benchGreeting)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pattern.Generate(nil)
	}
}

// =============================================================================
// CONCURRENCY BENCHMARKS
// =============================================================================

func BenchmarkMatch_Concurrent(b *testing.B) {
	engine := MustNew()
	ctx := context.Background()
	const workers = 8

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = engine.Match(ctx, benchGreeting, "hi my name is Ada")
			}()
		}
		wg.Wait()
	}
}
