package coriander

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	finders      []Finder
	replaceBase  bool
	randSource   RandSource
	maxSteps     int
	cacheEnabled bool
	cacheConfig  PatternCacheConfig
	logger       *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		maxSteps:     0,
		cacheEnabled: true,
		cacheConfig:  DefaultPatternCacheConfig(),
		logger:       nil,
	}
}

// resolveFinders returns the finder list the compiler will use.
func (c *engineConfig) resolveFinders() []Finder {
	if c.replaceBase {
		return append([]Finder(nil), c.finders...)
	}
	out := make([]Finder, 0, len(c.finders)+4)
	out = append(out, c.finders...)
	return append(out, DefaultFinders()...)
}

// WithFinders prepends custom finders ahead of the built-in ones, so they
// claim priority. May be given more than once; order is preserved.
func WithFinders(finders ...Finder) Option {
	return func(c *engineConfig) {
		c.finders = append(c.finders, finders...)
	}
}

// WithOnlyFinders replaces the built-in finders entirely. The literal
// fallback always remains, so every template still compiles.
func WithOnlyFinders(finders ...Finder) Option {
	return func(c *engineConfig) {
		c.finders = append([]Finder(nil), finders...)
		c.replaceBase = true
	}
}

// WithRandSource sets the source used for unbound tokens during generation.
// The source must be safe for concurrent use if the engine is shared.
// Default: a randomly seeded, concurrency-safe source.
func WithRandSource(source RandSource) Option {
	return func(c *engineConfig) {
		c.randSource = source
	}
}

// WithSeed makes generation deterministic.
func WithSeed(seed uint64) Option {
	return func(c *engineConfig) {
		c.randSource = NewSeededRand(seed)
	}
}

// WithMatchBudget caps the number of search steps per match call.
// Use 0 for unlimited.
// Default: 0
func WithMatchBudget(steps int) Option {
	return func(c *engineConfig) {
		if steps < 0 {
			steps = 0
		}
		c.maxSteps = steps
	}
}

// WithPatternCache configures the compiled pattern cache.
func WithPatternCache(config PatternCacheConfig) Option {
	return func(c *engineConfig) {
		c.cacheEnabled = true
		c.cacheConfig = config
	}
}

// WithoutPatternCache disables caching of compiled templates.
func WithoutPatternCache() Option {
	return func(c *engineConfig) {
		c.cacheEnabled = false
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
