package coriander

import (
	"context"
	"sort"
	"sync"

	"github.com/itsatony/go-coriander/internal"
	"go.uber.org/zap"
)

// Engine is the main entry point. It compiles templates with its finder
// list, matches and generates messages, and keeps a registry of named
// templates. An Engine is safe for concurrent use as long as its RandSource is.
type Engine struct {
	compiler  *internal.Compiler
	matcher   *internal.Matcher
	generator *internal.Generator
	cache     *PatternCache       // nil when caching is disabled
	templates map[string]*Pattern // Named templates
	tmplMu    sync.RWMutex        // Protects templates map
	config    *engineConfig
	logger    *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	finders := config.resolveFinders()
	matcherConfig := internal.MatcherConfig{
		MaxSteps: config.maxSteps,
	}

	var cache *PatternCache
	if config.cacheEnabled {
		cache = NewPatternCache(config.cacheConfig)
	}

	logger.Debug(LogMsgEngineCreated, zap.Int(internal.LogFieldFinders, len(finders)))
	return &Engine{
		compiler:  internal.NewCompiler(finders, logger),
		matcher:   internal.NewMatcher(matcherConfig, logger),
		generator: internal.NewGenerator(config.randSource, logger),
		cache:     cache,
		templates: make(map[string]*Pattern),
		config:    config,
		logger:    logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Compile compiles a template. Compilation never fails: malformed groups
// degrade to literal characters.
func (e *Engine) Compile(template string) *Pattern {
	if e.cache != nil {
		if p, ok := e.cache.Get(template); ok {
			e.logger.Debug(LogMsgCacheHit)
			return p
		}
		e.logger.Debug(LogMsgCacheMiss)
	}

	p := newPattern(template, e.compiler.Compile(template), e)
	if e.cache != nil {
		e.cache.Set(template, p)
	}
	return p
}

// Match compiles template (or takes it from the cache) and matches message
// against it. The error is non-nil only when the search is aborted by ctx or
// by the match budget; a non-matching message is an ordinary negative result.
func (e *Engine) Match(ctx context.Context, template, message string) (*MatchResult, error) {
	return e.Compile(template).Match(ctx, message)
}

// MatchSequence returns the prefix candidates of message for template.
func (e *Engine) MatchSequence(ctx context.Context, template, message string) ([]Candidate, error) {
	return e.Compile(template).MatchSequence(ctx, message)
}

// Generate renders a message from template using values from data.
func (e *Engine) Generate(template string, data map[string]any) string {
	return e.Compile(template).Generate(data)
}

// Finders returns the compiler's finder list, without the literal fallback.
func (e *Engine) Finders() []Finder {
	return e.compiler.Finders()
}

// CacheStats returns pattern cache statistics. It is zero when caching is disabled.
func (e *Engine) CacheStats() PatternCacheStats {
	if e.cache == nil {
		return PatternCacheStats{}
	}
	return e.cache.Stats()
}

// RegisterTemplate compiles template and registers it under name.
// Returns an error if the name is empty or already taken.
func (e *Engine) RegisterTemplate(name, template string) error {
	if name == "" {
		return NewEmptyTemplateNameError()
	}

	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		return NewTemplateExistsError(name)
	}

	e.templates[name] = e.Compile(template)
	e.logger.Debug(LogMsgTemplateRegistered, zap.String(LogFieldTemplateName, name))
	return nil
}

// MustRegisterTemplate registers a template and panics on error.
func (e *Engine) MustRegisterTemplate(name, template string) {
	if err := e.RegisterTemplate(name, template); err != nil {
		panic(err)
	}
}

// SetTemplate registers template under name, replacing any existing one.
func (e *Engine) SetTemplate(name, template string) error {
	if name == "" {
		return NewEmptyTemplateNameError()
	}

	p := e.Compile(template)

	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		e.logger.Debug(LogMsgTemplateReplaced, zap.String(LogFieldTemplateName, name))
	} else {
		e.logger.Debug(LogMsgTemplateRegistered, zap.String(LogFieldTemplateName, name))
	}
	e.templates[name] = p
	return nil
}

// UnregisterTemplate removes a registered template by name.
// Returns true if the template existed and was removed, false otherwise.
func (e *Engine) UnregisterTemplate(name string) bool {
	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		delete(e.templates, name)
		e.logger.Debug(LogMsgTemplateRemoved, zap.String(LogFieldTemplateName, name))
		return true
	}
	return false
}

// GetTemplate retrieves a registered pattern by name.
func (e *Engine) GetTemplate(name string) (*Pattern, bool) {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	p, ok := e.templates[name]
	return p, ok
}

// HasTemplate checks if a template is registered with the given name.
func (e *Engine) HasTemplate(name string) bool {
	_, ok := e.GetTemplate(name)
	return ok
}

// ListTemplates returns all registered template names in sorted order.
func (e *Engine) ListTemplates() []string {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateCount returns the number of registered templates.
func (e *Engine) TemplateCount() int {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	return len(e.templates)
}

// lookupTemplate returns the named pattern or a not-found error with suggestions.
func (e *Engine) lookupTemplate(name string) (*Pattern, error) {
	if p, ok := e.GetTemplate(name); ok {
		return p, nil
	}
	return nil, NewTemplateNotFoundError(name, FindSimilarNames(name, e.ListTemplates(), MaxSuggestions)...)
}

// MatchNamed matches message against a registered template.
func (e *Engine) MatchNamed(ctx context.Context, name, message string) (*MatchResult, error) {
	p, err := e.lookupTemplate(name)
	if err != nil {
		return nil, err
	}
	return p.Match(ctx, message)
}

// GenerateNamed renders a message from a registered template.
func (e *Engine) GenerateNamed(name string, data map[string]any) (string, error) {
	p, err := e.lookupTemplate(name)
	if err != nil {
		return "", err
	}
	return p.Generate(data), nil
}

// Classify matches message against every registered template and returns
// the ones that accept it, in name order.
func (e *Engine) Classify(ctx context.Context, message string) ([]Classification, error) {
	var matches []Classification
	for _, name := range e.ListTemplates() {
		p, ok := e.GetTemplate(name)
		if !ok {
			continue
		}
		result, err := p.Match(ctx, message)
		if err != nil {
			return nil, err
		}
		if result.Success {
			matches = append(matches, Classification{Name: name, Context: result.Context})
		}
	}

	e.logger.Debug(LogMsgClassifyComplete, zap.Int(LogFieldMatches, len(matches)))
	return matches, nil
}

// LoadStore registers every template in store, replacing templates with the
// same name. It returns how many templates were loaded.
func (e *Engine) LoadStore(ctx context.Context, store TemplateStore) (int, error) {
	stored, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, tmpl := range stored {
		if err := e.SetTemplate(tmpl.Name, tmpl.Template); err != nil {
			return 0, err
		}
		e.logger.Debug(LogMsgStoreTemplateLoaded, zap.String(LogFieldTemplateName, tmpl.Name))
	}

	e.logger.Debug(LogMsgStoreLoaded, zap.Int(LogFieldTemplates, len(stored)))
	return len(stored), nil
}
