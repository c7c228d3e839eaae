package coriander

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory TemplateStore. It suits tests and
// short-lived processes; all data is lost when the process terminates.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]*StoredTemplate
	closed    bool
}

// MemoryStorageDriver opens MemoryStore instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStore. The connection string is ignored.
func (d *MemoryStorageDriver) Open(connectionString string) (TemplateStore, error) {
	return NewMemoryStore(), nil
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]*StoredTemplate),
	}
}

// Get retrieves a template by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	tmpl, ok := s.templates[name]
	if !ok {
		return nil, NewTemplateNotFoundError(name)
	}
	return tmpl.Clone(), nil
}

// Save stores a copy of tmpl, replacing any template with the same name.
func (s *MemoryStore) Save(ctx context.Context, tmpl *StoredTemplate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tmpl == nil || tmpl.Name == "" {
		return NewEmptyTemplateNameError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	stored := tmpl.Clone()
	stored.UpdatedAt = time.Now()
	s.templates[stored.Name] = stored
	return nil
}

// Delete removes a template by name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.templates[name]; !ok {
		return NewTemplateNotFoundError(name)
	}
	delete(s.templates, name)
	return nil
}

// List returns copies of all templates ordered by name.
func (s *MemoryStore) List(ctx context.Context) ([]*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	result := make([]*StoredTemplate, 0, len(s.templates))
	for _, tmpl := range s.templates {
		result = append(result, tmpl.Clone())
	}
	sortStoredTemplates(result)
	return result, nil
}

// Close marks the store closed and drops its contents.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.templates = nil
	return nil
}
