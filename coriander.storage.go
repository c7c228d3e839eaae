package coriander

import (
	"context"
	"sort"
	"sync"
	"time"
)

// StoredTemplate is a named template kept in a TemplateStore.
type StoredTemplate struct {
	// Name is the registry name the template is loaded under.
	Name string `json:"name" yaml:"name"`

	// Template is the template source.
	Template string `json:"template" yaml:"template"`

	// Description is free-form documentation.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tags categorize templates.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// UpdatedAt is set by the store on Save.
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (t *StoredTemplate) Clone() *StoredTemplate {
	if t == nil {
		return nil
	}
	clone := *t
	if t.Tags != nil {
		clone.Tags = append([]string(nil), t.Tags...)
	}
	return &clone
}

// HasTag reports whether the template carries tag.
func (t *StoredTemplate) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// TemplateStore is the interface for pluggable template backends.
// Implementations must be safe for concurrent use.
type TemplateStore interface {
	// Get retrieves a template by name. A missing name yields an error
	// for which IsNotFound is true.
	Get(ctx context.Context, name string) (*StoredTemplate, error)

	// Save stores a template, replacing any template with the same name.
	Save(ctx context.Context, tmpl *StoredTemplate) error

	// Delete removes a template by name. A missing name yields an error
	// for which IsNotFound is true.
	Delete(ctx context.Context, name string) error

	// List returns all templates ordered by name.
	List(ctx context.Context) ([]*StoredTemplate, error)

	// Close releases any resources held by the store.
	Close() error
}

// StorageDriver is a factory for TemplateStore instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a store. The connection string is driver-specific.
	Open(connectionString string) (TemplateStore, error)
}

var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// Panics if driver is nil or the name is already taken.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a store using the named driver.
//
//	store, err := coriander.OpenStorage("memory", "")
//	store, err := coriander.OpenStorage("filesystem", "/etc/coriander/templates")
//	store, err := coriander.OpenStorage("postgres", "postgres://localhost/coriander?sslmode=disable")
func OpenStorage(driverName, connectionString string) (TemplateStore, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}
	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered drivers, sorted.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortStoredTemplates orders templates by name in place.
func sortStoredTemplates(templates []*StoredTemplate) {
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
}
