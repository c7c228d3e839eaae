package coriander

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FilesystemStore serves templates from a directory of YAML catalogs.
// Every *.yaml and *.yml file directly under the root is read; when two
// files define the same name, the file that sorts last wins.
//
// Directory structure:
//
//	<root>/
//	  catalog.yaml   # templates saved through Save land here
//	  greetings.yaml
//	  orders.yml
//
// Save updates the file that already defines the name, or CatalogDefaultFile
// for new names. Delete removes the name from every file that defines it.
type FilesystemStore struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStorageDriver opens FilesystemStore instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a FilesystemStore. The connection string is the root directory.
func (d *FilesystemStorageDriver) Open(connectionString string) (TemplateStore, error) {
	return NewFilesystemStore(connectionString)
}

// NewFilesystemStore creates a store rooted at root, creating the directory
// if it doesn't exist.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}
	if err := os.MkdirAll(root, CatalogDirPermissions); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStorageDir,
			Name:    root,
			Cause:   err,
		}
	}
	return &FilesystemStore{root: root}, nil
}

// Root returns the catalog directory.
func (s *FilesystemStore) Root() string {
	return s.root
}

// Get retrieves a template by name.
func (s *FilesystemStore) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	merged, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	tmpl, ok := merged[name]
	if !ok {
		return nil, NewTemplateNotFoundError(name)
	}
	return tmpl.Clone(), nil
}

// Save writes tmpl into the catalog that defines its name, or into
// CatalogDefaultFile when the name is new.
func (s *FilesystemStore) Save(ctx context.Context, tmpl *StoredTemplate) error {
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

	files, err := s.catalogFiles()
	if err != nil {
		return err
	}

	target := filepath.Join(s.root, CatalogDefaultFile)
	// Last definition wins on load, so update the last file defining the name.
	for i := len(files) - 1; i >= 0; i-- {
		catalog, err := LoadCatalog(files[i])
		if err != nil {
			return err
		}
		if _, ok := catalog.Get(tmpl.Name); ok {
			target = files[i]
			break
		}
	}

	catalog, err := s.loadOrEmpty(target)
	if err != nil {
		return err
	}
	stored := tmpl.Clone()
	stored.UpdatedAt = time.Time{}
	catalog.Set(stored)
	return catalog.WriteFile(target)
}

// Delete removes name from every catalog that defines it.
func (s *FilesystemStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	files, err := s.catalogFiles()
	if err != nil {
		return err
	}

	found := false
	for _, path := range files {
		catalog, err := LoadCatalog(path)
		if err != nil {
			return err
		}
		if !catalog.Remove(name) {
			continue
		}
		found = true
		if err := catalog.WriteFile(path); err != nil {
			return err
		}
	}
	if !found {
		return NewTemplateNotFoundError(name)
	}
	return nil
}

// List returns every template across all catalogs, ordered by name.
func (s *FilesystemStore) List(ctx context.Context) ([]*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	merged, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	result := make([]*StoredTemplate, 0, len(merged))
	for _, tmpl := range merged {
		result = append(result, tmpl)
	}
	sortStoredTemplates(result)
	return result, nil
}

// Close marks the store closed. Files on disk are left untouched.
func (s *FilesystemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Watch loads the store into engine, then reloads it whenever a catalog file
// under the root changes. Templates that disappear from the catalogs are
// unregistered. Watch blocks until ctx is done and returns ctx.Err().
func (s *FilesystemStore) Watch(ctx context.Context, engine *Engine) error {
	logger := engine.logger

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewCatalogError(ErrMsgWatchFailed, s.root, err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.root); err != nil {
		return NewCatalogError(ErrMsgWatchFailed, s.root, err)
	}

	mirror := &storeSync{store: s, engine: engine}
	if err := mirror.reload(ctx); err != nil {
		return err
	}
	logger.Info(LogMsgWatchStarted, zap.String(LogFieldPath, s.root))

	// Editors emit bursts of events for one save; reload once the burst settles.
	debounce := time.NewTimer(WatchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(LogMsgWatchStopped, zap.String(LogFieldPath, s.root))
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isCatalogFile(event.Name) || event.Op == fsnotify.Chmod {
				logger.Debug(LogMsgCatalogFileSkipped,
					zap.String(LogFieldPath, event.Name),
					zap.String(LogFieldEvent, event.Op.String()))
				continue
			}
			debounce.Reset(WatchDebounce)

		case <-debounce.C:
			if err := mirror.reload(ctx); err != nil {
				logger.Warn(LogMsgWatchReloadFailed,
					zap.String(LogFieldPath, s.root),
					zap.Error(err))
				continue
			}
			logger.Info(LogMsgWatchReload,
				zap.String(LogFieldPath, s.root),
				zap.Int(LogFieldTemplates, len(mirror.loaded)))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(LogMsgWatchReloadFailed,
				zap.String(LogFieldPath, s.root),
				zap.Error(err))
		}
	}
}

// storeSync mirrors a store into an engine, remembering which names came
// from the store so removals can be propagated.
type storeSync struct {
	store  TemplateStore
	engine *Engine
	loaded map[string]struct{}
}

func (ss *storeSync) reload(ctx context.Context) error {
	stored, err := ss.store.List(ctx)
	if err != nil {
		return err
	}

	current := make(map[string]struct{}, len(stored))
	for _, tmpl := range stored {
		if err := ss.engine.SetTemplate(tmpl.Name, tmpl.Template); err != nil {
			return err
		}
		current[tmpl.Name] = struct{}{}
	}
	for name := range ss.loaded {
		if _, ok := current[name]; !ok {
			ss.engine.UnregisterTemplate(name)
		}
	}
	ss.loaded = current
	return nil
}

// catalogFiles lists catalog files directly under the root, sorted.
func (s *FilesystemStore) catalogFiles() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, NewCatalogError(ErrMsgCatalogRead, s.root, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isCatalogFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(s.root, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// loadAll merges every catalog, later files overriding earlier ones.
func (s *FilesystemStore) loadAll() (map[string]*StoredTemplate, error) {
	files, err := s.catalogFiles()
	if err != nil {
		return nil, err
	}
	merged := make(map[string]*StoredTemplate)
	for _, path := range files {
		catalog, err := LoadCatalog(path)
		if err != nil {
			return nil, err
		}
		for _, tmpl := range catalog.Templates {
			merged[tmpl.Name] = tmpl
		}
	}
	return merged, nil
}

// loadOrEmpty loads path, returning an empty catalog if it doesn't exist.
func (s *FilesystemStore) loadOrEmpty(path string) (*Catalog, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Catalog{}, nil
	}
	return LoadCatalog(path)
}
