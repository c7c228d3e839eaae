package coriander

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Catalog is a YAML document listing named templates:
//
//	templates:
//	  - name: greeting
//	    template: "[hello|hi] my name is *~name"
//	    description: Introductions
//	    tags: [chat]
type Catalog struct {
	Templates []*StoredTemplate `yaml:"templates"`
}

// ParseCatalog decodes and validates a catalog. path is used in errors only.
func ParseCatalog(data []byte, path string) (*Catalog, error) {
	var catalog Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return &Catalog{}, nil
		}
		return nil, NewCatalogError(ErrMsgCatalogParse, path, err)
	}
	if err := catalog.Validate(path); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewCatalogError(ErrMsgCatalogRead, path, err)
	}
	return ParseCatalog(data, path)
}

// Validate checks that every entry has a unique, non-empty name.
func (c *Catalog) Validate(path string) error {
	seen := make(map[string]struct{}, len(c.Templates))
	for i, tmpl := range c.Templates {
		if tmpl == nil || tmpl.Name == "" {
			return NewCatalogEntryError(path, ErrMsgEmptyTemplateName+" at index "+strconv.Itoa(i))
		}
		if _, dup := seen[tmpl.Name]; dup {
			return NewCatalogEntryError(path, ErrMsgTemplateExists+": "+tmpl.Name)
		}
		seen[tmpl.Name] = struct{}{}
	}
	return nil
}

// Get returns the entry with the given name.
func (c *Catalog) Get(name string) (*StoredTemplate, bool) {
	for _, tmpl := range c.Templates {
		if tmpl.Name == name {
			return tmpl, true
		}
	}
	return nil, false
}

// Set inserts tmpl or replaces the entry with the same name.
func (c *Catalog) Set(tmpl *StoredTemplate) {
	for i, existing := range c.Templates {
		if existing.Name == tmpl.Name {
			c.Templates[i] = tmpl
			return
		}
	}
	c.Templates = append(c.Templates, tmpl)
}

// Remove deletes the entry with the given name and reports whether it existed.
func (c *Catalog) Remove(name string) bool {
	for i, existing := range c.Templates {
		if existing.Name == name {
			c.Templates = append(c.Templates[:i], c.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// Marshal encodes the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the catalog to path, creating parent directories.
// The file is written to a temporary sibling and renamed into place.
func (c *Catalog) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return NewCatalogError(ErrMsgCatalogWrite, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), CatalogDirPermissions); err != nil {
		return NewCatalogError(ErrMsgCatalogWrite, path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, CatalogFilePermissions); err != nil {
		return NewCatalogError(ErrMsgCatalogWrite, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return NewCatalogError(ErrMsgCatalogWrite, path, err)
	}
	return nil
}

// LoadCatalogFile registers every template of a catalog file with the
// engine, replacing same-named templates. It returns how many were loaded.
func (e *Engine) LoadCatalogFile(path string) (int, error) {
	catalog, err := LoadCatalog(path)
	if err != nil {
		return 0, err
	}
	store := NewMemoryStore()
	ctx := context.Background()
	for _, tmpl := range catalog.Templates {
		if err := store.Save(ctx, tmpl); err != nil {
			return 0, err
		}
	}
	return e.LoadStore(ctx, store)
}

// isCatalogFile reports whether path has a catalog extension.
func isCatalogFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == CatalogFileExtYAML || ext == CatalogFileExtYML
}
