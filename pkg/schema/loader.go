package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-batmanform/pkg/model"
)

// ErrNotFound is returned when a store has no schema for an id.
var ErrNotFound = errors.New("schema: not found")

// Entry is one loaded schema and where it came from.
type Entry struct {
	Schema model.FormSchema
	Source Source
}

// Store holds schemas keyed by id. It is read-only after loading.
type Store struct {
	entries map[string]Entry
}

// LoadFS walks the provided filesystem and parses every JSON/YAML schema
// file. A schema without an id takes its file stem. When fsys is nil the
// returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{entries: make(map[string]Entry)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", name, err)
		}
		return store.add(data, SourceFromFS(name))
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single schema file from disk.
func LoadFile(name string) (model.FormSchema, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("schema: read %s: %w", name, err)
	}
	schema, err := Decode(data, name)
	if err != nil {
		return model.FormSchema{}, err
	}
	if schema.ID == "" {
		schema.ID = stem(name)
	}
	return schema, nil
}

// LoadFiles parses the named files from disk into a store.
func LoadFiles(names ...string) (*Store, error) {
	store := &Store{entries: make(map[string]Entry)}
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("schema: read %s: %w", name, err)
		}
		if err := store.add(data, SourceFromFile(name)); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Decode parses a JSON or YAML schema. The decoder is picked from the name's
// extension; anything other than .yaml/.yml is read as JSON.
func Decode(data []byte, name string) (model.FormSchema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.FormSchema{}, fmt.Errorf("schema: file %s is empty", name)
	}

	var (
		schema model.FormSchema
		err    error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &schema)
	default:
		err = json.Unmarshal(data, &schema)
	}
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("schema: parse %s: %w", name, err)
	}
	schema.ID = strings.TrimSpace(schema.ID)
	return schema, nil
}

func (s *Store) add(data []byte, source Source) error {
	schema, err := Decode(data, source.Location())
	if err != nil {
		return err
	}
	if schema.ID == "" {
		schema.ID = stem(source.Location())
	}
	if existing, exists := s.entries[schema.ID]; exists {
		return fmt.Errorf("schema: duplicate schema %q (files %s and %s)", schema.ID, existing.Source.Location(), source.Location())
	}
	s.entries[schema.ID] = Entry{Schema: schema, Source: source}
	return nil
}

// Schema returns the schema registered under id.
func (s *Store) Schema(id string) (model.FormSchema, bool) {
	if s == nil {
		return model.FormSchema{}, false
	}
	entry, ok := s.entries[id]
	return entry.Schema, ok
}

// Lookup mirrors Schema but returns ErrNotFound for unknown ids.
func (s *Store) Lookup(id string) (model.FormSchema, error) {
	schema, ok := s.Schema(id)
	if !ok {
		return model.FormSchema{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return schema, nil
}

// Entry returns the schema and its source.
func (s *Store) Entry(id string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	entry, ok := s.entries[id]
	return entry, ok
}

// IDs returns the registered schema ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Empty reports whether the store holds any schemas.
func (s *Store) Empty() bool {
	return s == nil || len(s.entries) == 0
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func stem(name string) string {
	base := path.Base(filepath.ToSlash(name))
	return strings.TrimSuffix(base, path.Ext(base))
}
