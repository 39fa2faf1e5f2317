// Package registry provides the persistent entity registry.
//
// The registry is a name-keyed document store: the whole map is loaded at
// startup and rewritten wholesale after every mutating command. There is
// no partial-write protocol - a crash mid-write may corrupt the backing
// document. The design assumes a single in-process writer; multi-process
// access would need file locking and is unsupported.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sigil-lang/sigil/internal/ir"
)

// Registry maps entity names to their records, persisted as one JSON
// document. Upserts are last-write-wins with no merge.
type Registry struct {
	path     string
	entities map[string]ir.EntityRecord
}

// Load opens the registry document at path, creating an empty registry if
// the file does not exist. A malformed document is an error, not an empty
// registry - silently dropping entities would violate persistence.
func Load(path string) (*Registry, error) {
	r := &Registry{
		path:     path,
		entities: make(map[string]ir.EntityRecord),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	if err := json.Unmarshal(data, &r.entities); err != nil {
		return nil, fmt.Errorf("load registry: parse %s: %w", path, err)
	}

	return r, nil
}

// Put upserts a record under its name and flushes the whole document.
// The record is not retained on flush failure.
func (r *Registry) Put(rec ir.EntityRecord) error {
	previous, existed := r.entities[rec.Name]
	r.entities[rec.Name] = rec

	if err := r.flush(); err != nil {
		// Roll back the in-memory map so memory and disk stay consistent.
		if existed {
			r.entities[rec.Name] = previous
		} else {
			delete(r.entities, rec.Name)
		}
		return fmt.Errorf("put %q: %w", rec.Name, err)
	}
	return nil
}

// Get returns the record under name.
func (r *Registry) Get(name string) (ir.EntityRecord, bool) {
	rec, ok := r.entities[name]
	return rec, ok
}

// All returns every record ordered by name.
func (r *Registry) All() []ir.EntityRecord {
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]ir.EntityRecord, len(names))
	for i, name := range names {
		records[i] = r.entities[name]
	}
	return records
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// CanonicalSnapshot serializes the full registry contents as canonical
// JSON, keyed by entity name. This is the chain-hash input: it changes if
// and only if the registry contents change.
func (r *Registry) CanonicalSnapshot() ([]byte, error) {
	obj := make(ir.Object, len(r.entities))
	for name, rec := range r.entities {
		obj[name] = rec.CanonicalView()
	}

	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return nil, fmt.Errorf("canonical snapshot: %w", err)
	}
	return data, nil
}

// flush rewrites the whole backing document.
func (r *Registry) flush() error {
	data, err := json.MarshalIndent(r.entities, "", "  ")
	if err != nil {
		return fmt.Errorf("flush registry: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("flush registry: %w", err)
	}
	return nil
}
