// Package parts is the registry of descriptive metadata for vehicle parts.
package parts

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var catalogTOML []byte

// Metadata describes a part for the info panel.
type Metadata struct {
	ID          string   `toml:"id" json:"id"`
	Name        string   `toml:"name" json:"name"`
	Description []string `toml:"description" json:"description"`
}

// Registry maps part ids to metadata. It is immutable after construction.
type Registry struct {
	ordered []Metadata
	byID    map[string]int
}

type catalogFile struct {
	Parts []Metadata `toml:"part"`
}

// Parse decodes a TOML catalog of [[part]] tables.
// Duplicate or empty ids are rejected.
func Parse(data []byte) (*Registry, error) {
	var file catalogFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding part catalog: %w", err)
	}

	r := &Registry{
		ordered: make([]Metadata, 0, len(file.Parts)),
		byID:    make(map[string]int, len(file.Parts)),
	}
	for i, m := range file.Parts {
		if m.ID == "" {
			return nil, fmt.Errorf("part catalog entry %d has no id", i)
		}
		if _, dup := r.byID[m.ID]; dup {
			return nil, fmt.Errorf("part catalog: duplicate id %q", m.ID)
		}
		if m.Name == "" {
			m.Name = m.ID
		}
		r.byID[m.ID] = len(r.ordered)
		r.ordered = append(r.ordered, m)
	}
	return r, nil
}

// Default returns the registry built from the embedded catalog.
// The embedded catalog is compiled in, so a decode failure is a build defect.
func Default() *Registry {
	r, err := Parse(catalogTOML)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the metadata for id, if any.
func (r *Registry) Lookup(id string) (Metadata, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Metadata{}, false
	}
	return r.ordered[i], true
}

// Describe always returns a record: the catalog entry, or a fallback naming
// the raw id when the catalog has none.
func (r *Registry) Describe(id string) Metadata {
	if m, ok := r.Lookup(id); ok {
		return m
	}
	return Fallback(id)
}

// Fallback is the record shown for ids without catalog entries.
func Fallback(id string) Metadata {
	return Metadata{ID: id, Name: id}
}

// All returns every entry in catalog order.
func (r *Registry) All() []Metadata {
	out := make([]Metadata, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.ordered)
}
