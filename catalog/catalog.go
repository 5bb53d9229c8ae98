// Package catalog holds the curated set of performer identifiers allowed to
// appear in responses. The set is loaded once at startup and read-only after
// that, so it is safe to share across concurrent requests without locking.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when the catalog file does not exist.
var ErrNotFound = errors.New("catalog file not found")

// Catalog is an immutable membership set of item identifiers.
type Catalog struct {
	ids map[string]struct{}
}

// New builds a catalog from a list of identifiers. Blank entries are skipped.
func New(ids []string) *Catalog {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return &Catalog{ids: set}
}

// Load reads a catalog from a YAML file. The file is either a plain sequence
// of identifiers or a document with a `performers` key holding one.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		var doc struct {
			Performers []string `yaml:"performers"`
		}
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		ids = doc.Performers
	}

	return New(ids), nil
}

// Contains reports whether id is part of the catalog. Matching is exact.
func (c *Catalog) Contains(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.ids[id]
	return ok
}

// Len returns the number of identifiers in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}
