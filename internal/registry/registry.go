// Package registry loads the global list of assistive technologies from
// tests/support.json. The registry is the only source of valid AT keys and the
// universe used when a test applies to "all screen readers".
package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/atreview/internal/models"
)

// Registry is an ordered, read-only set of assistive technologies
type Registry struct {
	ats   []models.AssistiveTechnology
	index map[string]int
}

type supportFile struct {
	ATs []models.AssistiveTechnology `json:"ats"`
}

// Load reads a support.json file from disk
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open AT registry: %w", err)
	}
	defer f.Close()

	reg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load AT registry %s: %w", path, err)
	}
	return reg, nil
}

// Decode parses support.json content. Keys are lower-cased; an empty registry
// or a repeated key is an error.
func Decode(r io.Reader) (*Registry, error) {
	var support supportFile
	if err := json.NewDecoder(r).Decode(&support); err != nil {
		return nil, fmt.Errorf("invalid support.json: %w", err)
	}
	return New(support.ATs)
}

// New builds a registry from an ordered list of assistive technologies
func New(ats []models.AssistiveTechnology) (*Registry, error) {
	if len(ats) == 0 {
		return nil, fmt.Errorf("AT registry is empty")
	}

	reg := &Registry{
		ats:   make([]models.AssistiveTechnology, 0, len(ats)),
		index: make(map[string]int, len(ats)),
	}
	for i, at := range ats {
		key := strings.ToLower(strings.TrimSpace(at.Key))
		if key == "" {
			return nil, fmt.Errorf("AT entry %d has an empty key", i)
		}
		if _, exists := reg.index[key]; exists {
			return nil, fmt.Errorf("duplicate AT key %q", key)
		}
		reg.index[key] = len(reg.ats)
		reg.ats = append(reg.ats, models.AssistiveTechnology{Key: key, Name: at.Name})
	}
	return reg, nil
}

// Keys returns every AT key in registry order
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.ats))
	for i, at := range r.ats {
		keys[i] = at.Key
	}
	return keys
}

// All returns a copy of the registry entries in order
func (r *Registry) All() []models.AssistiveTechnology {
	out := make([]models.AssistiveTechnology, len(r.ats))
	copy(out, r.ats)
	return out
}

// Lookup finds an AT by key (case-insensitive)
func (r *Registry) Lookup(key string) (models.AssistiveTechnology, bool) {
	i, ok := r.index[strings.ToLower(key)]
	if !ok {
		return models.AssistiveTechnology{}, false
	}
	return r.ats[i], true
}

// Len returns the number of registered ATs
func (r *Registry) Len() int {
	return len(r.ats)
}
