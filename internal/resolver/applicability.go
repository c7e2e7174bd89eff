package resolver

import (
	"fmt"
	"strings"

	"github.com/harrison/atreview/internal/models"
	"github.com/harrison/atreview/internal/registry"
)

// ResolveApplicability expands a test's declared applicability into AT keys.
// The wildcard form yields every registry key in registry order; an explicit
// list is lower-cased, kept in order, and deduplicated by first occurrence.
// A key missing from the registry is an error naming the test.
func ResolveApplicability(test *models.TestDescriptor, reg *registry.Registry) ([]string, error) {
	if test.Applicability.Kind == models.ApplicabilityAllKnown {
		return reg.Keys(), nil
	}

	keys := make([]string, 0, len(test.Applicability.Keys))
	seen := make(map[string]bool, len(test.Applicability.Keys))
	for _, declared := range test.Applicability.Keys {
		key := strings.ToLower(strings.TrimSpace(declared))
		if _, ok := reg.Lookup(key); !ok {
			return nil, fmt.Errorf("test %q (%s) applies to unknown AT %q", test.Name, test.FileName, declared)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("test %q (%s) applies to no assistive technology", test.Name, test.FileName)
	}
	return keys, nil
}
