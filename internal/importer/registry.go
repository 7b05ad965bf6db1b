package importer

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]BrokerTemplate)
	registryMu sync.RWMutex
)

// Register adds a broker template to the registry.
// Panics if a template with the same ID is already registered; template IDs
// are immutable and globally unique.
func Register(tpl BrokerTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if tpl.ID == "" {
		panic("template registered with empty id")
	}
	if _, exists := registry[tpl.ID]; exists {
		panic(fmt.Sprintf("template already registered: %s", tpl.ID))
	}

	registry[tpl.ID] = tpl
}

// Get returns a template by ID.
// Returns false if not found.
func Get(id string) (BrokerTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	tpl, ok := registry[id]
	return tpl, ok
}

// All returns every registered template, sorted by ID for consistent ordering.
func All() []BrokerTemplate {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]BrokerTemplate, 0, len(registry))
	for _, tpl := range registry {
		result = append(result, tpl)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// TemplateCount returns the number of registered templates.
func TemplateCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered templates.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]BrokerTemplate)
}
