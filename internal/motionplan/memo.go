package motionplan

import (
	"fmt"
	"sync"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"golang.org/x/sync/singleflight"
)

// memoEntry is a motion-plan memoization entry, keyed by (species, initial
// configuration, goal configuration) with structural equality on
// configurations; the value is the resulting path plus length.
type memoEntry struct {
	result Result
}

// memo is the shared memoization layer: multi-reader / single-writer,
// duplicate concurrent queries for the same key coalesce. A single mutex
// guards the backing map; singleflight.Group additionally coalesces
// concurrent in-flight computations for the same key
// so two callers racing on a cold key only invoke the planner once.
type memo struct {
	mu      sync.RWMutex
	entries map[string]memoEntry
	group   singleflight.Group
}

func newMemo() *memo {
	return &memo{entries: make(map[string]memoEntry)}
}

func memoKey(species *core.Species, from, to core.Configuration) string {
	name := ""
	if species != nil {
		name = species.Name
	}
	return fmt.Sprintf("%s|%s|%s", name, from.Key(), to.Key())
}

func (m *memo) get(key string) (Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e.result, ok
}

func (m *memo) has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok
}

// resolve returns the cached result for key, computing it via compute on a
// miss. Concurrent callers for the same key share one invocation of compute
// through singleflight.
func (m *memo) resolve(key string, compute func() Result) Result {
	if cached, ok := m.get(key); ok {
		return cached
	}
	v, _, _ := m.group.Do(key, func() (any, error) {
		if cached, ok := m.get(key); ok {
			return cached, nil
		}
		result := compute()
		m.mu.Lock()
		m.entries[key] = memoEntry{result: result}
		m.mu.Unlock()
		return result, nil
	})
	return v.(Result)
}
