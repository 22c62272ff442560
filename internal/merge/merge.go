// Package merge combines loaded configuration layers into one flat key/value
// map by precedence. It performs no key transformation and no type coercion;
// interpreting values is the schema package's job.
package merge

import (
	"sort"

	"github.com/eugenenazirov/confstack/internal/source"
)

// Merged is the flat result of combining all layers. Built once per process
// start and treated as immutable thereafter; every accessor is read-only and
// safe for concurrent use.
type Merged struct {
	values map[string]string
	origin map[string]string
}

// Merge folds layers lowest to highest priority; the highest-priority layer
// defining a key wins. Layers sharing a priority resolve by their position in
// the slice (later wins), so the result is deterministic for a fixed layer
// set regardless of how the caller assembled it.
func Merge(layers []source.Layer) Merged {
	ordered := make([]source.Layer, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	values := map[string]string{}
	origin := map[string]string{}
	for _, layer := range ordered {
		for key, value := range layer.Values {
			values[key] = value
			origin[key] = layer.Name
		}
	}
	return Merged{values: values, origin: origin}
}

// FromMap builds a Merged directly from a flat map, attributing every key to
// the given origin. Intended for tests and in-process construction.
func FromMap(values map[string]string, originName string) Merged {
	copied := make(map[string]string, len(values))
	origin := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
		origin[k] = originName
	}
	return Merged{values: copied, origin: origin}
}

// Get returns the value for key, or the empty string when absent.
func (m Merged) Get(key string) string {
	return m.values[key]
}

// Lookup returns the value for key and whether it is present.
func (m Merged) Lookup(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m Merged) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Origin names the layer that supplied the current value for key.
func (m Merged) Origin(key string) string {
	return m.origin[key]
}

// Keys returns every present key in sorted order.
func (m Merged) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of present keys.
func (m Merged) Len() int {
	return len(m.values)
}

// WithDefaults returns a copy of m where every absent key from defaults is
// filled in, attributed to the "default" origin. Present keys are untouched.
func (m Merged) WithDefaults(defaults map[string]string) Merged {
	values := make(map[string]string, len(m.values)+len(defaults))
	origin := make(map[string]string, len(m.origin)+len(defaults))
	for k, v := range m.values {
		values[k] = v
		origin[k] = m.origin[k]
	}
	for k, v := range defaults {
		if _, ok := values[k]; ok {
			continue
		}
		values[k] = v
		origin[k] = "default"
	}
	return Merged{values: values, origin: origin}
}
