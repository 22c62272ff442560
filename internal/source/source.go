package source

import (
	"fmt"
	"sort"
)

// Layer is one named source of raw key/value pairs with a precedence rank.
// A Layer is immutable once loaded; higher priority wins on merge conflicts.
type Layer struct {
	Name     string
	Priority int
	Values   map[string]string
}

// Descriptor identifies a configuration source and how to read it.
type Descriptor interface {
	Name() string
	Priority() int
	Load() (Layer, error)
}

// LoadError reports an unreadable or malformed configuration source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load source %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadAll reads every descriptor and returns the resulting layers ordered
// lowest to highest priority. Descriptors sharing a priority keep their
// declaration order, so the result never depends on map iteration order.
// The first failing source aborts the load.
func LoadAll(descriptors []Descriptor) ([]Layer, error) {
	layers := make([]Layer, 0, len(descriptors))
	for _, d := range descriptors {
		layer, err := d.Load()
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].Priority < layers[j].Priority
	})
	return layers, nil
}

func emptyLayer(name string, priority int) Layer {
	return Layer{Name: name, Priority: priority, Values: map[string]string{}}
}
