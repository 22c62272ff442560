package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// YAMLFile reads a YAML document and flattens it into canonical keys.
type YAMLFile struct {
	name     string
	priority int
	path     string
	optional bool
}

// NewYAMLFile creates a YAML file source. When optional is true, a missing
// file yields an empty layer instead of an error; a malformed file is always
// an error.
func NewYAMLFile(name string, priority int, path string, optional bool) *YAMLFile {
	return &YAMLFile{name: name, priority: priority, path: path, optional: optional}
}

func (y *YAMLFile) Name() string { return y.name }

func (y *YAMLFile) Priority() int { return y.priority }

func (y *YAMLFile) Load() (Layer, error) {
	data, ok, err := readSourceFile(y.name, y.path, y.optional)
	if err != nil {
		return Layer{}, err
	}
	if !ok {
		return emptyLayer(y.name, y.priority), nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Layer{}, &LoadError{Source: y.name, Err: fmt.Errorf("parse YAML %s: %w", y.path, err)}
	}

	values, err := flattenDocument(doc)
	if err != nil {
		return Layer{}, &LoadError{Source: y.name, Err: err}
	}
	return Layer{Name: y.name, Priority: y.priority, Values: values}, nil
}

// TOMLFile reads a TOML document and flattens it into canonical keys.
type TOMLFile struct {
	name     string
	priority int
	path     string
	optional bool
}

// NewTOMLFile creates a TOML file source with the same missing-file policy as
// NewYAMLFile.
func NewTOMLFile(name string, priority int, path string, optional bool) *TOMLFile {
	return &TOMLFile{name: name, priority: priority, path: path, optional: optional}
}

func (t *TOMLFile) Name() string { return t.name }

func (t *TOMLFile) Priority() int { return t.priority }

func (t *TOMLFile) Load() (Layer, error) {
	data, ok, err := readSourceFile(t.name, t.path, t.optional)
	if err != nil {
		return Layer{}, err
	}
	if !ok {
		return emptyLayer(t.name, t.priority), nil
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Layer{}, &LoadError{Source: t.name, Err: fmt.Errorf("parse TOML %s: %w", t.path, err)}
	}

	values, err := flattenDocument(doc)
	if err != nil {
		return Layer{}, &LoadError{Source: t.name, Err: err}
	}
	return Layer{Name: t.name, Priority: t.priority, Values: values}, nil
}

// readSourceFile reads path and reports whether content was present. A missing
// optional file reports false without error.
func readSourceFile(source, path string, optional bool) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &LoadError{Source: source, Err: fmt.Errorf("read file: %w", err)}
	}
	return data, true, nil
}
