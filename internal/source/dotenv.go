package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DotenvFile reads a dotenv-style file (KEY=value per line). Keys are taken
// verbatim; dotenv files already live in the flat env-var key space.
type DotenvFile struct {
	name     string
	priority int
	path     string
	optional bool
}

// NewDotenvFile creates a dotenv file source. A missing optional file yields
// an empty layer.
func NewDotenvFile(name string, priority int, path string, optional bool) *DotenvFile {
	return &DotenvFile{name: name, priority: priority, path: path, optional: optional}
}

func (d *DotenvFile) Name() string { return d.name }

func (d *DotenvFile) Priority() int { return d.priority }

func (d *DotenvFile) Load() (Layer, error) {
	if _, err := os.Stat(d.path); err != nil {
		if d.optional && errors.Is(err, fs.ErrNotExist) {
			return emptyLayer(d.name, d.priority), nil
		}
		return Layer{}, &LoadError{Source: d.name, Err: fmt.Errorf("stat file: %w", err)}
	}

	values, err := godotenv.Read(d.path)
	if err != nil {
		return Layer{}, &LoadError{Source: d.name, Err: fmt.Errorf("parse dotenv %s: %w", d.path, err)}
	}
	return Layer{Name: d.name, Priority: d.priority, Values: values}, nil
}
