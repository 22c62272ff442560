package source

import (
	"os"
	"strings"
)

// Env reads the process environment. With a prefix configured, only variables
// carrying the prefix are included and the prefix is stripped, so CONFSTACK_
// deployments can namespace their variables without changing the schema.
type Env struct {
	name     string
	priority int
	prefix   string

	// environ overrides os.Environ, primarily for tests.
	environ func() []string
}

// EnvOption configures an Env source.
type EnvOption func(*Env)

// WithPrefix restricts the source to variables starting with prefix and
// strips the prefix from resulting keys.
func WithPrefix(prefix string) EnvOption {
	return func(e *Env) {
		e.prefix = prefix
	}
}

// WithEnviron overrides the environment snapshot function, primarily for tests.
func WithEnviron(environ func() []string) EnvOption {
	return func(e *Env) {
		e.environ = environ
	}
}

// NewEnv creates a process-environment source.
func NewEnv(name string, priority int, opts ...EnvOption) *Env {
	e := &Env{name: name, priority: priority, environ: os.Environ}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Env) Name() string { return e.name }

func (e *Env) Priority() int { return e.priority }

// Load snapshots the process environment. It never fails.
func (e *Env) Load() (Layer, error) {
	values := map[string]string{}
	for _, entry := range e.environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		if e.prefix != "" {
			if !strings.HasPrefix(key, e.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, e.prefix)
			if key == "" {
				continue
			}
		}
		values[key] = value
	}
	return Layer{Name: e.name, Priority: e.priority, Values: values}, nil
}
