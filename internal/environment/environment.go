// Package environment resolves and normalizes the active environment tag.
// Exactly one environment is active per process lifetime; resolution happens
// once, before schema validation, and a tag that cannot be resolved is a hard
// error rather than a silent default.
package environment

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/confstack/internal/merge"
)

// Environment is the active deployment environment tag.
type Environment string

const (
	// Development targets local emulators and mocked service endpoints.
	Development Environment = "development"
	// Production targets live external services.
	Production Environment = "production"
)

// Key is the designated configuration key holding the environment tag.
const Key = "APP_ENV"

// UnresolvedError reports a missing or unrecognized environment tag.
type UnresolvedError struct {
	Key   string
	Token string
}

func (e *UnresolvedError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("environment key %s is not set and no default is configured", e.Key)
	}
	return fmt.Sprintf("unrecognized environment tag %q for key %s (expected one of: development, production)", e.Token, e.Key)
}

// Parse normalizes a raw tag (case and surrounding whitespace are ignored)
// and maps it onto the closed environment set. Common shorthands are
// accepted: dev, devel, local for development; prod, live for production.
func Parse(token string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "development", "develop", "devel", "dev", "local":
		return Development, nil
	case "production", "prod", "live":
		return Production, nil
	default:
		return "", &UnresolvedError{Key: Key, Token: token}
	}
}

func (e Environment) String() string { return string(e) }

type resolver struct {
	key        string
	fallback   Environment
	hasDefault bool
}

// Option configures Resolve.
type Option func(*resolver)

// WithKey overrides the configuration key consulted for the environment tag.
func WithKey(key string) Option {
	return func(r *resolver) {
		r.key = key
	}
}

// WithDefault makes an absent tag resolve to env instead of failing. The
// fallback applies only when the key is missing entirely; a present but
// unrecognized tag still fails, so a typo can never flip the environment.
func WithDefault(env Environment) Option {
	return func(r *resolver) {
		r.fallback = env
		r.hasDefault = true
	}
}

// Resolve reads the environment tag from the merged configuration. Layer
// precedence has already been applied by the merger, so disagreeing layers
// resolve exactly like any other key conflict.
func Resolve(cfg merge.Merged, opts ...Option) (Environment, error) {
	r := resolver{key: Key}
	for _, opt := range opts {
		opt(&r)
	}

	token, ok := cfg.Lookup(r.key)
	if !ok || strings.TrimSpace(token) == "" {
		if r.hasDefault {
			return r.fallback, nil
		}
		return "", &UnresolvedError{Key: r.key}
	}

	env, err := Parse(token)
	if err != nil {
		return "", &UnresolvedError{Key: r.key, Token: token}
	}
	return env, nil
}
