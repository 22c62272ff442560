// Package report renders a redacted, human-readable summary of the resolved
// configuration for startup logs. Rendering has no failure modes: it runs
// during startup diagnostics and must never mask an earlier failure by
// panicking on partial input.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eugenenazirov/confstack/internal/endpoint"
	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/merge"
	"github.com/eugenenazirov/confstack/internal/schema"
)

// Render produces a deterministic multi-line summary. Only keys the schema
// marks loggable show their value; secret keys show a set/unset indicator and
// never the value, not even partially.
func Render(env environment.Environment, cfg merge.Merged, s schema.Schema, decisions map[string]endpoint.Decision) string {
	var b strings.Builder
	b.WriteString("configuration summary\n")
	fmt.Fprintf(&b, "  environment: %s\n", envLabel(env))

	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	b.WriteString("  values:\n")
	for _, key := range keys {
		rule := s[key]
		_, present := cfg.Lookup(key)

		switch {
		case rule.IsSecret():
			fmt.Fprintf(&b, "    %s: %s\n", key, setIndicator(present))
		case !rule.Loggable:
			continue
		case !present:
			fmt.Fprintf(&b, "    %s: (unset)\n", key)
		default:
			fmt.Fprintf(&b, "    %s = %s (from %s)\n", key, cfg.Get(key), originLabel(cfg.Origin(key)))
		}
	}

	b.WriteString("  endpoints:\n")
	for _, name := range endpoint.Names(decisions) {
		d := decisions[name]
		fmt.Fprintf(&b, "    %s: %s %s\n", name, d.Mode, d.URL)
	}

	return b.String()
}

func envLabel(env environment.Environment) string {
	if env == "" {
		return "(unresolved)"
	}
	return env.String()
}

func setIndicator(present bool) string {
	if present {
		return "set"
	}
	return "unset"
}

func originLabel(origin string) string {
	if origin == "" {
		return "unknown"
	}
	return origin
}
