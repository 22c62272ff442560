package schema

import (
	"github.com/eugenenazirov/confstack/internal/environment"
)

// Type is the declared value type of a configuration key.
type Type string

const (
	TypeString Type = "string"
	TypeBool   Type = "bool"
	TypeInt    Type = "int"
	TypeURL    Type = "url"
	// TypeBase64Secret is a base64-encoded secret; values of this type are
	// never echoed in errors or diagnostics.
	TypeBase64Secret Type = "base64-secret"
)

// Rule declares the constraints for a single configuration key.
type Rule struct {
	Type Type
	// RequiredIn lists the environments in which the key must be present
	// (or carry a default). Empty means optional everywhere.
	RequiredIn []environment.Environment
	// Default, when non-nil, is materialized into the validated
	// configuration for absent keys and satisfies RequiredIn.
	Default *string
	// Secret marks values that must be redacted in every human-visible
	// output. TypeBase64Secret keys are secret regardless of this flag.
	Secret bool
	// Loggable allows the diagnostics reporter to print the value.
	Loggable    bool
	Description string
}

// Schema maps configuration keys to their rules. It is defined statically by
// the application; keys absent from the schema pass through unvalidated.
type Schema map[string]Rule

// RequiredFor reports whether the rule makes its key mandatory in env.
func (r Rule) RequiredFor(env environment.Environment) bool {
	for _, e := range r.RequiredIn {
		if e == env {
			return true
		}
	}
	return false
}

// IsSecret reports whether values for this rule must be redacted.
func (r Rule) IsSecret() bool {
	return r.Secret || r.Type == TypeBase64Secret
}

// DefaultValue returns a copy of the rule with the given default. Convenience
// for building schema literals.
func (r Rule) DefaultValue(v string) Rule {
	r.Default = &v
	return r
}
