package schema

import "fmt"

// ErrorKind is a stable machine-readable validation error category.
type ErrorKind string

const (
	KindMissingRequiredKey ErrorKind = "missing_required_key"
	KindTypeMismatch       ErrorKind = "type_mismatch"
)

// Redacted replaces secret values wherever a raw value would otherwise appear.
const Redacted = "<redacted>"

// Error is a single validation failure. Value holds the offending raw value,
// already redacted for secret keys.
type Error struct {
	Kind     ErrorKind
	Key      string
	Expected Type
	Value    string
	Message  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingRequiredKey:
		return fmt.Sprintf("%s: required but not set", e.Key)
	case KindTypeMismatch:
		return fmt.Sprintf("%s: value %q is not a valid %s: %s", e.Key, e.Value, e.Expected, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Key, e.Message)
	}
}
