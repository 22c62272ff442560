package schema

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/merge"
)

// Result is the outcome of validating a merged configuration. It is either
// fully valid (Config holds the configuration with defaults materialized) or
// invalid (Errors lists every violation); never partially valid.
type Result struct {
	Config merge.Merged
	Errors []*Error
}

// Valid reports whether the configuration passed every rule.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Validate checks cfg against the schema for the active environment.
// Violations are accumulated across all keys so one run surfaces the complete
// list of problems; errors are ordered by key for deterministic output.
func Validate(cfg merge.Merged, env environment.Environment, s Schema) Result {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []*Error
	defaults := map[string]string{}
	for _, key := range keys {
		rule := s[key]
		raw, present := cfg.Lookup(key)
		if !present {
			if rule.Default != nil {
				// A declared default is type-checked like any supplied value.
				if err := coerce(rule.Type, *rule.Default); err != nil {
					value := *rule.Default
					if rule.IsSecret() {
						value = Redacted
					}
					errs = append(errs, &Error{
						Kind:     KindTypeMismatch,
						Key:      key,
						Expected: rule.Type,
						Value:    value,
						Message:  fmt.Sprintf("default value: %s", err),
					})
					continue
				}
				defaults[key] = *rule.Default
				continue
			}
			if rule.RequiredFor(env) {
				errs = append(errs, &Error{
					Kind:     KindMissingRequiredKey,
					Key:      key,
					Expected: rule.Type,
					Message:  fmt.Sprintf("required in %s", env),
				})
			}
			continue
		}

		if err := coerce(rule.Type, raw); err != nil {
			value := raw
			if rule.IsSecret() {
				value = Redacted
			}
			errs = append(errs, &Error{
				Kind:     KindTypeMismatch,
				Key:      key,
				Expected: rule.Type,
				Value:    value,
				Message:  err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Config: cfg.WithDefaults(defaults)}
}

// coerce checks that raw parses as the declared type. The merged
// configuration keeps raw strings; coercion here is a gate, with typed access
// left to consumers of an already-validated configuration.
func coerce(t Type, raw string) error {
	switch t {
	case TypeString, "":
		return nil
	case TypeBool:
		_, err := ParseBool(raw)
		return err
	case TypeInt:
		_, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("not an integer")
		}
		return nil
	case TypeURL:
		return checkURL(raw)
	case TypeBase64Secret:
		return checkBase64(raw)
	default:
		return fmt.Errorf("unknown schema type %q", t)
	}
}

// ParseBool accepts the strconv forms plus yes/no/on/off, case-insensitive.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("not a boolean")
	}
	return v, nil
}

func checkURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("not a valid URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("URL must include scheme and host")
	}
	return nil
}

func checkBase64(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("empty secret")
	}
	if _, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		return nil
	}
	if _, err := base64.RawStdEncoding.DecodeString(trimmed); err == nil {
		return nil
	}
	return fmt.Errorf("not valid base64")
}
