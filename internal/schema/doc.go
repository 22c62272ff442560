// Package schema declares the static configuration schema and validates a
// merged configuration against it for the active environment. Validation is
// all-or-nothing: every violation across every key is collected in a single
// pass, and a configuration with any violation never reaches callers.
package schema
