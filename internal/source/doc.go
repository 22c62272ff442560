// Package source reads raw configuration key/value layers from their backing
// stores (built-in defaults, YAML/TOML override files, dotenv files, the
// process environment) without interpreting values. Each layer carries a
// priority rank consumed by the merger; precedence itself is not applied here.
package source
