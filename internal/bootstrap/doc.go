// Package bootstrap runs the configuration pipeline once at process start:
// load sources, merge layers, resolve the environment, validate against the
// schema, select service endpoints, and render the startup report. Source and
// environment errors abort immediately; an invalid configuration is returned
// as a single error carrying every violation, and callers must treat it as
// fatal rather than start serving traffic.
package bootstrap
