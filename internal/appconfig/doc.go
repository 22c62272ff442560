// Package appconfig is the application's static configuration definition: the
// schema of known keys, the registry of external services with their local
// emulator addresses, the layer set the bootstrap loads, and typed settings
// for wiring the HTTP server. Everything here is compile-time data; nothing
// is derived at runtime.
package appconfig
