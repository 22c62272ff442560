// Package application provides application initialization and dependency
// wiring. It runs the configuration bootstrap, publishes the resolved
// snapshot, and assembles the HTTP server, keeping the main package focused
// on CLI parsing and orchestration.
package application
