// Package snapshot holds the resolved configuration as process-wide read-only
// state. A snapshot is built once during bootstrap; any future reload must
// replace the whole snapshot atomically rather than mutate it in place, which
// keeps readers lock-free.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/eugenenazirov/confstack/internal/endpoint"
	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/merge"
)

// Snapshot is the immutable result of a successful bootstrap run.
type Snapshot struct {
	env        environment.Environment
	config     merge.Merged
	decisions  map[string]endpoint.Decision
	report     string
	resolvedAt time.Time
}

// New builds a snapshot. The decisions map is copied, so the caller may keep
// mutating its own copy without affecting readers.
func New(env environment.Environment, cfg merge.Merged, decisions map[string]endpoint.Decision, report string) *Snapshot {
	copied := make(map[string]endpoint.Decision, len(decisions))
	for name, d := range decisions {
		copied[name] = d
	}
	return &Snapshot{
		env:        env,
		config:     cfg,
		decisions:  copied,
		report:     report,
		resolvedAt: time.Now().UTC(),
	}
}

// Environment returns the active environment.
func (s *Snapshot) Environment() environment.Environment { return s.env }

// Config returns the validated merged configuration.
func (s *Snapshot) Config() merge.Merged { return s.config }

// Decision returns the endpoint decision for the named service.
func (s *Snapshot) Decision(service string) (endpoint.Decision, bool) {
	d, ok := s.decisions[service]
	return d, ok
}

// Decisions returns a copy of all endpoint decisions.
func (s *Snapshot) Decisions() map[string]endpoint.Decision {
	out := make(map[string]endpoint.Decision, len(s.decisions))
	for name, d := range s.decisions {
		out[name] = d
	}
	return out
}

// Report returns the redacted diagnostics summary rendered at bootstrap.
func (s *Snapshot) Report() string { return s.report }

// ResolvedAt returns when the snapshot was built.
func (s *Snapshot) ResolvedAt() time.Time { return s.resolvedAt }

// Store is the process-lifetime handle to the current snapshot. Readers never
// lock; writers swap the whole snapshot pointer.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set publishes snap as the current snapshot.
func (s *Store) Set(snap *Snapshot) {
	s.current.Store(snap)
}

// Current returns the published snapshot, if any.
func (s *Store) Current() (*Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}
