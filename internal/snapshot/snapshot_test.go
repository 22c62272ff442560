package snapshot

import (
	"testing"

	"github.com/eugenenazirov/confstack/internal/endpoint"
	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/merge"
)

func newTestSnapshot() *Snapshot {
	decisions := map[string]endpoint.Decision{
		"auth": {Service: "auth", Mode: endpoint.ModeMocked, URL: "http://localhost:9099"},
	}
	cfg := merge.FromMap(map[string]string{"APP_ENV": "development"}, "env")
	return New(environment.Development, cfg, decisions, "report text")
}

func TestSnapshotAccessors(t *testing.T) {
	snap := newTestSnapshot()

	if snap.Environment() != environment.Development {
		t.Fatalf("unexpected environment: %s", snap.Environment())
	}
	if snap.Config().Get("APP_ENV") != "development" {
		t.Fatalf("unexpected config value")
	}
	if snap.Report() != "report text" {
		t.Fatalf("unexpected report: %q", snap.Report())
	}
	if snap.ResolvedAt().IsZero() {
		t.Fatalf("expected resolution timestamp")
	}

	d, ok := snap.Decision("auth")
	if !ok || d.URL != "http://localhost:9099" {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if _, ok := snap.Decision("unknown"); ok {
		t.Fatalf("expected miss for unknown service")
	}
}

func TestSnapshotCopiesDecisions(t *testing.T) {
	decisions := map[string]endpoint.Decision{
		"auth": {Service: "auth", Mode: endpoint.ModeLive, URL: "https://auth.example.com"},
	}
	snap := New(environment.Production, merge.Merged{}, decisions, "")

	decisions["auth"] = endpoint.Decision{Service: "auth", Mode: endpoint.ModeMocked, URL: "tampered"}
	if d, _ := snap.Decision("auth"); d.URL == "tampered" {
		t.Fatalf("caller mutation leaked into snapshot")
	}

	out := snap.Decisions()
	out["auth"] = endpoint.Decision{Service: "auth", URL: "tampered"}
	if d, _ := snap.Decision("auth"); d.URL == "tampered" {
		t.Fatalf("accessor copy mutation leaked into snapshot")
	}
}

func TestStore(t *testing.T) {
	store := NewStore()

	if _, ok := store.Current(); ok {
		t.Fatalf("empty store must report no snapshot")
	}

	snap := newTestSnapshot()
	store.Set(snap)

	current, ok := store.Current()
	if !ok || current != snap {
		t.Fatalf("expected published snapshot, got %+v", current)
	}

	replacement := newTestSnapshot()
	store.Set(replacement)
	if current, _ := store.Current(); current != replacement {
		t.Fatalf("expected whole-snapshot replacement")
	}
}
