package report

import (
	"strings"
	"testing"

	"github.com/eugenenazirov/confstack/internal/endpoint"
	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/merge"
	"github.com/eugenenazirov/confstack/internal/schema"
)

func strPtr(s string) *string { return &s }

func TestRenderRedactsSecrets(t *testing.T) {
	// The secret deliberately contains substrings the report uses elsewhere.
	secret := "Enabled-set-development"
	s := schema.Schema{
		"API_KEY": {Type: schema.TypeBase64Secret, Loggable: true},
		"FEATURE": {Type: schema.TypeBool, Loggable: true},
	}
	cfg := merge.FromMap(map[string]string{
		"API_KEY": secret,
		"FEATURE": "true",
	}, "env")

	out := Render(environment.Development, cfg, s, nil)

	if strings.Contains(out, secret) {
		t.Fatalf("secret value leaked into report:\n%s", out)
	}
	if !strings.Contains(out, "API_KEY: set") {
		t.Fatalf("expected is-set indicator for secret:\n%s", out)
	}
	if !strings.Contains(out, "FEATURE = true") {
		t.Fatalf("expected loggable value in report:\n%s", out)
	}
}

func TestRenderUnsetSecret(t *testing.T) {
	s := schema.Schema{"API_KEY": {Type: schema.TypeBase64Secret}}

	out := Render(environment.Production, merge.FromMap(nil, "env"), s, nil)
	if !strings.Contains(out, "API_KEY: unset") {
		t.Fatalf("expected unset indicator:\n%s", out)
	}
}

func TestRenderSkipsNonLoggableKeys(t *testing.T) {
	s := schema.Schema{"INTERNAL_TUNING": {Type: schema.TypeInt}}
	cfg := merge.FromMap(map[string]string{"INTERNAL_TUNING": "3"}, "env")

	out := Render(environment.Development, cfg, s, nil)
	if strings.Contains(out, "INTERNAL_TUNING") {
		t.Fatalf("non-loggable key appeared in report:\n%s", out)
	}
}

func TestRenderEndpointsAndOrigin(t *testing.T) {
	s := schema.Schema{
		"AUTH_URL": {Type: schema.TypeURL, Loggable: true},
		"UNSET":    schema.Rule{Type: schema.TypeString, Loggable: true},
	}
	cfg := merge.FromMap(map[string]string{"AUTH_URL": "https://auth.example.com"}, "yaml")
	decisions := map[string]endpoint.Decision{
		"auth":    {Service: "auth", Mode: endpoint.ModeLive, URL: "https://auth.example.com"},
		"storage": {Service: "storage", Mode: endpoint.ModeMocked, URL: "http://localhost:4566"},
	}

	out := Render(environment.Production, cfg, s, decisions)

	if !strings.Contains(out, "environment: production") {
		t.Fatalf("expected environment line:\n%s", out)
	}
	if !strings.Contains(out, "AUTH_URL = https://auth.example.com (from yaml)") {
		t.Fatalf("expected origin attribution:\n%s", out)
	}
	if !strings.Contains(out, "UNSET: (unset)") {
		t.Fatalf("expected unset marker for loggable key:\n%s", out)
	}
	if !strings.Contains(out, "auth: live https://auth.example.com") {
		t.Fatalf("expected live endpoint line:\n%s", out)
	}
	if !strings.Contains(out, "storage: mocked http://localhost:4566") {
		t.Fatalf("expected mocked endpoint line:\n%s", out)
	}

	// auth sorts before storage.
	if strings.Index(out, "auth: live") > strings.Index(out, "storage: mocked") {
		t.Fatalf("endpoint lines not sorted:\n%s", out)
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := schema.Schema{
		"A": {Type: schema.TypeString, Loggable: true, Default: strPtr("1")},
		"B": {Type: schema.TypeString, Loggable: true},
		"C": {Type: schema.TypeBase64Secret},
	}
	cfg := merge.FromMap(map[string]string{"A": "1", "B": "2", "C": "c2VjcmV0"}, "env")

	first := Render(environment.Development, cfg, s, nil)
	for i := 0; i < 10; i++ {
		if got := Render(environment.Development, cfg, s, nil); got != first {
			t.Fatalf("render output not deterministic:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestRenderNeverPanicsOnPartialInput(t *testing.T) {
	// Zero values everywhere; rendering startup diagnostics must not mask an
	// earlier failure by panicking.
	out := Render("", merge.Merged{}, nil, nil)
	if !strings.Contains(out, "(unresolved)") {
		t.Fatalf("expected unresolved environment marker:\n%s", out)
	}
}
