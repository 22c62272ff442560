// Package endpoint decides, per external service, whether clients should
// target a local mock endpoint or a live one. Selection is a pure function of
// the resolved environment and the validated configuration; it computes
// addresses and never opens connections.
package endpoint

import (
	"fmt"
	"sort"

	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/merge"
	"github.com/eugenenazirov/confstack/internal/schema"
)

// Mode distinguishes live endpoints from locally mocked ones.
type Mode string

const (
	ModeLive   Mode = "live"
	ModeMocked Mode = "mocked"
)

// DefaultMockAddr is the standard local emulator address used when a service
// registers no mock endpoint of its own and none is configured.
const DefaultMockAddr = "http://localhost:4566"

// Service is one entry in the static service registry.
type Service struct {
	Name string
	// LiveKey holds the live endpoint URL; consulted outside development
	// or when mocking is explicitly disabled.
	LiveKey string
	// MockKey optionally holds the mock endpoint URL for development.
	MockKey string
	// UseMockKey optionally names a boolean key that disables mocking in
	// development when set to false. Unset means mocking is implied by the
	// development environment.
	UseMockKey string
	// DefaultMockAddr overrides the package-wide DefaultMockAddr for this
	// service.
	DefaultMockAddr string
}

// Decision is the resolved target for one service.
type Decision struct {
	Service string
	Mode    Mode
	URL     string
}

// MissingEndpointError reports a live decision with no endpoint configured.
// Schema validation normally catches this earlier; the selector re-checks so
// a live service can never come up pointed at nothing.
type MissingEndpointError struct {
	Service string
	Key     string
}

func (e *MissingEndpointError) Error() string {
	return fmt.Sprintf("service %s: live endpoint key %s is not set", e.Service, e.Key)
}

// Select derives one Decision per registered service. It is idempotent and
// side-effect-free: identical inputs always produce identical decisions.
func Select(env environment.Environment, cfg merge.Merged, registry []Service) (map[string]Decision, error) {
	decisions := make(map[string]Decision, len(registry))
	for _, svc := range registry {
		decision, err := selectOne(env, cfg, svc)
		if err != nil {
			return nil, err
		}
		decisions[svc.Name] = decision
	}
	return decisions, nil
}

func selectOne(env environment.Environment, cfg merge.Merged, svc Service) (Decision, error) {
	useMock := env == environment.Development
	if useMock && svc.UseMockKey != "" {
		if raw, ok := cfg.Lookup(svc.UseMockKey); ok {
			enabled, err := schema.ParseBool(raw)
			// An unparsable flag keeps the environment-implied choice;
			// validation owns rejecting the value.
			if err == nil {
				useMock = enabled
			}
		}
	}

	if useMock {
		addr := cfg.Get(svc.MockKey)
		if addr == "" {
			addr = svc.DefaultMockAddr
		}
		if addr == "" {
			addr = DefaultMockAddr
		}
		return Decision{Service: svc.Name, Mode: ModeMocked, URL: addr}, nil
	}

	addr, ok := cfg.Lookup(svc.LiveKey)
	if !ok || addr == "" {
		return Decision{}, &MissingEndpointError{Service: svc.Name, Key: svc.LiveKey}
	}
	return Decision{Service: svc.Name, Mode: ModeLive, URL: addr}, nil
}

// Names returns the registered service names in sorted order.
func Names(decisions map[string]Decision) []string {
	names := make([]string, 0, len(decisions))
	for name := range decisions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
