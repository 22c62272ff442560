package appconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/eugenenazirov/confstack/internal/merge"
	"github.com/eugenenazirov/confstack/internal/schema"
)

// Server timeouts are fixed; only the values the operator actually tunes go
// through the schema.
const (
	ShutdownGracePeriod = 10 * time.Second
	ReadHeaderTimeout   = 5 * time.Second
	WriteTimeout        = 15 * time.Second
	IdleTimeout         = 60 * time.Second
)

// Settings are the typed server settings materialized from a validated
// configuration.
type Settings struct {
	Port           string
	RequestLogging bool
	RateLimitRPS   float64
	RateLimitBurst int
	LogLevel       string
	LogDev         bool
}

// SettingsFrom extracts typed settings from an already-validated
// configuration. Parse failures here indicate a schema/consumer mismatch, not
// operator error, and are surfaced rather than papered over.
func SettingsFrom(cfg merge.Merged) (Settings, error) {
	port, err := strconv.Atoi(cfg.Get(KeyServerPort))
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", KeyServerPort, err)
	}

	requestLogging, err := schema.ParseBool(cfg.Get(KeyRequestLogging))
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", KeyRequestLogging, err)
	}

	rps, err := strconv.Atoi(cfg.Get(KeyRateLimitRPS))
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", KeyRateLimitRPS, err)
	}

	burst, err := strconv.Atoi(cfg.Get(KeyRateLimitBurst))
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", KeyRateLimitBurst, err)
	}

	logDev, err := schema.ParseBool(cfg.Get(KeyLogDev))
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", KeyLogDev, err)
	}

	return Settings{
		Port:           strconv.Itoa(port),
		RequestLogging: requestLogging,
		RateLimitRPS:   float64(rps),
		RateLimitBurst: burst,
		LogLevel:       cfg.Get(KeyLogLevel),
		LogDev:         logDev,
	}, nil
}
