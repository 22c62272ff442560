package appconfig

import (
	"github.com/eugenenazirov/confstack/internal/endpoint"
	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/schema"
	"github.com/eugenenazirov/confstack/internal/source"
)

// Configuration keys known to the application.
const (
	KeyAppEnv = environment.Key

	KeyLogLevel       = "LOG_LEVEL"
	KeyLogDev         = "LOG_DEV"
	KeyServerPort     = "SERVER_PORT"
	KeyRequestLogging = "SERVER_REQUEST_LOGGING"
	KeyRateLimitRPS   = "RATE_LIMIT_RPS"
	KeyRateLimitBurst = "RATE_LIMIT_BURST"

	KeyAuthURL     = "AUTH_URL"
	KeyAuthMockURL = "AUTH_MOCK_URL"
	KeyAuthUseMock = "AUTH_USE_MOCK"
	KeyAuthAPIKey  = "AUTH_API_KEY"

	KeyStorageURL     = "STORAGE_URL"
	KeyStorageMockURL = "STORAGE_MOCK_URL"
	KeyStorageUseMock = "STORAGE_USE_MOCK"
	KeyStorageBucket  = "STORAGE_BUCKET"

	KeyQueueURL     = "QUEUE_URL"
	KeyQueueMockURL = "QUEUE_MOCK_URL"
	KeyQueueUseMock = "QUEUE_USE_MOCK"

	KeyCacheURL     = "CACHE_URL"
	KeyCacheMockURL = "CACHE_MOCK_URL"
	KeyCacheUseMock = "CACHE_USE_MOCK"

	KeySessionSecret  = "SESSION_SECRET"
	KeyFeatureUploads = "FEATURE_UPLOADS"
)

// External service names used by the endpoint registry.
const (
	ServiceAuth    = "auth"
	ServiceStorage = "storage"
	ServiceQueue   = "queue"
	ServiceCache   = "cache"
)

// Layer priorities, lowest to highest precedence.
const (
	PriorityDefaults = 0
	PriorityYAML     = 10
	PriorityTOML     = 20
	PriorityDotenv   = 30
	PriorityEnv      = 40
)

// Schema returns the application schema. A fresh map is returned on every
// call so callers can extend their copy without affecting others.
func Schema() schema.Schema {
	prodOnly := []environment.Environment{environment.Production}

	return schema.Schema{
		KeyAppEnv: {Type: schema.TypeString, Loggable: true,
			Description: "active environment tag (development or production)"},

		KeyLogLevel: schema.Rule{Type: schema.TypeString, Loggable: true,
			Description: "zap log level"}.DefaultValue("info"),
		KeyLogDev: schema.Rule{Type: schema.TypeBool, Loggable: true,
			Description: "use the zap development encoder"}.DefaultValue("false"),
		KeyServerPort: schema.Rule{Type: schema.TypeInt, Loggable: true,
			Description: "HTTP port exposed by the diagnostics server"}.DefaultValue("8080"),
		KeyRequestLogging: schema.Rule{Type: schema.TypeBool, Loggable: true,
			Description: "emit per-request access logs"}.DefaultValue("true"),
		KeyRateLimitRPS: schema.Rule{Type: schema.TypeInt, Loggable: true,
			Description: "requests per second allowed on the HTTP surface"}.DefaultValue("25"),
		KeyRateLimitBurst: schema.Rule{Type: schema.TypeInt, Loggable: true,
			Description: "burst capacity for the rate limiter"}.DefaultValue("50"),

		KeyAuthURL: {Type: schema.TypeURL, RequiredIn: prodOnly, Loggable: true,
			Description: "identity provider endpoint"},
		KeyAuthMockURL: {Type: schema.TypeURL, Loggable: true,
			Description: "identity provider emulator endpoint"},
		KeyAuthUseMock: {Type: schema.TypeBool,
			Description: "target the identity provider emulator in development"},
		KeyAuthAPIKey: {Type: schema.TypeBase64Secret, RequiredIn: prodOnly,
			Description: "identity provider API key"},

		KeyStorageURL: {Type: schema.TypeURL, RequiredIn: prodOnly, Loggable: true,
			Description: "object storage endpoint"},
		KeyStorageMockURL: {Type: schema.TypeURL, Loggable: true,
			Description: "object storage emulator endpoint"},
		KeyStorageUseMock: {Type: schema.TypeBool,
			Description: "target the object storage emulator in development"},
		KeyStorageBucket: {Type: schema.TypeString, RequiredIn: prodOnly, Loggable: true,
			Description: "bucket holding uploaded objects"},

		KeyQueueURL: {Type: schema.TypeURL, RequiredIn: prodOnly, Loggable: true,
			Description: "message queue endpoint"},
		KeyQueueMockURL: {Type: schema.TypeURL, Loggable: true,
			Description: "message queue emulator endpoint"},
		KeyQueueUseMock: {Type: schema.TypeBool,
			Description: "target the message queue emulator in development"},

		KeyCacheURL: {Type: schema.TypeURL, RequiredIn: prodOnly, Loggable: true,
			Description: "cache endpoint"},
		KeyCacheMockURL: {Type: schema.TypeURL, Loggable: true,
			Description: "local cache endpoint"},
		KeyCacheUseMock: {Type: schema.TypeBool,
			Description: "target the local cache in development"},

		KeySessionSecret: {Type: schema.TypeBase64Secret, RequiredIn: prodOnly,
			Description: "session signing secret"},
		KeyFeatureUploads: schema.Rule{Type: schema.TypeBool, Loggable: true,
			Description: "enable the uploads feature"}.DefaultValue("true"),
	}
}

// Registry returns the static service registry consumed by the endpoint
// selector.
func Registry() []endpoint.Service {
	return []endpoint.Service{
		{Name: ServiceAuth, LiveKey: KeyAuthURL, MockKey: KeyAuthMockURL, UseMockKey: KeyAuthUseMock},
		{Name: ServiceStorage, LiveKey: KeyStorageURL, MockKey: KeyStorageMockURL, UseMockKey: KeyStorageUseMock},
		{Name: ServiceQueue, LiveKey: KeyQueueURL, MockKey: KeyQueueMockURL, UseMockKey: KeyQueueUseMock},
		{Name: ServiceCache, LiveKey: KeyCacheURL, MockKey: KeyCacheMockURL, UseMockKey: KeyCacheUseMock},
	}
}

// Defaults returns the built-in defaults layer: the standard local emulator
// addresses a development checkout works against out of the box.
func Defaults() map[string]string {
	return map[string]string{
		KeyAuthMockURL:    "http://localhost:9099",
		KeyStorageMockURL: "http://localhost:4566",
		KeyQueueMockURL:   "http://localhost:4566",
		KeyCacheMockURL:   "redis://localhost:6379",
	}
}

// SourceOptions selects which external sources participate in a bootstrap.
type SourceOptions struct {
	// YAMLPath and TOMLPath are override files; when set explicitly they
	// must exist and parse.
	YAMLPath string
	TOMLPath string
	// DotenvPath defaults to ".env" and is optional: an absent file yields
	// an empty layer.
	DotenvPath string
	// EnvPrefix optionally restricts process environment variables to a
	// prefixed namespace, with the prefix stripped.
	EnvPrefix string
}

// Sources assembles the application's layer set, lowest to highest
// precedence: built-in defaults, YAML file, TOML file, dotenv file, process
// environment.
func Sources(opts SourceOptions) []source.Descriptor {
	descriptors := []source.Descriptor{
		source.NewDefaults("defaults", PriorityDefaults, Defaults()),
	}
	if opts.YAMLPath != "" {
		descriptors = append(descriptors, source.NewYAMLFile("yaml", PriorityYAML, opts.YAMLPath, false))
	}
	if opts.TOMLPath != "" {
		descriptors = append(descriptors, source.NewTOMLFile("toml", PriorityTOML, opts.TOMLPath, false))
	}

	dotenvPath := opts.DotenvPath
	if dotenvPath == "" {
		dotenvPath = ".env"
	}
	descriptors = append(descriptors, source.NewDotenvFile("dotenv", PriorityDotenv, dotenvPath, true))

	envOpts := []source.EnvOption{}
	if opts.EnvPrefix != "" {
		envOpts = append(envOpts, source.WithPrefix(opts.EnvPrefix))
	}
	descriptors = append(descriptors, source.NewEnv("env", PriorityEnv, envOpts...))

	return descriptors
}
