package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/confstack/internal/api"
	"github.com/eugenenazirov/confstack/internal/appconfig"
	"github.com/eugenenazirov/confstack/internal/bootstrap"
	"github.com/eugenenazirov/confstack/internal/logging"
	"github.com/eugenenazirov/confstack/internal/snapshot"
)

// App encapsulates the resolved configuration and the HTTP server exposing it.
type App struct {
	store    *snapshot.Store
	settings appconfig.Settings
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New runs the configuration bootstrap and wires the application. The
// bootstrap logger only covers the pipeline itself; once the configuration is
// resolved the logger is rebuilt from it, so the HTTP surface logs at the
// configured level and encoder. A failed bootstrap returns the error untouched
// so main can report every validation problem and refuse to start.
func New(opts bootstrap.Options, logger *zap.Logger) (*App, error) {
	snap, err := bootstrap.Run(opts, logger)
	if err != nil {
		return nil, err
	}

	settings, err := appconfig.SettingsFrom(snap.Config())
	if err != nil {
		return nil, fmt.Errorf("materialize settings: %w", err)
	}

	resolved, err := logging.New(settings.LogLevel, settings.LogDev)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	store := snapshot.NewStore()
	store.Set(snap)

	handler := api.NewHandler(store)
	router := api.NewRouter(handler, resolved,
		api.WithLogging(settings.RequestLogging),
		api.WithRateLimit(settings.RateLimitRPS, settings.RateLimitBurst),
	)

	addr := settings.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: appconfig.ReadHeaderTimeout,
		WriteTimeout:      appconfig.WriteTimeout,
		IdleTimeout:       appconfig.IdleTimeout,
	}

	return &App{
		store:    store,
		settings: settings,
		handler:  handler,
		router:   router,
		logger:   resolved,
		server:   server,
	}, nil
}

// Logger returns the logger rebuilt from the resolved configuration.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Snapshot returns the resolved configuration snapshot.
func (a *App) Snapshot() (*snapshot.Snapshot, bool) {
	return a.store.Current()
}

// Settings returns the typed server settings.
func (a *App) Settings() appconfig.Settings {
	return a.settings
}
