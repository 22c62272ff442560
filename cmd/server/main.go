package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/confstack/internal/appconfig"
	"github.com/eugenenazirov/confstack/internal/application"
	"github.com/eugenenazirov/confstack/internal/bootstrap"
	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("confstack", "Environment-aware configuration resolver - validates layered configuration and serves the resolved snapshot")
	yamlPath := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	tomlPath := kingpinApp.Flag("toml-config", "Path to TOML configuration file").String()
	dotenvPath := kingpinApp.Flag("env-file", "Path to dotenv file (default .env, optional)").String()
	envPrefix := kingpinApp.Flag("env-prefix", "Only read process environment variables with this prefix (stripped)").String()
	defaultEnv := kingpinApp.Flag("default-env", "Fall back to development when no environment tag is set").Bool()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	logger, err := logging.Bootstrap()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	opts := bootstrap.Options{
		Sources: appconfig.Sources(appconfig.SourceOptions{
			YAMLPath:   *yamlPath,
			TOMLPath:   *tomlPath,
			DotenvPath: *dotenvPath,
			EnvPrefix:  *envPrefix,
		}),
		Schema:   appconfig.Schema(),
		Registry: appconfig.Registry(),
	}
	if *defaultEnv {
		opts.Environment = append(opts.Environment, environment.WithDefault(environment.Development))
	}

	app, err := application.New(opts, logger)
	if err != nil {
		exitInvalid(logger, err)
	}

	_ = logger.Sync()
	logger = app.Logger()
	defer func() {
		_ = logger.Sync()
	}()

	if snap, ok := app.Snapshot(); ok {
		logger.Info("startup configuration\n" + snap.Report())
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), appconfig.ShutdownGracePeriod, logger)
}

// exitInvalid prints every configuration problem and refuses to start. A
// partially-configured process must never come up serving traffic.
func exitInvalid(logger *zap.Logger, err error) {
	var invalid *bootstrap.ValidationFailedError
	if errors.As(err, &invalid) {
		for _, verr := range invalid.Errors {
			logger.Error("configuration error",
				zap.String("kind", string(verr.Kind)),
				zap.String("key", verr.Key),
				zap.String("error", verr.Error()),
			)
		}
		logger.Error("refusing to start with invalid configuration",
			zap.String("environment", invalid.Environment.String()),
			zap.Int("problems", len(invalid.Errors)),
		)
	} else {
		logger.Error("failed to resolve configuration", zap.Error(err))
	}
	_ = logger.Sync()
	os.Exit(1)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
