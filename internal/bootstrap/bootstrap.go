package bootstrap

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/confstack/internal/endpoint"
	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/merge"
	"github.com/eugenenazirov/confstack/internal/report"
	"github.com/eugenenazirov/confstack/internal/schema"
	"github.com/eugenenazirov/confstack/internal/snapshot"
	"github.com/eugenenazirov/confstack/internal/source"
)

// Options describes one bootstrap run: where configuration comes from, how
// the environment resolves, and the static schema and service registry.
type Options struct {
	Sources     []source.Descriptor
	Environment []environment.Option
	Schema      schema.Schema
	Registry    []endpoint.Service
}

// ValidationFailedError carries every schema violation found in one pass.
type ValidationFailedError struct {
	Environment environment.Environment
	Errors      []*schema.Error
}

func (e *ValidationFailedError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("configuration invalid for %s (%d problems): %s",
		e.Environment, len(e.Errors), strings.Join(messages, "; "))
}

// Run executes the pipeline and publishes nothing on failure: callers never
// observe a partially-validated configuration.
func Run(opts Options, logger *zap.Logger) (*snapshot.Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	layers, err := source.LoadAll(opts.Sources)
	if err != nil {
		return nil, fmt.Errorf("load configuration sources: %w", err)
	}
	for _, layer := range layers {
		logger.Debug("loaded configuration layer",
			zap.String("layer", layer.Name),
			zap.Int("priority", layer.Priority),
			zap.Int("keys", len(layer.Values)),
		)
	}

	merged := merge.Merge(layers)

	env, err := environment.Resolve(merged, opts.Environment...)
	if err != nil {
		return nil, fmt.Errorf("resolve environment: %w", err)
	}
	logger.Info("environment resolved", zap.String("environment", env.String()))

	result := schema.Validate(merged, env, opts.Schema)
	if !result.Valid() {
		return nil, &ValidationFailedError{Environment: env, Errors: result.Errors}
	}

	decisions, err := endpoint.Select(env, result.Config, opts.Registry)
	if err != nil {
		return nil, fmt.Errorf("select service endpoints: %w", err)
	}

	rendered := report.Render(env, result.Config, opts.Schema, decisions)
	snap := snapshot.New(env, result.Config, decisions, rendered)

	logger.Info("configuration resolved",
		zap.String("environment", env.String()),
		zap.Int("keys", result.Config.Len()),
		zap.Int("services", len(decisions)),
	)
	return snap, nil
}
