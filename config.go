package relay

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the process-wide router configuration. Read-only after New.
type Config struct {
	// Roots are the base directories an external loader discovers handler
	// modules from. The router carries them as opaque configuration.
	Roots []string

	// Debug controls whether normalized failures include the stack field.
	// Off by default so internals are not leaked in production.
	Debug bool
}

// envPrefix namespaces the environment variables ConfigFromEnv reads,
// e.g. RELAY_DEBUG=true, RELAY_ROOTS=./handlers,./vendor-handlers.
const envPrefix = "RELAY_"

// ConfigFromEnv loads Config from RELAY_-prefixed environment variables.
// A .env file in the working directory is loaded first when present.
func ConfigFromEnv() (Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Config{Debug: k.Bool("debug")}
	for _, root := range strings.Split(k.String("roots"), ",") {
		if root = strings.TrimSpace(root); root != "" {
			cfg.Roots = append(cfg.Roots, root)
		}
	}
	return cfg, nil
}

// WithConfig replaces the router configuration.
func WithConfig(cfg Config) Option {
	return func(r *Router) {
		r.cfg = cfg
	}
}

// WithDebug toggles debug mode, which exposes stack traces in normalized
// failures.
func WithDebug(debug bool) Option {
	return func(r *Router) {
		r.cfg.Debug = debug
	}
}

// WithRoots sets the handler discovery roots.
func WithRoots(roots ...string) Option {
	return func(r *Router) {
		r.cfg.Roots = roots
	}
}
