package pomdep

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures resolution behavior.
type Option func(*resolverConfig) error

// resolverConfig holds all resolution configuration.
type resolverConfig struct {
	rootConfiguration string
	includedScopes    map[Scope]bool
	failures          FailureReporter
	maxDepth          int

	// logger is the structured logger for debug/info output.
	// If nil, logging is disabled (silent mode). slog keeps the frontend
	// stable while letting callers plug in any backend via handlers.
	logger *slog.Logger
}

const defaultMaxDepth = 100

// WithRootConfiguration sets the configuration on the root component that
// resolution starts from. Defaults to "compile".
func WithRootConfiguration(name string) Option {
	return func(c *resolverConfig) error {
		c.rootConfiguration = name
		return nil
	}
}

// WithIncludedScopes restricts which declared scopes contribute edges and
// version alignment. Defaults to compile and runtime.
func WithIncludedScopes(scopes ...Scope) Option {
	return func(c *resolverConfig) error {
		c.includedScopes = make(map[Scope]bool, len(scopes))
		for _, s := range scopes {
			c.includedScopes[s] = true
		}
		return nil
	}
}

// WithFailureReporter sets the reporter used to construct
// configuration-not-found failures. Defaults to a reporter returning
// *ConfigurationNotFoundError.
func WithFailureReporter(r FailureReporter) Option {
	return func(c *resolverConfig) error {
		c.failures = r
		return nil
	}
}

// WithMaxDepth caps the traversal depth. Defaults to 100.
func WithMaxDepth(depth int) Option {
	return func(c *resolverConfig) error {
		c.maxDepth = depth
		return nil
	}
}

// WithLogger sets a structured logger for resolution diagnostics. If not
// set, logging is disabled.
//
// Any slog backend works; for example the CLI wires charmbracelet/log in
// as the handler.
func WithLogger(l *slog.Logger) Option {
	return func(c *resolverConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *resolverConfig) validate() error {
	if c.rootConfiguration == "" {
		return errors.New("root configuration must not be empty")
	}
	if c.maxDepth <= 0 {
		return errors.New("max depth must be positive")
	}
	return nil
}

// includeScope reports whether descriptors declared with the given scope
// participate in resolution.
func (c *resolverConfig) includeScope(s Scope) bool {
	return c.includedScopes[s]
}

// log returns the configured logger, or a no-op logger if none was set.
// Libraries should be silent by default; users opt in via WithLogger.
func (c *resolverConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newResolverConfig applies the given options to the defaults and
// validates the result.
func newResolverConfig(opts ...Option) (*resolverConfig, error) {
	c := &resolverConfig{
		rootConfiguration: "compile",
		includedScopes:    map[Scope]bool{ScopeCompile: true, ScopeRuntime: true},
		maxDepth:          defaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
