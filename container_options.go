package objgraph

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/objgraph/objgraph/config"
)

// DefaultMaxDepth bounds how deep a single resolution may nest.
const DefaultMaxDepth = 64

// Option configures a Container.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	lifetime Lifetime
	maxDepth int
}

func defaultOptions() *options {
	return &options{
		logger:   zap.NewNop(),
		lifetime: Transient,
		maxDepth: DefaultMaxDepth,
	}
}

// WithLogger sets the logger. Resolution events are logged at debug level.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

// WithLifetime sets whether constructed instances are memoized.
// Invalid values are ignored.
func WithLifetime(lifetime Lifetime) Option {
	return func(o *options) {
		if lifetime.IsValid() {
			o.lifetime = lifetime
		}
	}
}

// WithMaxDepth bounds the nesting of a single resolution. A value below one
// resets to DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		o.maxDepth = depth
	}
}

// FromConfig turns a loaded configuration into options, building a zap
// logger at the configured level and encoding.
func FromConfig(cfg config.Config) ([]Option, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lifetime, err := ParseLifetime(cfg.Lifetime)
	if err != nil {
		return nil, err
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return []Option{
		WithLogger(logger),
		WithLifetime(lifetime),
		WithMaxDepth(cfg.MaxDepth),
	}, nil
}

// NewFromConfig creates a container configured by cfg. Options in opts are
// applied after the configured ones and win over them.
func NewFromConfig(types Introspector, cfg config.Config, opts ...Option) (*Container, error) {
	configured, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(types, append(configured, opts...)...), nil
}
