package olist

import (
	"log/slog"
)

const (
	// DefaultInitialNodes is the node capacity of the first allocation.
	DefaultInitialNodes = 8
)

type Option func(*config)

type config struct {
	initialNodes int
	maxBytes     int
	logger       *slog.Logger
}

func WithInitialNodes(nodes int) Option {
	return func(cfg *config) {
		if nodes > 0 {
			cfg.initialNodes = nodes
		}
	}
}

// WithMaxBytes caps the backing region, header included. Insertions that
// would grow past it fail with an out-of-memory error.
func WithMaxBytes(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxBytes = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		initialNodes: DefaultInitialNodes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}
