package buffer

import (
	"log/slog"
)

const (
	// DefaultInitialBytes is the first allocation of a Bytes buffer.
	DefaultInitialBytes = 64
	// DefaultInitialItems is the item capacity of an Array's first allocation.
	DefaultInitialItems = 8
)

type Option func(*config)

type config struct {
	initial  int
	maxBytes int
	logger   *slog.Logger
}

// WithInitial sets the first allocation, in bytes for Bytes and in items for
// Array.
func WithInitial(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.initial = n
		}
	}
}

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

func newConfig(initial int, opts []Option) config {
	cfg := config{initial: initial}
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
