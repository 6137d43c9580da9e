package order

import (
	"log/slog"
)

type Option func(*config)

type config struct {
	stats   *Stats
	scratch []byte
	logger  *slog.Logger
}

// WithStats accumulates counters into stats.
func WithStats(stats *Stats) Option {
	return func(cfg *config) {
		cfg.stats = stats
	}
}

// WithScratch supplies the buffer used to exchange items in byte mode. It
// must hold at least one item. Without it the sort allocates one item per
// call.
func WithScratch(buf []byte) Option {
	return func(cfg *config) {
		cfg.scratch = buf
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
	var cfg config
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
