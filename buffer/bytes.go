// Package buffer provides growable byte storage on top of the module's
// region primitive: a byte buffer with a write cursor and an array of
// fixed-stride items.
package buffer

import (
	"github.com/baxromumarov/olist/fault"
	"github.com/baxromumarov/olist/internal/region"
)

// Bytes is an append-only byte buffer. The zero value is not usable; call
// NewBytes.
type Bytes struct {
	region region.Region
	n      int
}

func NewBytes(opts ...Option) *Bytes {
	cfg := newConfig(DefaultInitialBytes, opts)
	return &Bytes{
		region: region.Region{
			Initial: cfg.initial,
			Limit:   cfg.maxBytes,
			Logger:  cfg.logger,
		},
	}
}

// Write appends p. It fails only when the buffer cannot grow, in which case
// nothing is written.
func (b *Bytes) Write(p []byte) (int, error) {
	if err := b.Reserve(len(p)); err != nil {
		return 0, err
	}
	copy(b.region.Bytes()[b.n:], p)
	b.n += len(p)
	return len(p), nil
}

func (b *Bytes) WriteByte(c byte) error {
	if err := b.Reserve(1); err != nil {
		return err
	}
	b.region.Bytes()[b.n] = c
	b.n++
	return nil
}

// Reserve makes room for n more bytes without moving the cursor.
func (b *Bytes) Reserve(n int) error {
	if n < 0 {
		return fault.Invalidf("buffer: negative reservation %d", n)
	}
	return b.region.Reserve(b.n + n)
}

func (b *Bytes) Len() int {
	return b.n
}

func (b *Bytes) Cap() int {
	return b.region.Size()
}

// Bytes returns the written bytes. The slice aliases the buffer until the
// next growth.
func (b *Bytes) Bytes() []byte {
	return b.region.Bytes()[:b.n]
}

// Truncate keeps the first n bytes.
func (b *Bytes) Truncate(n int) error {
	if n < 0 || n > b.n {
		return fault.Invalidf("buffer: truncate to %d out of range [0, %d]", n, b.n)
	}
	b.n = n
	return nil
}

// Reset moves the cursor back to the start and keeps the allocation.
func (b *Bytes) Reset() {
	b.n = 0
}
