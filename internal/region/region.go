// Package region provides the growable byte region behind every container in
// the module. Callers address the region by offset, so moving it on growth
// never invalidates what they hold.
package region

import (
	"log/slog"
	"math"

	"github.com/baxromumarov/olist/fault"
)

// MaxBytes is the hard ceiling on a region, so offsets always fit in a uint32
// and sizes in an int on 32-bit platforms.
const MaxBytes = min(math.MaxUint32, math.MaxInt)

type Region struct {
	buf []byte

	// Initial is the size of the first allocation when it exceeds the
	// requested size.
	Initial int
	// Limit caps the region size. Zero means MaxBytes.
	Limit int

	Logger *slog.Logger
}

// Size is the number of addressable bytes.
func (r *Region) Size() int {
	return len(r.buf)
}

// Bytes returns the whole region. The slice is invalidated by the next
// Reserve that grows.
func (r *Region) Bytes() []byte {
	return r.buf
}

func (r *Region) limit() int {
	if r.Limit <= 0 || r.Limit > MaxBytes {
		return MaxBytes
	}
	return r.Limit
}

// Reserve makes at least n bytes addressable. The region doubles until n
// fits, clamped to the limit. On failure the region is untouched.
func (r *Region) Reserve(n int) error {
	if n < 0 {
		return fault.Invalidf("region: negative reservation %d", n)
	}
	if n <= len(r.buf) {
		return nil
	}
	limit := r.limit()
	if n > limit {
		return fault.NoMemoryf("region: %d bytes requested, limit is %d", n, limit)
	}

	size := len(r.buf)
	if size == 0 {
		size = max(r.Initial, 1)
	}
	for size < n {
		if size > limit/2 {
			size = limit
			break
		}
		size *= 2
	}
	size = min(size, limit)

	buf := make([]byte, size)
	copy(buf, r.buf)
	if r.Logger != nil {
		r.Logger.Debug("region grown",
			slog.Int("from", len(r.buf)),
			slog.Int("bytes", size),
			slog.Int("requested", n),
		)
	}
	r.buf = buf
	return nil
}

// Release drops the allocation.
func (r *Region) Release() {
	r.buf = nil
}
