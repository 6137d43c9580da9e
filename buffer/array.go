package buffer

import (
	"github.com/baxromumarov/olist/fault"
	"github.com/baxromumarov/olist/internal/region"
)

// Array is a growable sequence of items of one fixed size, stored back to
// back so that item i starts at i*Stride().
type Array struct {
	region region.Region
	stride int
	count  int
}

func NewArray(stride int, opts ...Option) (*Array, error) {
	if stride <= 0 || stride > region.MaxBytes {
		return nil, fault.Invalidf("buffer: stride must be in 1..%d, got %d", region.MaxBytes, stride)
	}
	cfg := newConfig(DefaultInitialItems, opts)
	if cfg.initial > region.MaxBytes/stride {
		cfg.initial = region.MaxBytes / stride
	}
	return &Array{
		stride: stride,
		region: region.Region{
			Initial: cfg.initial * stride,
			Limit:   cfg.maxBytes,
			Logger:  cfg.logger,
		},
	}, nil
}

func (a *Array) Len() int {
	return a.count
}

func (a *Array) Stride() int {
	return a.stride
}

func (a *Array) Cap() int {
	return a.region.Size() / a.stride
}

// Bytes returns the items as one contiguous slice.
func (a *Array) Bytes() []byte {
	return a.region.Bytes()[:a.count*a.stride]
}

// Reserve makes room for n items in total.
func (a *Array) Reserve(n int) error {
	if n < 0 {
		return fault.Invalidf("buffer: negative reservation %d", n)
	}
	if n > region.MaxBytes/a.stride {
		return fault.NoMemoryf("buffer: %d items of %d bytes exceed the region limit", n, a.stride)
	}
	return a.region.Reserve(n * a.stride)
}

// Append adds item at the end and returns its index. A nil item appends a
// zeroed slot.
func (a *Array) Append(item []byte) (int, error) {
	if item != nil && len(item) != a.stride {
		return 0, fault.Invalidf("buffer: item is %d bytes, stride is %d", len(item), a.stride)
	}
	if err := a.Reserve(a.count + 1); err != nil {
		return 0, err
	}
	i := a.count
	dst := a.slot(i)
	if item == nil {
		clear(dst)
	} else {
		copy(dst, item)
	}
	a.count++
	return i, nil
}

// At returns item i. Writes through the slice update the array.
func (a *Array) At(i int) ([]byte, error) {
	if err := a.check(i); err != nil {
		return nil, err
	}
	return a.slot(i), nil
}

func (a *Array) Set(i int, item []byte) error {
	if err := a.check(i); err != nil {
		return err
	}
	if len(item) != a.stride {
		return fault.Invalidf("buffer: item is %d bytes, stride is %d", len(item), a.stride)
	}
	copy(a.slot(i), item)
	return nil
}

// Delete removes item i and shifts the following items down by one.
func (a *Array) Delete(i int) error {
	if err := a.check(i); err != nil {
		return err
	}
	buf := a.region.Bytes()
	copy(buf[i*a.stride:], buf[(i+1)*a.stride:a.count*a.stride])
	a.count--
	return nil
}

// Truncate drops every item from index n on.
func (a *Array) Truncate(n int) error {
	if n < 0 || n > a.count {
		return fault.Invalidf("buffer: truncate to %d, length is %d", n, a.count)
	}
	a.count = n
	return nil
}

func (a *Array) Reset() {
	a.count = 0
}

func (a *Array) check(i int) error {
	if i < 0 || i >= a.count {
		return fault.Invalidf("buffer: index %d out of range [0, %d)", i, a.count)
	}
	return nil
}

func (a *Array) slot(i int) []byte {
	start := i * a.stride
	end := start + a.stride
	return a.region.Bytes()[start:end:end]
}
