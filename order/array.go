package order

import (
	"log/slog"

	"github.com/baxromumarov/olist/buffer"
	"github.com/baxromumarov/olist/fault"
)

// byteSeq addresses fixed-size items in a contiguous buffer by index.
type byteSeq struct {
	data    []byte
	size    int
	scratch []byte
	cmp     Less
}

func (s *byteSeq) item(i int) []byte {
	return s.data[i*s.size : (i+1)*s.size]
}

func (s *byteSeq) less(a, b int) (bool, error) {
	return s.cmp(s.item(a), s.item(b)), nil
}

func (s *byteSeq) swap(a, b int) error {
	x, y := s.item(a), s.item(b)
	copy(s.scratch, x)
	copy(x, y)
	copy(y, s.scratch)
	return nil
}

func (s *byteSeq) next(i int) (int, error)           { return i + 1, nil }
func (s *byteSeq) prev(i int) (int, error)           { return i - 1, nil }
func (s *byteSeq) advance(i, steps int) (int, error) { return i + steps, nil }

// SortBytes sorts data, a sequence of items of itemSize bytes each, in
// place.
func SortBytes(data []byte, itemSize int, less Less, opts ...Option) error {
	if less == nil {
		return fault.Invalidf("order: nil less function")
	}
	if itemSize <= 0 {
		return fault.Invalidf("order: item size must be positive, got %d", itemSize)
	}
	if len(data)%itemSize != 0 {
		return fault.Invalidf("order: %d bytes is not a whole number of %d-byte items", len(data), itemSize)
	}

	cfg := newConfig(opts)
	n := len(data) / itemSize
	if n < 2 {
		return nil
	}

	scratch := cfg.scratch
	switch {
	case scratch == nil:
		scratch = make([]byte, itemSize)
	case len(scratch) < itemSize:
		return fault.Invalidf("order: scratch holds %d bytes, items are %d", len(scratch), itemSize)
	}

	cfg.logger.Debug("sorting array",
		slog.Int("items", n),
		slog.Int("item_size", itemSize),
	)
	seq := &byteSeq{
		data:    data,
		size:    itemSize,
		scratch: scratch[:itemSize],
		cmp:     less,
	}
	return newEngine[int](seq, cfg.stats).sort(0, n-1, n)
}

// SortArray sorts the items of a in place.
func SortArray(a *buffer.Array, less Less, opts ...Option) error {
	if a == nil {
		return fault.Invalidf("order: nil array")
	}
	return SortBytes(a.Bytes(), a.Stride(), less, opts...)
}
