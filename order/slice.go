package order

import "github.com/baxromumarov/olist/fault"

// sliceSeq addresses the elements of a typed slice by index.
type sliceSeq[T any] struct {
	s   []T
	cmp func(a, b T) bool
}

func (s *sliceSeq[T]) less(a, b int) (bool, error) {
	return s.cmp(s.s[a], s.s[b]), nil
}

func (s *sliceSeq[T]) swap(a, b int) error {
	tmp := s.s[a]
	s.s[a] = s.s[b]
	s.s[b] = tmp
	return nil
}

func (s *sliceSeq[T]) next(i int) (int, error)           { return i + 1, nil }
func (s *sliceSeq[T]) prev(i int) (int, error)           { return i - 1, nil }
func (s *sliceSeq[T]) advance(i, steps int) (int, error) { return i + steps, nil }

// Slice sorts s in place with the same algorithm as SortBytes.
func Slice[T any](s []T, less func(a, b T) bool, opts ...Option) error {
	if less == nil {
		return fault.Invalidf("order: nil less function")
	}
	if len(s) < 2 {
		return nil
	}
	cfg := newConfig(opts)
	return newEngine[int](&sliceSeq[T]{s: s, cmp: less}, cfg.stats).sort(0, len(s)-1, len(s))
}

// IsSorted reports whether no item of s is ordered before its predecessor.
func IsSorted[T any](s []T, less func(a, b T) bool) bool {
	for i := 1; i < len(s); i++ {
		if less(s[i], s[i-1]) {
			return false
		}
	}
	return true
}
