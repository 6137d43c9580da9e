package order

// sequence is what the sort needs from a storage model. Positions of type P
// name items: indexes for contiguous storage, handles for lists. Array
// storage never fails; list storage reports broken links as errors.
type sequence[P comparable] interface {
	less(a, b P) (bool, error)
	swap(a, b P) error
	next(p P) (P, error)
	prev(p P) (P, error)
	advance(p P, steps int) (P, error)
}

type engine[P comparable] struct {
	seq   sequence[P]
	stats *Stats
}

func newEngine[P comparable](seq sequence[P], stats *Stats) *engine[P] {
	return &engine[P]{seq: seq, stats: stats}
}

func (e *engine[P]) less(a, b P) (bool, error) {
	if e.stats != nil {
		e.stats.Comparisons++
	}
	return e.seq.less(a, b)
}

func (e *engine[P]) swap(a, b P) error {
	if a == b {
		return nil
	}
	if e.stats != nil {
		e.stats.Swaps++
	}
	return e.seq.swap(a, b)
}

// sort orders the n items from lo to hi inclusive. The smaller partition is
// sorted recursively and the larger one by the loop, which keeps the stack
// logarithmic for any input.
func (e *engine[P]) sort(lo, hi P, n int) error {
	for n > Cutoff {
		b, bi, err := e.partition(lo, hi, n)
		if err != nil {
			return err
		}

		left, right := bi, n-1-bi
		if left < right {
			if left > 1 {
				leftHi, err := e.seq.prev(b)
				if err != nil {
					return err
				}
				if err := e.sort(lo, leftHi, left); err != nil {
					return err
				}
			}
			if lo, err = e.seq.next(b); err != nil {
				return err
			}
			n = right
		} else {
			if right > 1 {
				rightLo, err := e.seq.next(b)
				if err != nil {
					return err
				}
				if err := e.sort(rightLo, hi, right); err != nil {
					return err
				}
			}
			if hi, err = e.seq.prev(b); err != nil {
				return err
			}
			n = left
		}
	}
	return e.insertion(lo, n)
}

// partition places the middle item of the span at its final position and
// returns that position with its offset from lo. Items before it are not
// greater than it, items after it are not less.
func (e *engine[P]) partition(lo, hi P, n int) (P, int, error) {
	if e.stats != nil {
		e.stats.Partitions++
	}

	mid, err := e.seq.advance(lo, n/2)
	if err != nil {
		return mid, 0, err
	}
	// the pivot stays at hi until the scan is over
	if err := e.swap(mid, hi); err != nil {
		return mid, 0, err
	}

	l, li := lo, 0
	r, err := e.seq.prev(hi)
	if err != nil {
		return r, 0, err
	}
	ri := n - 2

	for li < ri {
		for li < ri {
			ok, err := e.less(l, hi)
			if err != nil {
				return l, 0, err
			}
			if !ok {
				break
			}
			if l, err = e.seq.next(l); err != nil {
				return l, 0, err
			}
			li++
		}
		for li < ri {
			ok, err := e.less(hi, r)
			if err != nil {
				return r, 0, err
			}
			if !ok {
				break
			}
			if r, err = e.seq.prev(r); err != nil {
				return r, 0, err
			}
			ri--
		}
		if li < ri {
			if err := e.swap(l, r); err != nil {
				return l, 0, err
			}
			if l, err = e.seq.next(l); err != nil {
				return l, 0, err
			}
			if r, err = e.seq.prev(r); err != nil {
				return r, 0, err
			}
			li++
			ri--
		}
	}

	// when the cursors met on an unexamined item it may still belong left
	if li < n-1 {
		ok, err := e.less(l, hi)
		if err != nil {
			return l, 0, err
		}
		if ok {
			if l, err = e.seq.next(l); err != nil {
				return l, 0, err
			}
			li++
		}
	}
	if err := e.swap(l, hi); err != nil {
		return l, 0, err
	}
	return l, li, nil
}

// insertion sorts n items starting at lo by swapping each one backward
// until it is in place.
func (e *engine[P]) insertion(lo P, n int) error {
	if n < 2 {
		return nil
	}
	if e.stats != nil {
		e.stats.InsertionRuns++
	}

	cur := lo
	for i := 1; i < n; i++ {
		var err error
		if cur, err = e.seq.next(cur); err != nil {
			return err
		}
		c := cur
		for j := i; j > 0; j-- {
			p, err := e.seq.prev(c)
			if err != nil {
				return err
			}
			ok, err := e.less(c, p)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if err := e.swap(c, p); err != nil {
				return err
			}
			c = p
		}
	}
	return nil
}
