package olist

import (
	"github.com/baxromumarov/olist/fault"
)

// Validate walks the list in both directions and reports the first broken
// invariant as an internal error.
func (l *List) Validate() error {
	size := l.region.Size()
	if l.count == 0 {
		if size > 0 && (l.load(headOffset) != Nil || l.load(tailOffset) != Nil) {
			return fault.Internalf("olist: empty list has head %d tail %d", l.load(headOffset), l.load(tailOffset))
		}
		return nil
	}
	if need := (l.count + 1) * l.stride; size < need {
		return fault.Internalf("olist: region holds %d bytes, %d nodes need %d", size, l.count, need)
	}

	seen := make([]bool, l.count)
	prev := Nil
	h := l.load(headOffset)
	for i := 0; i < l.count; i++ {
		if h == Nil {
			return fault.Internalf("olist: reached nil after %d of %d nodes", i, l.count)
		}
		if int(h)%l.stride != 0 || int(h) > l.count*l.stride {
			return fault.Internalf("olist: node %d has handle %d outside the dense range", i, h)
		}
		k := int(h)/l.stride - 1
		if seen[k] {
			return fault.Internalf("olist: handle %d visited twice", h)
		}
		seen[k] = true
		if got := l.prev(h); got != prev {
			return fault.Internalf("olist: prev of %d is %d, expected %d", h, got, prev)
		}
		prev = h
		h = l.next(h)
	}
	if h != Nil {
		return fault.Internalf("olist: traversal continues past %d nodes to %d", l.count, h)
	}
	if tail := l.load(tailOffset); tail != prev {
		return fault.Internalf("olist: tail is %d, last node reached is %d", tail, prev)
	}
	return nil
}
