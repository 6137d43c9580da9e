package order

import (
	"log/slog"

	"github.com/baxromumarov/olist"
	"github.com/baxromumarov/olist/fault"
)

// listSeq addresses list nodes by handle. Only items move; links are never
// touched. Every handle it is given comes from traversal, so a failing step
// means the list is corrupt.
type listSeq struct {
	l   *olist.List
	cmp Less
}

func (s *listSeq) less(a, b olist.Handle) (bool, error) {
	x, err := s.l.ItemAt(a)
	if err != nil {
		return false, fault.Internalf("order: item at %d: %v", a, err)
	}
	y, err := s.l.ItemAt(b)
	if err != nil {
		return false, fault.Internalf("order: item at %d: %v", b, err)
	}
	return s.cmp(x, y), nil
}

func (s *listSeq) swap(a, b olist.Handle) error {
	err := s.l.Swap(a, b)
	if fault.IsInvalid(err) {
		return fault.Internalf("order: swap %d and %d: %v", a, b, err)
	}
	return err
}

func (s *listSeq) next(h olist.Handle) (olist.Handle, error) {
	n, err := s.l.Next(h)
	if err != nil {
		return olist.Nil, fault.Internalf("order: step forward from %d: %v", h, err)
	}
	if n == olist.Nil {
		return olist.Nil, fault.Internalf("order: list ends after %d inside the span", h)
	}
	return n, nil
}

func (s *listSeq) prev(h olist.Handle) (olist.Handle, error) {
	p, err := s.l.Prev(h)
	if err != nil {
		return olist.Nil, fault.Internalf("order: step back from %d: %v", h, err)
	}
	if p == olist.Nil {
		return olist.Nil, fault.Internalf("order: list starts before %d inside the span", h)
	}
	return p, nil
}

func (s *listSeq) advance(h olist.Handle, steps int) (olist.Handle, error) {
	var err error
	for ; steps > 0; steps-- {
		if h, err = s.next(h); err != nil {
			return olist.Nil, err
		}
	}
	return h, nil
}

// SortList sorts every item of l in place by exchanging items between
// nodes. Handles keep naming the same nodes, which now hold other items.
func SortList(l *olist.List, less Less, opts ...Option) error {
	if err := checkList(l, less); err != nil {
		return err
	}
	if l.Len() < 2 {
		return nil
	}
	return sortSpan(l, l.Head(), l.Tail(), l.Len(), less, opts)
}

// SortListSpan sorts the nodes from start to end inclusive. end must be
// reachable from start by following Next.
func SortListSpan(l *olist.List, start, end olist.Handle, less Less, opts ...Option) error {
	if err := checkList(l, less); err != nil {
		return err
	}
	if _, err := l.ItemAt(end); err != nil {
		return err
	}

	n := 1
	for h := start; h != end; n++ {
		next, err := l.Next(h)
		if err != nil {
			return err
		}
		if next == olist.Nil {
			return fault.Invalidf("order: end %d does not follow start %d", end, start)
		}
		h = next
	}
	if n < 2 {
		return nil
	}
	return sortSpan(l, start, end, n, less, opts)
}

func checkList(l *olist.List, less Less) error {
	if l == nil {
		return fault.Invalidf("order: nil list")
	}
	if less == nil {
		return fault.Invalidf("order: nil less function")
	}
	return nil
}

func sortSpan(l *olist.List, start, end olist.Handle, n int, less Less, opts []Option) error {
	cfg := newConfig(opts)
	cfg.logger.Debug("sorting list",
		slog.Int("items", n),
		slog.Any("start", start),
		slog.Any("end", end),
	)

	err := newEngine[olist.Handle](&listSeq{l: l, cmp: less}, cfg.stats).sort(start, end, n)
	if err != nil {
		cfg.logger.Debug("list sort failed", slog.Any("error", err))
	}
	return err
}
