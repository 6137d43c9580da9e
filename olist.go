// Package olist implements a doubly linked list whose nodes live in one
// contiguous byte region and are addressed by byte offsets.
//
// A Handle is the offset of a node inside the region, so the region can be
// reallocated on growth without invalidating handles. Nodes are densely
// packed behind a one-slot header: removing a node moves the structurally
// last node into the freed slot, which keeps removal O(1) without leaving
// holes. That relocation is the only operation that changes the handle of a
// surviving node.
//
// A List is not safe for concurrent use.
package olist

import (
	"encoding/binary"
	"iter"
	"log/slog"

	"github.com/baxromumarov/olist/fault"
	"github.com/baxromumarov/olist/internal/region"
)

// Handle is the byte offset of a node in its list's region.
type Handle uint32

// Nil is the handle of no node. Offset 0 belongs to the header, so no node
// ever has it.
const Nil Handle = 0

// node layout: prev | next | item
const (
	linkSize   = 4
	prevOffset = 0
	nextOffset = linkSize
	itemOffset = 2 * linkSize

	// the header occupies the slot at offset 0
	headOffset = 0
	tailOffset = linkSize
)

type List struct {
	itemSize int
	stride   int
	count    int

	region region.Region
	logger *slog.Logger
}

// New returns an empty list of items of itemSize bytes. Nothing is allocated
// until the first insertion.
func New(itemSize int, opts ...Option) (*List, error) {
	if itemSize <= 0 {
		return nil, fault.Invalidf("olist: item size must be positive, got %d", itemSize)
	}
	// header and one node must fit, and the stride must not overflow int
	if itemSize > region.MaxBytes/2-itemOffset-linkSize {
		return nil, fault.Invalidf("olist: item size %d is too large", itemSize)
	}
	stride := (itemOffset + itemSize + linkSize - 1) &^ (linkSize - 1)

	cfg := newConfig(opts)
	l := &List{
		itemSize: itemSize,
		stride:   stride,
		logger:   cfg.logger,
	}
	l.region = region.Region{
		Initial: (cfg.initialNodes + 1) * stride,
		Limit:   cfg.maxBytes,
		Logger:  cfg.logger.With(slog.Int("stride", stride)),
	}
	return l, nil
}

func (l *List) Len() int {
	return l.count
}

func (l *List) ItemSize() int {
	return l.itemSize
}

// Stride is the distance in bytes between two adjacent node slots.
func (l *List) Stride() int {
	return l.stride
}

// Cap returns how many nodes fit in the current region.
func (l *List) Cap() int {
	if l.region.Size() == 0 {
		return 0
	}
	return l.region.Size()/l.stride - 1
}

func (l *List) Head() Handle {
	if l.count == 0 {
		return Nil
	}
	return l.load(headOffset)
}

func (l *List) Tail() Handle {
	if l.count == 0 {
		return Nil
	}
	return l.load(tailOffset)
}

// Next returns the node after h, or Nil when h is the tail.
func (l *List) Next(h Handle) (Handle, error) {
	if err := l.check(h); err != nil {
		return Nil, err
	}
	return l.next(h), nil
}

// Prev returns the node before h, or Nil when h is the head.
func (l *List) Prev(h Handle) (Handle, error) {
	if err := l.check(h); err != nil {
		return Nil, err
	}
	return l.prev(h), nil
}

// ItemAt returns the item stored at h. Writes through the slice update the
// item. The slice is only valid until the next insertion, swap or removal.
func (l *List) ItemAt(h Handle) ([]byte, error) {
	if err := l.check(h); err != nil {
		return nil, err
	}
	return l.item(h), nil
}

// InsertAfter inserts item after mark, or at the tail when mark is Nil.
// A nil item reserves a zeroed slot to be filled through ItemAt.
func (l *List) InsertAfter(mark Handle, item []byte) (Handle, error) {
	return l.insert(mark, item, true)
}

// InsertBefore inserts item before mark, or at the head when mark is Nil.
// A nil item reserves a zeroed slot to be filled through ItemAt.
func (l *List) InsertBefore(mark Handle, item []byte) (Handle, error) {
	return l.insert(mark, item, false)
}

func (l *List) PushBack(item []byte) (Handle, error) {
	return l.insert(Nil, item, true)
}

func (l *List) PushFront(item []byte) (Handle, error) {
	return l.insert(Nil, item, false)
}

func (l *List) insert(mark Handle, item []byte, after bool) (Handle, error) {
	if item != nil && len(item) != l.itemSize {
		return Nil, fault.Invalidf("olist: item is %d bytes, list holds %d-byte items", len(item), l.itemSize)
	}
	if l.count > 0 && mark != Nil {
		if err := l.check(mark); err != nil {
			return Nil, err
		}
	}
	if err := l.reserveNodes(l.count + 1); err != nil {
		return Nil, err
	}

	h := l.slot(l.count)
	dst := l.item(h)
	if item == nil {
		clear(dst)
	} else {
		copy(dst, item)
	}

	switch {
	case l.count == 0:
		l.setPrev(h, Nil)
		l.setNext(h, Nil)
		l.store(headOffset, h)
		l.store(tailOffset, h)
	case after:
		if mark == Nil {
			mark = l.load(tailOffset)
		}
		next := l.next(mark)
		l.setPrev(h, mark)
		l.setNext(h, next)
		l.setNext(mark, h)
		if next == Nil {
			l.store(tailOffset, h)
		} else {
			l.setPrev(next, h)
		}
	default:
		if mark == Nil {
			mark = l.load(headOffset)
		}
		prev := l.prev(mark)
		l.setPrev(h, prev)
		l.setNext(h, mark)
		l.setPrev(mark, h)
		if prev == Nil {
			l.store(headOffset, h)
		} else {
			l.setNext(prev, h)
		}
	}

	l.count++
	l.debugCheck()
	return h, nil
}

// Remove unlinks the node at h and returns the handle from which forward
// traversal continues, Nil when h was the tail.
//
// Unless h occupied the last slot, the node in the last slot is moved into
// h's slot, so any handle the caller held for that node now reads as h.
func (l *List) Remove(h Handle) (Handle, error) {
	if err := l.check(h); err != nil {
		return Nil, err
	}

	prev, next := l.prev(h), l.next(h)
	if l.count == 1 {
		l.count = 0
		l.store(headOffset, Nil)
		l.store(tailOffset, Nil)
		return Nil, nil
	}

	// Unlinking first means the last node's links can no longer name h,
	// whatever its position relative to h.
	if prev == Nil {
		l.store(headOffset, next)
	} else {
		l.setNext(prev, next)
	}
	if next == Nil {
		l.store(tailOffset, prev)
	} else {
		l.setPrev(next, prev)
	}

	last := l.slot(l.count - 1)
	if last != h {
		buf := l.region.Bytes()
		copy(buf[h:int(h)+l.stride], buf[last:int(last)+l.stride])

		movedPrev, movedNext := l.prev(h), l.next(h)
		if movedPrev == Nil {
			l.store(headOffset, h)
		} else {
			l.setNext(movedPrev, h)
		}
		if movedNext == Nil {
			l.store(tailOffset, h)
		} else {
			l.setPrev(movedNext, h)
		}
		if next == last {
			next = h
		}
	}

	l.count--
	l.debugCheck()
	return next, nil
}

// Swap exchanges the items at a and b. Links are untouched. The spare slot
// after the last node is used as scratch and is reserved like an insertion.
func (l *List) Swap(a, b Handle) error {
	if err := l.check(a); err != nil {
		return err
	}
	if err := l.check(b); err != nil {
		return err
	}
	if a == b {
		return nil
	}
	if err := l.reserveNodes(l.count + 1); err != nil {
		return err
	}

	scratch := l.item(l.slot(l.count))
	x, y := l.item(a), l.item(b)
	copy(scratch, x)
	copy(x, y)
	copy(y, scratch)
	return nil
}

// Reset empties the list and keeps its allocation.
func (l *List) Reset() {
	l.count = 0
	if l.region.Size() > 0 {
		l.store(headOffset, Nil)
		l.store(tailOffset, Nil)
	}
	l.logger.Debug("list reset", slog.Int("nodes", l.Cap()))
}

// Release empties the list and drops its allocation.
func (l *List) Release() {
	l.count = 0
	l.region.Release()
}

// All yields every node from head to tail. The list must not be modified
// during iteration, except through the yielded item slices.
func (l *List) All() iter.Seq2[Handle, []byte] {
	return func(yield func(Handle, []byte) bool) {
		for h := l.Head(); h != Nil; h = l.next(h) {
			if !yield(h, l.item(h)) {
				return
			}
		}
	}
}

// Backward yields every node from tail to head.
func (l *List) Backward() iter.Seq2[Handle, []byte] {
	return func(yield func(Handle, []byte) bool) {
		for h := l.Tail(); h != Nil; h = l.prev(h) {
			if !yield(h, l.item(h)) {
				return
			}
		}
	}
}

// check rejects handles that cannot name a live node.
func (l *List) check(h Handle) error {
	if l.count == 0 {
		return fault.Invalidf("olist: handle %d used on an empty list", h)
	}
	if h == Nil {
		return fault.Invalidf("olist: nil handle")
	}
	if int(h)%l.stride != 0 {
		return fault.Invalidf("olist: handle %d is not aligned to stride %d", h, l.stride)
	}
	if int(h) > l.count*l.stride {
		return fault.Invalidf("olist: handle %d is past the last node %d", h, l.slot(l.count-1))
	}
	return nil
}

func (l *List) reserveNodes(nodes int) error {
	if nodes+1 > region.MaxBytes/l.stride {
		return fault.NoMemoryf("olist: %d nodes exceed the handle space", nodes)
	}
	return l.region.Reserve((nodes + 1) * l.stride)
}

// slot returns the handle of the k-th node slot.
func (l *List) slot(k int) Handle {
	return Handle((k + 1) * l.stride)
}

func (l *List) load(off int) Handle {
	return Handle(binary.LittleEndian.Uint32(l.region.Bytes()[off:]))
}

func (l *List) store(off int, h Handle) {
	binary.LittleEndian.PutUint32(l.region.Bytes()[off:], uint32(h))
}

func (l *List) prev(h Handle) Handle        { return l.load(int(h) + prevOffset) }
func (l *List) next(h Handle) Handle        { return l.load(int(h) + nextOffset) }
func (l *List) setPrev(h Handle, to Handle) { l.store(int(h)+prevOffset, to) }
func (l *List) setNext(h Handle, to Handle) { l.store(int(h)+nextOffset, to) }

func (l *List) item(h Handle) []byte {
	start := int(h) + itemOffset
	end := start + l.itemSize
	return l.region.Bytes()[start:end:end]
}

func (l *List) debugCheck() {
	if !debugChecks {
		return
	}
	if err := l.Validate(); err != nil {
		panic(err)
	}
}
