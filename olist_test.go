package olist

import (
	"encoding/binary"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/olist/fault"
	"github.com/baxromumarov/olist/internal/region"
)

func enc(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func dec(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func newIntList(t *testing.T, opts ...Option) *List {
	t.Helper()
	l, err := New(4, opts...)
	require.NoError(t, err)
	return l
}

func pushAll(t *testing.T, l *List, values ...int32) []Handle {
	t.Helper()
	handles := make([]Handle, 0, len(values))
	for _, v := range values {
		h, err := l.PushBack(enc(v))
		require.NoError(t, err)
		handles = append(handles, h)
	}
	return handles
}

func forward(l *List) []int32 {
	out := []int32{}
	for _, item := range l.All() {
		out = append(out, dec(item))
	}
	return out
}

func backward(l *List) []int32 {
	out := []int32{}
	for _, item := range l.Backward() {
		out = append(out, dec(item))
	}
	return out
}

func requireOrder(t *testing.T, l *List, want ...int32) {
	t.Helper()
	want = append([]int32{}, want...)
	require.NoError(t, l.Validate())
	require.Equal(t, len(want), l.Len())
	if diff := cmp.Diff(want, forward(l)); diff != "" {
		t.Fatalf("forward order mismatch (-want +got):\n%s", diff)
	}
	reversed := slices.Clone(want)
	slices.Reverse(reversed)
	if diff := cmp.Diff(reversed, backward(l)); diff != "" {
		t.Fatalf("backward order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsBadItemSize(t *testing.T) {
	for _, size := range []int{0, -1, math.MaxInt, region.MaxBytes / 2} {
		l, err := New(size)
		assert.Nil(t, l)
		assert.True(t, fault.IsInvalid(err), "size %d: %v", size, err)
	}
}

func TestEmptyList(t *testing.T) {
	l := newIntList(t)

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 4, l.ItemSize())
	assert.Equal(t, 12, l.Stride())
	assert.Equal(t, 0, l.Cap())
	assert.Equal(t, Nil, l.Head())
	assert.Equal(t, Nil, l.Tail())
	require.NoError(t, l.Validate())

	_, err := l.Next(Handle(12))
	assert.True(t, fault.IsInvalid(err))
	_, err = l.Prev(Nil)
	assert.True(t, fault.IsInvalid(err))
	_, err = l.Remove(Handle(12))
	assert.True(t, fault.IsInvalid(err))
	_, err = l.ItemAt(Handle(12))
	assert.True(t, fault.IsInvalid(err))
}

func TestTraversalClosure(t *testing.T) {
	l := newIntList(t)
	values := []int32{5, 3, 1, 4, 2, 9, 8, 7, 6, 0, 11}
	pushAll(t, l, values...)

	h := l.Head()
	for i := 0; i < len(values); i++ {
		require.NotEqual(t, Nil, h, "reached nil after %d steps", i)
		next, err := l.Next(h)
		require.NoError(t, err)
		h = next
	}
	assert.Equal(t, Nil, h)

	requireOrder(t, l, values...)
}

func TestInsertBeforeAfter(t *testing.T) {
	l := newIntList(t)

	h2, err := l.InsertAfter(Nil, enc(2))
	require.NoError(t, err)
	_, err = l.InsertAfter(Nil, enc(4)) // tail
	require.NoError(t, err)
	_, err = l.InsertBefore(Nil, enc(1)) // head
	require.NoError(t, err)
	_, err = l.InsertAfter(h2, enc(3))
	require.NoError(t, err)
	h0, err := l.PushFront(enc(0))
	require.NoError(t, err)
	_, err = l.InsertBefore(h0, enc(-1))
	require.NoError(t, err)
	_, err = l.PushBack(enc(5))
	require.NoError(t, err)

	requireOrder(t, l, -1, 0, 1, 2, 3, 4, 5)
	assert.Equal(t, int32(-1), mustItem(t, l, l.Head()))
	assert.Equal(t, int32(5), mustItem(t, l, l.Tail()))
}

func TestInsertIntoEmptyIgnoresMark(t *testing.T) {
	l := newIntList(t)
	h, err := l.InsertBefore(Handle(999), enc(7))
	require.NoError(t, err)
	assert.Equal(t, h, l.Head())
	assert.Equal(t, h, l.Tail())
	requireOrder(t, l, 7)
}

func TestInsertReservedItem(t *testing.T) {
	l := newIntList(t)
	pushAll(t, l, 1, 2)
	_, err := l.Remove(l.Head())
	require.NoError(t, err)

	// the freed slot still holds stale bytes; a reserved item must be zeroed
	h, err := l.PushBack(nil)
	require.NoError(t, err)
	item, err := l.ItemAt(h)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, item)

	copy(item, enc(42))
	requireOrder(t, l, 2, 42)
}

func TestInsertRejectsBadArguments(t *testing.T) {
	l := newIntList(t)
	handles := pushAll(t, l, 1, 2, 3)

	_, err := l.PushBack([]byte{1, 2})
	assert.True(t, fault.IsInvalid(err))

	_, err = l.InsertAfter(handles[0]+1, enc(9))
	assert.True(t, fault.IsInvalid(err))

	_, err = l.InsertBefore(Handle(4*12), enc(9))
	assert.True(t, fault.IsInvalid(err))

	requireOrder(t, l, 1, 2, 3)
}

func TestHandleValidation(t *testing.T) {
	l := newIntList(t)
	handles := pushAll(t, l, 1, 2, 3)
	assert.Equal(t, []Handle{12, 24, 36}, handles)

	for _, h := range []Handle{Nil, 6, 13, 48, 1200} {
		_, err := l.Next(h)
		assert.True(t, fault.IsInvalid(err), "next %d", h)
		_, err = l.Prev(h)
		assert.True(t, fault.IsInvalid(err), "prev %d", h)
		_, err = l.ItemAt(h)
		assert.True(t, fault.IsInvalid(err), "item %d", h)
		_, err = l.Remove(h)
		assert.True(t, fault.IsInvalid(err), "remove %d", h)
		assert.True(t, fault.IsInvalid(l.Swap(h, handles[0])), "swap %d", h)
	}
	requireOrder(t, l, 1, 2, 3)
}

func TestGrowthKeepsHandles(t *testing.T) {
	l := newIntList(t, WithInitialNodes(2))

	var handles []Handle
	for i := int32(0); i < 100; i++ {
		h, err := l.PushBack(enc(i))
		require.NoError(t, err)
		handles = append(handles, h)
	}
	assert.GreaterOrEqual(t, l.Cap(), 100)

	for i, h := range handles {
		assert.Equal(t, int32(i), mustItem(t, l, h))
	}
	require.NoError(t, l.Validate())
}

func TestInitialCapacity(t *testing.T) {
	l := newIntList(t)
	pushAll(t, l, 1)
	assert.Equal(t, DefaultInitialNodes, l.Cap())

	pushAll(t, l, 2, 3, 4, 5, 6, 7, 8, 9)
	assert.Equal(t, 2*DefaultInitialNodes+1, l.Cap())
}

func TestMaxBytes(t *testing.T) {
	// header plus three 12-byte nodes
	l := newIntList(t, WithMaxBytes(48))
	pushAll(t, l, 1, 2, 3)

	_, err := l.PushBack(enc(4))
	require.Error(t, err)
	assert.True(t, fault.IsNoMemory(err))
	requireOrder(t, l, 1, 2, 3)

	// swap needs a spare slot for its scratch item
	err = l.Swap(l.Head(), l.Tail())
	assert.True(t, fault.IsNoMemory(err))
	requireOrder(t, l, 1, 2, 3)

	_, err = l.Remove(l.Head())
	require.NoError(t, err)
	require.NoError(t, l.Swap(l.Head(), l.Tail()))
	requireOrder(t, l, 3, 2)
}

func TestSwap(t *testing.T) {
	l := newIntList(t, WithInitialNodes(4))
	handles := pushAll(t, l, 1, 2, 3, 4)
	assert.Equal(t, 4, l.Cap())

	require.NoError(t, l.Swap(handles[0], handles[3]))
	assert.Greater(t, l.Cap(), 4)
	requireOrder(t, l, 4, 2, 3, 1)

	// links are untouched: the head is still the first slot
	assert.Equal(t, handles[0], l.Head())
	assert.Equal(t, handles[3], l.Tail())

	require.NoError(t, l.Swap(handles[1], handles[1]))
	requireOrder(t, l, 4, 2, 3, 1)
}

func TestResetAndRelease(t *testing.T) {
	l := newIntList(t)
	pushAll(t, l, 1, 2, 3)
	capacity := l.Cap()

	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, capacity, l.Cap())
	assert.Equal(t, Nil, l.Head())
	requireOrder(t, l)

	pushAll(t, l, 4, 5)
	requireOrder(t, l, 4, 5)

	l.Release()
	assert.Equal(t, 0, l.Cap())
	requireOrder(t, l)

	pushAll(t, l, 6)
	requireOrder(t, l, 6)
}

func TestIteratorsStopEarly(t *testing.T) {
	l := newIntList(t)
	pushAll(t, l, 1, 2, 3, 4)

	var got []int32
	for _, item := range l.All() {
		got = append(got, dec(item))
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int32{1, 2}, got)

	got = got[:0]
	for _, item := range l.Backward() {
		got = append(got, dec(item))
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int32{4, 3, 2}, got)
}

func TestItemAtWritesThrough(t *testing.T) {
	l := newIntList(t)
	handles := pushAll(t, l, 1, 2, 3)

	item, err := l.ItemAt(handles[1])
	require.NoError(t, err)
	copy(item, enc(20))
	assert.Len(t, item, 4)
	assert.Equal(t, 4, cap(item))

	requireOrder(t, l, 1, 20, 3)
}

func TestValidateDetectsCorruption(t *testing.T) {
	l := newIntList(t)
	handles := pushAll(t, l, 1, 2, 3)

	l.setNext(handles[0], handles[2])
	err := l.Validate()
	require.Error(t, err)
	assert.True(t, fault.IsInternal(err))

	l.setNext(handles[0], handles[1])
	require.NoError(t, l.Validate())

	l.setPrev(handles[2], handles[0])
	assert.True(t, fault.IsInternal(l.Validate()))
	l.setPrev(handles[2], handles[1])

	l.store(tailOffset, handles[1])
	assert.True(t, fault.IsInternal(l.Validate()))
	l.store(tailOffset, handles[2])

	l.setNext(handles[2], handles[0])
	assert.True(t, fault.IsInternal(l.Validate()))
}

func TestRandomOperations(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	l := newIntList(t, WithInitialNodes(1))
	var model []int32

	handleAt := func(i int) Handle {
		h := l.Head()
		for ; i > 0; i-- {
			h = l.next(h)
		}
		return h
	}

	for step := 0; step < 3000; step++ {
		v := int32(step)
		switch op := r.Intn(5); {
		case op < 2 || len(model) == 0:
			if len(model) == 0 || r.Intn(2) == 0 {
				_, err := l.PushBack(enc(v))
				require.NoError(t, err)
				model = append(model, v)
				break
			}
			i := r.Intn(len(model))
			_, err := l.InsertAfter(handleAt(i), enc(v))
			require.NoError(t, err)
			model = slices.Insert(model, i+1, v)
		case op == 2:
			i := r.Intn(len(model))
			_, err := l.InsertBefore(handleAt(i), enc(v))
			require.NoError(t, err)
			model = slices.Insert(model, i, v)
		default:
			i := r.Intn(len(model))
			resume, err := l.Remove(handleAt(i))
			require.NoError(t, err)
			model = slices.Delete(model, i, i+1)
			if i == len(model) {
				require.Equal(t, Nil, resume)
			} else {
				require.Equal(t, model[i], mustItem(t, l, resume))
			}
		}
		if step%50 == 0 {
			requireOrder(t, l, model...)
		}
	}
	requireOrder(t, l, model...)
}

func mustItem(t *testing.T, l *List, h Handle) int32 {
	t.Helper()
	item, err := l.ItemAt(h)
	require.NoError(t, err)
	return dec(item)
}
