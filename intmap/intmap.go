// Package intmap maps int64 keys to byte values held in one buffer. Writes
// append; reads sort and search.
package intmap

import (
	"encoding/binary"
	"iter"
	"log/slog"
	"sort"

	"github.com/baxromumarov/olist/buffer"
	"github.com/baxromumarov/olist/fault"
	"github.com/baxromumarov/olist/order"
)

// entry layout: key int64 | offset uint32 | length uint32 | seq uint64
const (
	entrySize    = 24
	offsetOffset = 8
	lengthOffset = 12
	seqOffset    = 16
)

type Option func(*config)

type config struct {
	logger *slog.Logger
	opts   []buffer.Option
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMaxValueBytes caps the buffer that holds values.
func WithMaxValueBytes(n int) Option {
	return func(cfg *config) {
		cfg.opts = append(cfg.opts, buffer.WithMaxBytes(n))
	}
}

type Map struct {
	entries *buffer.Array
	values  *buffer.Bytes
	sorted  bool
	seq     uint64
	dead    int // value bytes no entry refers to
	logger  *slog.Logger
}

func New(opts ...Option) *Map {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	entries, _ := buffer.NewArray(entrySize, buffer.WithLogger(cfg.logger))
	return &Map{
		entries: entries,
		values:  buffer.NewBytes(append(cfg.opts, buffer.WithLogger(cfg.logger))...),
		sorted:  true,
		logger:  cfg.logger,
	}
}

// Put stores value under key, replacing any previous value. The value is
// copied.
func (m *Map) Put(key int64, value []byte) error {
	if uint64(len(value)) > 1<<32-1 {
		return fault.Invalidf("intmap: value of %d bytes is too large", len(value))
	}

	// overwrite in place when the old value has room for the new one
	if m.sorted {
		if i, ok := m.search(key); ok {
			e, _ := m.entries.At(i)
			if off, n := span(e); len(value) <= n {
				copy(m.values.Bytes()[off:], value)
				binary.LittleEndian.PutUint32(e[lengthOffset:], uint32(len(value)))
				m.dead += n - len(value)
				return nil
			}
		}
	}

	if err := m.makeRoom(len(value)); err != nil {
		return err
	}
	offset := m.values.Len()
	if uint64(offset)+uint64(len(value)) > 1<<32-1 {
		return fault.NoMemoryf("intmap: value buffer is full at %d bytes", offset)
	}
	var e [entrySize]byte
	binary.LittleEndian.PutUint64(e[:], uint64(key))
	binary.LittleEndian.PutUint32(e[offsetOffset:], uint32(offset))
	binary.LittleEndian.PutUint32(e[lengthOffset:], uint32(len(value)))
	binary.LittleEndian.PutUint64(e[seqOffset:], m.seq)
	if err := m.entries.Reserve(m.entries.Len() + 1); err != nil {
		return err
	}
	if _, err := m.values.Write(value); err != nil {
		return err
	}

	n := m.entries.Len()
	if m.sorted && n > 0 {
		last, _ := m.entries.At(n - 1)
		m.sorted = keyOf(last) < key
	}
	// capacity is reserved, so this cannot fail
	_, _ = m.entries.Append(e[:])
	m.seq++
	return nil
}

// Get returns the value stored under key. The slice aliases the map until
// the next write.
func (m *Map) Get(key int64) ([]byte, bool, error) {
	if err := m.settle(); err != nil {
		return nil, false, err
	}
	i, ok := m.search(key)
	if !ok {
		return nil, false, nil
	}
	e, _ := m.entries.At(i)
	off, n := span(e)
	return m.values.Bytes()[off : off+n : off+n], true, nil
}

func (m *Map) Delete(key int64) (bool, error) {
	if err := m.settle(); err != nil {
		return false, err
	}
	i, ok := m.search(key)
	if !ok {
		return false, nil
	}
	e, _ := m.entries.At(i)
	_, n := span(e)
	if err := m.entries.Delete(i); err != nil {
		return false, err
	}
	m.dead += n
	return true, nil
}

func (m *Map) Len() (int, error) {
	if err := m.settle(); err != nil {
		return 0, err
	}
	return m.entries.Len(), nil
}

// Keys returns every key in ascending order.
func (m *Map) Keys() ([]int64, error) {
	if err := m.settle(); err != nil {
		return nil, err
	}
	keys := make([]int64, 0, m.entries.Len())
	for i := 0; i < m.entries.Len(); i++ {
		e, _ := m.entries.At(i)
		keys = append(keys, keyOf(e))
	}
	return keys, nil
}

// All yields every key and value in ascending key order. The map must not
// be written during iteration.
func (m *Map) All() iter.Seq2[int64, []byte] {
	return func(yield func(int64, []byte) bool) {
		if err := m.settle(); err != nil {
			m.logger.Debug("intmap iteration aborted", slog.Any("error", err))
			return
		}
		values := m.values.Bytes()
		for i := 0; i < m.entries.Len(); i++ {
			e, _ := m.entries.At(i)
			off, n := span(e)
			if !yield(keyOf(e), values[off:off+n:off+n]) {
				return
			}
		}
	}
}

// Reset empties the map and keeps its allocations.
func (m *Map) Reset() {
	m.entries.Reset()
	m.values.Reset()
	m.sorted = true
	m.seq = 0
	m.dead = 0
}

// settle sorts the entries by key, then by write sequence, so that of
// several entries for one key the most recently written sorts last and
// survives.
func (m *Map) settle() error {
	if m.sorted {
		return nil
	}
	if err := order.SortArray(m.entries, lessEntry); err != nil {
		return err
	}

	data := m.entries.Bytes()
	n := m.entries.Len()
	w := 0
	for r := 0; r < n; r++ {
		cur := data[r*entrySize : (r+1)*entrySize]
		if r+1 < n && keyOf(data[(r+1)*entrySize:]) == keyOf(cur) {
			_, size := span(cur)
			m.dead += size
			continue
		}
		copy(data[w*entrySize:], cur)
		w++
	}
	if w < n {
		m.logger.Debug("intmap dropped superseded entries", slog.Int("entries", n-w))
	}
	if err := m.entries.Truncate(w); err != nil {
		return err
	}
	m.sorted = true
	return nil
}

// makeRoom compacts the values when n more bytes would grow the buffer while
// part of it is dead.
func (m *Map) makeRoom(n int) error {
	if m.values.Len()+n <= m.values.Cap() {
		return nil
	}
	if err := m.settle(); err != nil {
		return err
	}
	if m.dead == 0 {
		return nil
	}
	return m.compact()
}

// compact slides live values to the front of the buffer in offset order,
// then restores key order.
func (m *Map) compact() error {
	if err := order.SortArray(m.entries, lessOffset); err != nil {
		return err
	}

	data := m.values.Bytes()
	w := 0
	for i := 0; i < m.entries.Len(); i++ {
		e, _ := m.entries.At(i)
		off, n := span(e)
		copy(data[w:], data[off:off+n])
		binary.LittleEndian.PutUint32(e[offsetOffset:], uint32(w))
		w += n
	}
	m.logger.Debug("intmap compacted values",
		slog.Int("from", len(data)),
		slog.Int("bytes", w),
	)
	if err := m.values.Truncate(w); err != nil {
		return err
	}
	m.dead = 0
	return order.SortArray(m.entries, lessEntry)
}

// search finds key in the sorted entries.
func (m *Map) search(key int64) (int, bool) {
	n := m.entries.Len()
	data := m.entries.Bytes()
	i := sort.Search(n, func(i int) bool {
		return keyOf(data[i*entrySize:]) >= key
	})
	return i, i < n && keyOf(data[i*entrySize:]) == key
}

func lessEntry(a, b []byte) bool {
	ka, kb := keyOf(a), keyOf(b)
	if ka != kb {
		return ka < kb
	}
	return binary.LittleEndian.Uint64(a[seqOffset:]) < binary.LittleEndian.Uint64(b[seqOffset:])
}

func lessOffset(a, b []byte) bool {
	return binary.LittleEndian.Uint32(a[offsetOffset:]) < binary.LittleEndian.Uint32(b[offsetOffset:])
}

func keyOf(e []byte) int64 {
	return int64(binary.LittleEndian.Uint64(e))
}

func span(e []byte) (int, int) {
	return int(binary.LittleEndian.Uint32(e[offsetOffset:])), int(binary.LittleEndian.Uint32(e[lengthOffset:]))
}
