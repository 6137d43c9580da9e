// Package order sorts byte buffers, typed slices and olist lists in place
// with one quicksort. The sort is not stable.
package order

import (
	"bytes"
	"encoding/binary"
)

// Cutoff is the largest span finished by insertion sort.
const Cutoff = 8

// Less reports whether item a is ordered before item b. It must be a strict
// weak ordering.
type Less func(a, b []byte) bool

// Int32 orders items by the little-endian int32 in their first four bytes.
// Items must be at least 4 bytes; shorter items panic.
func Int32(a, b []byte) bool {
	return int32(binary.LittleEndian.Uint32(a)) < int32(binary.LittleEndian.Uint32(b))
}

// Int64 orders items by the little-endian int64 in their first eight bytes.
// Items must be at least 8 bytes; shorter items panic.
func Int64(a, b []byte) bool {
	return int64(binary.LittleEndian.Uint64(a)) < int64(binary.LittleEndian.Uint64(b))
}

// Uint32 orders items by the little-endian uint32 in their first four bytes.
// Items must be at least 4 bytes; shorter items panic.
func Uint32(a, b []byte) bool {
	return binary.LittleEndian.Uint32(a) < binary.LittleEndian.Uint32(b)
}

// Uint64 orders items by the little-endian uint64 in their first eight bytes.
// Items must be at least 8 bytes; shorter items panic.
func Uint64(a, b []byte) bool {
	return binary.LittleEndian.Uint64(a) < binary.LittleEndian.Uint64(b)
}

// Bytes orders items lexicographically.
func Bytes(a, b []byte) bool {
	return bytes.Compare(a, b) < 0
}

// Reverse inverts less.
func Reverse(less Less) Less {
	return func(a, b []byte) bool {
		return less(b, a)
	}
}

// Stats counts the work done by one or more sorts.
type Stats struct {
	Partitions    int
	InsertionRuns int
	Comparisons   int
	Swaps         int
}
