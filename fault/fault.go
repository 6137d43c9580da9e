// Package fault holds the error classes shared by every container in the
// module.
//
// An error returned by a container carries a detailed message and is marked
// with exactly one class, so callers test the class with errors.Is (or the
// IsX helpers) instead of matching text.
package fault

import (
	"github.com/cockroachdb/errors"
)

// error classes
var (
	// ErrInvalid marks a malformed argument: a bad handle, a missing item,
	// a non-positive size. Nothing was mutated.
	ErrInvalid = errors.New("invalid argument")

	// ErrNoMemory marks a failed growth. The structure is unchanged.
	ErrNoMemory = errors.New("out of memory")

	// ErrInternal marks a broken structural invariant.
	ErrInternal = errors.New("internal error")
)

func Invalidf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalid)
}

func NoMemoryf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrNoMemory)
}

// Internalf reports an invariant violation. The result also answers true to
// errors.HasAssertionFailure.
func Internalf(format string, args ...interface{}) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), ErrInternal)
}

// determine the class of an error
func IsInvalid(err error) bool  { return errors.Is(err, ErrInvalid) }
func IsNoMemory(err error) bool { return errors.Is(err, ErrNoMemory) }
func IsInternal(err error) bool { return errors.Is(err, ErrInternal) }
