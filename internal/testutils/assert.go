package testutils

import (
	"runtime/debug"
	"testing"
)

// Assert(condition) panics if condition is false; Assert(condition, err) panics with panic(err) if condition is false.
//
// Unlike a C-style assert, the check is always performed.
func Assert(condition bool, err ...any) {
	if len(err) > 1 {
		panic("rvv-mmm / testutils: Assert can only handle 1 extra error argument")
	}
	if !condition {
		if len(err) == 0 {
			panic("This is not supposed to be possible")
		} else {
			panic(err[0])
		}
	}
}

// FatalUnless fails the test with the given (formatted) message unless condition holds.
// It prints a stack trace first, since failing checks are often inside helpers that are called from many places.
func FatalUnless(t testing.TB, condition bool, formatstring string, args ...any) {
	t.Helper()
	if !condition {
		debug.PrintStack()
		t.Fatalf(formatstring, args...)
	}
}

// SlicesEqual compares two slices for element-wise equality. nil and empty slices compare equal.
func SlicesEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
