package testutils

import (
	"errors"
	"fmt"
)

// CheckPanic runs fun(), captures any panic and returns whether a panic occurred.
// The panic argument itself is discarded; use [CheckPanicIs] if the kind of panic matters.
//
// This function is only used in testing.
func CheckPanic(fun func()) (didPanic bool) {
	didPanic = true
	defer func() {
		_ = recover()
	}()
	fun()
	didPanic = false
	return
}

// CheckPanicIs runs fun() and reports whether it panicked with an error e satisfying errors.Is(e, target).
// A panic with a non-error argument or with an unrelated error is re-raised, so unexpected failures are not swallowed.
func CheckPanicIs(fun func(), target error) (matched bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			panic(fmt.Sprintf("unexpected panic (wanted %v): %v", target, r))
		}
		matched = true
	}()
	fun()
	return
}
