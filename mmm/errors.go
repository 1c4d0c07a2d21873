package mmm

import (
	"github.com/pkg/errors"
)

// This file collects all errors that can be returned (or, for contract violations, panicked with) by this package.
//
// IMPORTANT: We usually return errors wrapping the ones given here. Never compare errors for equality. Use [errors.Is]

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "rvv-mmm / mmm: "

var (
	// ErrInvalidParams is wrapped by errors returned by [NewParams] and [NewKernel].
	ErrInvalidParams = errors.New(ErrorPrefix + "invalid Montgomery parameters")

	// ErrUnknownBackend is returned by [BackendByName].
	ErrUnknownBackend = errors.New(ErrorPrefix + "unknown lane backend")

	// ErrCapacity is panicked with (wrapped) if the limb count does not fit the lane capacity of the requested path.
	ErrCapacity = errors.New(ErrorPrefix + "limb count exceeds the lane capacity")

	// ErrLengthMismatch is panicked with (wrapped) if a limb vector passed to the kernel does not have exactly n limbs.
	ErrLengthMismatch = errors.New(ErrorPrefix + "limb vector has the wrong length")
)
