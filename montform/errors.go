package montform

import (
	"github.com/pkg/errors"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "rvv-mmm / montform: "

var (
	// ErrEvenModulus is returned by [NewModulus] for even moduli, which have no Montgomery representation.
	ErrEvenModulus = errors.New(ErrorPrefix + "modulus must be odd")

	// ErrModulusTooSmall is returned by [NewModulus] for moduli < 3 (including nil and negative ones).
	ErrModulusTooSmall = errors.New(ErrorPrefix + "modulus must be at least 3")

	// ErrOutOfRange is returned by [Modulus.Limbs] for values that are negative or not smaller than the modulus.
	ErrOutOfRange = errors.New(ErrorPrefix + "value is not reduced modulo the modulus")
)
