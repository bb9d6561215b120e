package memutils

import (
	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer
}

// CheckPow2 returns an error wrapping PowerOfTwoError if number is zero or is not a power of two. name
// is used to identify the offending value in the error message.
func CheckPow2[T Number](number T, name string) error {
	if number == 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the next multiple of alignment, which must be a power of two.
func AlignUp[T Number](value T, alignment uint) T {
	return (value + T(alignment) - 1) & ^(T(alignment) - 1)
}

// AlignDown rounds value down to the previous multiple of alignment, which must be a power of two.
func AlignDown[T Number](value T, alignment uint) T {
	return value & ^(T(alignment) - 1)
}

// AlignmentPadding returns the number of bytes that must be added to value to reach the next multiple
// of alignment.
func AlignmentPadding[T Number](value T, alignment uint) T {
	return AlignUp(value, alignment) - value
}
