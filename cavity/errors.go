package cavity

import (
	"errors"
	"fmt"
)

var (
	// ErrUnstable is returned when s lies outside the stability range of
	// either transverse plane.
	ErrUnstable = errors.New("cavity: unstable for the supplied s value")

	// ErrUnstableForAllS is returned when no usable s range exists.
	ErrUnstableForAllS = errors.New("cavity: unstable for all s values")

	// ErrInvalidConfiguration is returned for parameters that make the
	// transfer matrices or stability bounds undefined.
	ErrInvalidConfiguration = errors.New("cavity: invalid configuration")
)

// UnstableError reports the s value that was rejected together with the
// stability range it was checked against.
type UnstableError struct {
	S      float64
	Bounds Bounds
}

func (e *UnstableError) Error() string {
	return fmt.Sprintf("%v: s = %g m outside [%g, %g] m", ErrUnstable, e.S, e.Bounds.Min, e.Bounds.Max)
}

func (e *UnstableError) Unwrap() error {
	return ErrUnstable
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
