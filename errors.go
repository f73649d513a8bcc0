package symxform

import "errors"

// The three error kinds of the closed set shared by this module and its
// symmetry/orientgen subpackages. Every more specific sentinel error wraps
// one of these via fmt.Errorf("%w: ..."), so callers may test broadly with
// errors.Is(err, symxform.ErrNumeric) or narrowly against a specific
// sentinel.
var (
	// ErrInvalidConvention indicates an unrecognized Euler convention.
	ErrInvalidConvention = errors.New("invalid euler convention")
	// ErrInvalidParameter indicates a parameter outside its valid domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNumeric indicates a numeric failure: singular matrix, zero-length
	// vector where non-zero is required, or an unresolvable computation.
	ErrNumeric = errors.New("numeric error")
)
