package symmetry

import (
	"errors"
	"fmt"

	"github.com/emgeom/symxform"
)

// ErrUnknownGroup wraps symxform.ErrInvalidParameter for names that don't
// match the grammar c<n> | d<n> | h<n> | tet | oct | icos | i.
var ErrUnknownGroup = fmt.Errorf("%w: unrecognized symmetry group name", symxform.ErrInvalidParameter)

// ErrIndexOutOfRange wraps symxform.ErrInvalidParameter for a symmetry
// element index outside [0, NSym()).
var ErrIndexOutOfRange = fmt.Errorf("%w: symmetry element index out of range", symxform.ErrInvalidParameter)

// errIndex builds a call-site error for a specific out-of-range index.
func errIndex(n, nsym int) error {
	return fmt.Errorf("%w: index %d not in [0,%d)", ErrIndexOutOfRange, n, nsym)
}

var errBadOrder = errors.New("symmetry order must be positive")
