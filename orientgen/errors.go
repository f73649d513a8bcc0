package orientgen

import (
	"fmt"

	"github.com/emgeom/symxform"
)

// ErrUnknownGenerator wraps symxform.ErrInvalidParameter for a generator
// name outside {eman, even, saff, rand, opt}.
var ErrUnknownGenerator = fmt.Errorf("%w: unrecognized orientation generator", symxform.ErrInvalidParameter)

// ErrInvalidDelta wraps symxform.ErrInvalidParameter for a non-positive
// angular step or point count, for a request that sets both (or neither)
// of Delta and N where exactly one is required, or for a negative Phitoo.
var ErrInvalidDelta = fmt.Errorf("%w: angular step or count must be positive", symxform.ErrInvalidParameter)
