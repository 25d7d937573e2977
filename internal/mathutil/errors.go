package mathutil

import "errors"

// Errors reported by the strict Try* variants. The legacy functions never
// return them; they fall back silently to the value documented on each.
var (
	ErrSingularMatrix = errors.New("mathutil: matrix determinant is zero")
	ErrNotNormalized  = errors.New("mathutil: quaternion is not normalized")
	ErrAntiParallel   = errors.New("mathutil: vectors are anti-parallel")
)
