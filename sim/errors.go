package sim

import "errors"

// ErrInvalidConfiguration reports a study configuration rejected before any
// trial runs: non-positive geometry, a subset size exceeding the server
// count, or a density spec that cannot produce a valid density.
var ErrInvalidConfiguration = errors.New("invalid configuration")
