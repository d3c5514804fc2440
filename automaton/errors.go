package automaton

import "errors"

// ErrNotImplemented is returned by operations the source library leaves
// unimplemented (Validate, Complete), so callers can distinguish "missing
// functionality" from a runtime error.
var ErrNotImplemented = errors.New("automaton: operation not implemented")
