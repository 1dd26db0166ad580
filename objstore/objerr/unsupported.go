package objerr

import "errors"

// ErrUnsupportedOperation is returned when attempting to perform an operation which is unsupported by the current
// backend family.
var ErrUnsupportedOperation = errors.New("unsupported operation")
