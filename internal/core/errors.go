package core

import "errors"

// ErrResourceUnavailable reports that a drawing surface or timer source could
// not be obtained. It is fatal at startup.
var ErrResourceUnavailable = errors.New("resource unavailable")
