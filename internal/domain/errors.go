package domain

import "errors"

// ErrNotFound is returned by any lookup whose target row does not exist.
var ErrNotFound = errors.New("not found")
