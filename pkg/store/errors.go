package store

import "errors"

// ErrNotFound is returned by metadata stores when a record does not exist.
var ErrNotFound = errors.New("not found")
