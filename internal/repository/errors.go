package repository

import "errors"

// ErrNotFound is returned when a row does not exist. Report generation
// paths treat it as a silent no-op rather than a failure.
var ErrNotFound = errors.New("not found")
