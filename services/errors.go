package services

import "errors"

// ErrNotFound covers both records that do not exist and records owned by
// another group; callers must not be able to tell the two apart.
var ErrNotFound = errors.New("record not found")
