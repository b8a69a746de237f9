package contract

import "errors"

// ErrNotFound is returned by writes that target a row which no longer exists.
var ErrNotFound = errors.New("record not found")
