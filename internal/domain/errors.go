package domain

import "errors"

// ErrOutOfRange is returned when a snippet index does not address a stored snippet
var ErrOutOfRange = errors.New("snippet index out of range")
