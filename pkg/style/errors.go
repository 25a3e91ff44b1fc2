package style

import "errors"

var (
	ErrInvalidDeclarations = errors.New("invalid css declarations")
	ErrEmptyRule           = errors.New("style rule has no declarations")
)
