package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownResource = errors.New("unknown resource URI")
)
