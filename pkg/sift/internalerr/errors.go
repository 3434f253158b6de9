package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrCorruptModel   = errors.New("corrupt model blob")
	ErrOutOfOrder     = errors.New("token out of order")
	ErrDuplicateToken = errors.New("duplicate token")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
)
