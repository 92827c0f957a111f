package monitoring

import "errors"

var (
	ErrNilRequest = errors.New("transaction request is required")
	ErrPanic      = errors.New("transaction processing panicked")
)
