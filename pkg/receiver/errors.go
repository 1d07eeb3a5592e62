package receiver

import "errors"

var (
	ErrNilRegistry   = errors.New("receiver: forms registry cannot be nil")
	ErrNilDispatcher = errors.New("receiver: dispatcher cannot be nil")
)
