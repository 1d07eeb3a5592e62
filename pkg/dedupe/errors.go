package dedupe

import "errors"

var (
	ErrInvalidTTL = errors.New("dedupe: ttl must be positive")
	ErrNilClient  = errors.New("dedupe: redis client cannot be nil")
)
