package ratelimiter

import "errors"

var ErrInvalidConfig = errors.New("ratelimiter: rate and burst must be positive")
