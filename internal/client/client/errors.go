package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("too many requests")
)
