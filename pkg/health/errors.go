package health

import "github.com/pkg/errors"

var (
	// ErrUnreachable marks a node that did not respond within the request
	// timeout. Never fatal; the next cycle retries naturally.
	ErrUnreachable = errors.New("node unreachable")
)
