package entities

import "errors"

// Error taxonomy for the chat pipeline. The first five are client-input
// errors detected before any expensive work; the last two are backend
// failures. None are retried.
var (
	ErrRateLimited        = errors.New("too many requests")
	ErrUnauthorizedOrigin = errors.New("unauthorized request origin")
	ErrMalformedRequest   = errors.New("invalid request format")
	ErrInvalidMessage     = errors.New("message content is required")
	ErrMessageTooLong     = errors.New("message too long")
	ErrRetrievalFailure   = errors.New("retrieval failed")
	ErrGenerationFailure  = errors.New("generation failed")
)
