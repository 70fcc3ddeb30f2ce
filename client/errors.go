package client

import "errors"

// Fetch failures. Use errors.Is to classify an error returned in a Result.
var (
	ErrNotFound        = errors.New("not found")
	ErrNetworkOrServer = errors.New("network or server error")
	ErrInvalidPayload  = errors.New("invalid payload")

	// errSuperseded marks a flight whose key was refetched or invalidated
	// while it was running. Its result is thrown away.
	errSuperseded = errors.New("superseded")
)
