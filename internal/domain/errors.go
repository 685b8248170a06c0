package domain

import "errors"

var (
	// ErrViewNotFound is returned when a view id is unknown or its state expired.
	ErrViewNotFound = errors.New("profile view not found or expired")

	// ErrInvalidTab is returned when a tab name is not one of the known tabs.
	ErrInvalidTab = errors.New("invalid tab")

	// ErrInvalidPostID is returned when a post id cannot be parsed.
	ErrInvalidPostID = errors.New("invalid post id")

	// ErrRateLimited is returned when rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidDimensions is returned for placeholder sizes outside the allowed range.
	ErrInvalidDimensions = errors.New("invalid placeholder dimensions")
)
