package web

import (
	"strconv"

	"mockgram/internal/domain"
)

// ParsePostID parses a post id route parameter.
// Returns domain.ErrInvalidPostID unless s is a positive decimal integer.
func ParsePostID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, domain.ErrInvalidPostID
	}
	return id, nil
}

// ParseDimensions parses placeholder width and height route parameters.
// Range checks are left to the renderer.
func ParseDimensions(width, height string) (int, int, error) {
	w, err := strconv.Atoi(width)
	if err != nil {
		return 0, 0, domain.ErrInvalidDimensions
	}
	h, err := strconv.Atoi(height)
	if err != nil {
		return 0, 0, domain.ErrInvalidDimensions
	}
	return w, h, nil
}
