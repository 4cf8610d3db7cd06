package cityinfo

import (
	"errors"
	"fmt"
)

// Error kinds returned by Service. Callers match them with errors.Is.
var (
	ErrCityNotFound   = errors.New("city not found")
	ErrUpstream       = errors.New("upstream failure")
	ErrInvalidContent = errors.New("invalid recipe content")
	ErrInvalidRequest = errors.New("invalid request")
	ErrRecipeNotFound = errors.New("recipe not found")
)

// Content validation failures. Both are ErrInvalidContent.
var (
	ErrContentRequired = fmt.Errorf("%w: content is required", ErrInvalidContent)
	ErrContentLength   = fmt.Errorf("%w: content must be between %d and %d characters",
		ErrInvalidContent, MinContentLength, MaxContentLength)
)
