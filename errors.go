package lukiwiki

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrInputTooLarge = errors.New("input exceeds maximum size")
	ErrRender        = errors.New("markdown rendering failed")
)
