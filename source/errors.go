package source

import "errors"

var (
	// Lookup errors
	ErrNotFound    = errors.New("file not found")
	ErrNotRegular  = errors.New("not a regular file")
	ErrInvalidPath = errors.New("invalid path") // Escapes the base directory

	// Backend errors
	ErrAccessDenied  = errors.New("access denied")
	ErrReadFailed    = errors.New("failed to read file")
	ErrInvalidConfig = errors.New("invalid configuration")
)
