package domain

import "errors"

// Sentinel errors for sequencer operations.
// None of these are shown to the user; they let callers tell a no-op from a start.
var (
	// ErrSectionNotFound indicates the requested section id is not in the registry
	ErrSectionNotFound = errors.New("section not found")

	// ErrAnimating indicates another reveal or reboot holds the animation lock
	ErrAnimating = errors.New("animation in progress")

	// ErrNotAwaiting indicates a confirmation arrived outside the confirmation window
	ErrNotAwaiting = errors.New("not awaiting confirmation")

	// ErrInvalidInput indicates a confirmation key other than Y or N
	ErrInvalidInput = errors.New("invalid confirmation input")

	// ErrInvalidRegistry indicates the section registry failed validation
	ErrInvalidRegistry = errors.New("invalid section registry")
)
