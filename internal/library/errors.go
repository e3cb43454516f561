package library

import "errors"

var (
	// ErrNotFound reports that the target of a read, update, or delete does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrParentMissing reports a write under a parent that cannot be
	// resolved, such as posting an album to an unknown artist.
	ErrParentMissing = errors.New("parent does not exist")

	// ErrInvalidTrackNumber reports a track number that does not parse as an
	// integer. Track numbers are validated when a song is written, not when
	// the list is sorted.
	ErrInvalidTrackNumber = errors.New("track number is not an integer")
)
