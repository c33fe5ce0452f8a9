package imaging

import "errors"

var (
	// ErrMissingElement is returned when an extraction is asked to read from
	// a handle that was never provided.
	ErrMissingElement = errors.New("rendering element not found")

	// ErrOutOfBounds is returned when the requested region does not fit
	// inside the surface being read.
	ErrOutOfBounds = errors.New("read region outside surface bounds")

	// ErrImageNotLoaded is returned in strict mode when the uploaded image
	// reports a zero natural size.
	ErrImageNotLoaded = errors.New("uploaded image has not finished loading")

	// ErrDimensionsUnrecorded is returned in strict mode when the candidate
	// is extracted before any uploaded extraction recorded dimensions.
	ErrDimensionsUnrecorded = errors.New("no uploaded image dimensions recorded")
)
