// Package imaging extracts comparable raw pixel buffers from two differently
// rendered images.
//
// The uploaded image arrives as an ImageElement that still has to be drawn;
// the candidate image arrives as a Surface that has already been drawn by the
// generation pipeline. Both extractions are sized by the same Dimensions,
// held in a Tracker, so the resulting buffers line up pixel for pixel even
// when the candidate surface has a different native size.
//
// # Buffer Format
//
// A PixelBuffer holds straight (non-premultiplied) RGBA bytes:
//   - 4 bytes per pixel, in R, G, B, A order
//   - rows top to bottom, pixels left to right within a row
//   - length width*height*4
//
// # Dimension Recording
//
// ExtractUploaded records the uploaded image's natural size on every call,
// overwriting the previous value. ExtractCandidate only reads it. A candidate
// extraction with nothing recorded, or after an upload that had not loaded,
// sees 0x0 and returns an empty buffer. WithStrictDimensions turns both cases
// into errors instead.
//
// # Error Handling
//
// Failures are reported with the sentinel errors in errors.go, possibly
// wrapped; compare with errors.Is:
//   - ErrMissingElement: a nil handle was passed
//   - ErrOutOfBounds: the read region exceeds the surface
//   - ErrImageNotLoaded, ErrDimensionsUnrecorded: strict mode only
//
// # Thread Safety
//
// ImageCache, ImageRef, Canvas and Tracker are safe for concurrent use.
// Extractions are independent, but a candidate extraction racing an uploaded
// one may observe either the old or the new dimensions.
package imaging
