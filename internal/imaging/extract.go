package imaging

import "reflect"

// PixelBuffer is a flat sequence of RGBA channel values, four bytes per
// pixel, row-major with the origin at the top-left. A buffer covering
// Dimensions d has length d.BufferLen().
type PixelBuffer []uint8

// Sequence converts the buffer to a plain integer slice so it serializes as
// an ordinary array rather than a binary blob. The result is never nil.
func (b PixelBuffer) Sequence() []int {
	seq := make([]int, len(b))
	for i, v := range b {
		seq[i] = int(v)
	}
	return seq
}

// Extractor produces pixel buffers for the uploaded and candidate images,
// both sized by the dimensions held in its Tracker.
type Extractor struct {
	tracker *Tracker
	strict  bool
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithStrictDimensions makes zero or unrecorded dimensions an error instead
// of producing an empty buffer.
func WithStrictDimensions(strict bool) ExtractorOption {
	return func(e *Extractor) {
		e.strict = strict
	}
}

// NewExtractor returns an extractor reading and writing dimensions through
// tracker. A nil tracker gets a fresh one.
func NewExtractor(tracker *Tracker, opts ...ExtractorOption) *Extractor {
	if tracker == nil {
		tracker = NewTracker()
	}
	e := &Extractor{tracker: tracker}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tracker returns the tracker shared by both extraction paths.
func (e *Extractor) Tracker() *Tracker {
	return e.tracker
}

// ExtractUploaded records the natural size of el, draws it onto a fresh
// off-screen canvas of that size and reads back the whole canvas.
//
// An element that has not loaded records 0x0 and yields an empty buffer
// (or ErrImageNotLoaded in strict mode).
func (e *Extractor) ExtractUploaded(el ImageElement) (PixelBuffer, error) {
	if isNil(el) {
		return nil, ErrMissingElement
	}

	d := e.tracker.Record(el)
	if d.Empty() {
		if e.strict {
			return nil, ErrImageNotLoaded
		}
		return PixelBuffer{}, nil
	}

	canvas := NewCanvas(d.Width, d.Height)
	canvas.Paint(el.Image())
	return canvas.ReadPixels(d.Rect())
}

// ExtractCandidate reads a region the size of the recorded uploaded image
// from the pre-drawn surface s. The surface's own size is only used to
// reject reads that would fall outside it.
func (e *Extractor) ExtractCandidate(s Surface) (PixelBuffer, error) {
	if isNil(s) {
		return nil, ErrMissingElement
	}

	d, recorded := e.tracker.Dimensions()
	if !recorded && e.strict {
		return nil, ErrDimensionsUnrecorded
	}
	if d.Empty() {
		if e.strict {
			return nil, ErrImageNotLoaded
		}
		return PixelBuffer{}, nil
	}

	return s.ReadPixels(d.Rect())
}

// isNil reports whether h is nil or an interface holding a nil pointer,
// such as a (*ImageRef)(nil) passed as an ImageElement.
func isNil(h interface{}) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
