package imaging

import (
	"image"
	"sync"
)

// Dimensions is the width and height of an image in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DimensionsOf returns the size of img, or zero for a nil image.
func DimensionsOf(img image.Image) Dimensions {
	if img == nil {
		return Dimensions{}
	}
	b := img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}

// Empty reports whether either side is zero.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Rect returns the region anchored at the origin covering d.
func (d Dimensions) Rect() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// BufferLen is the length of an RGBA pixel buffer covering d.
func (d Dimensions) BufferLen() int {
	if d.Empty() {
		return 0
	}
	return d.Width * d.Height * 4
}

// Tracker holds the authoritative dimensions of the uploaded image.
//
// Both extraction paths size their reads from the tracked value, so the
// uploaded and candidate buffers are always comparable element by element.
// The value is overwritten every time the uploaded image is extracted and
// read by every candidate extraction that follows.
type Tracker struct {
	mu       sync.RWMutex
	dims     Dimensions
	recorded bool
}

// NewTracker returns a tracker with nothing recorded.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record reads the natural size of el and stores it, replacing any previous
// value. An element that has not loaded yet records as 0x0.
func (t *Tracker) Record(el ImageElement) Dimensions {
	d := el.NaturalSize()
	if d.Width < 0 {
		d.Width = 0
	}
	if d.Height < 0 {
		d.Height = 0
	}

	t.mu.Lock()
	t.dims = d
	t.recorded = true
	t.mu.Unlock()

	return d
}

// Dimensions returns the recorded value and whether Record has been called
// since the tracker was created or last reset.
func (t *Tracker) Dimensions() (Dimensions, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dims, t.recorded
}

// Reset forgets the recorded dimensions.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.dims = Dimensions{}
	t.recorded = false
	t.mu.Unlock()
}
