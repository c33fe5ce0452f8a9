package imaging

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// ImageElement is a rendered image whose natural size can be read
// synchronously. The uploaded image reaches the bridge through this handle.
type ImageElement interface {
	// NaturalSize is the intrinsic size of the image. An image that has not
	// loaded reports 0x0.
	NaturalSize() Dimensions

	// Image returns the decoded pixels, or nil if nothing has loaded.
	Image() image.Image
}

// Surface is a drawing surface whose pixels can be read back. The candidate
// image reaches the bridge through this handle, already drawn.
type Surface interface {
	Bounds() image.Rectangle
	ReadPixels(r image.Rectangle) (PixelBuffer, error)
}

// ImageRef is an ImageElement holding a decoded image. The zero value is an
// element that has not loaded.
type ImageRef struct {
	mu  sync.RWMutex
	img image.Image
}

// NewImageRef returns a ref holding img. img may be nil.
func NewImageRef(img image.Image) *ImageRef {
	return &ImageRef{img: img}
}

// Set replaces the held image, as happens when the user uploads a new file.
func (r *ImageRef) Set(img image.Image) {
	r.mu.Lock()
	r.img = img
	r.mu.Unlock()
}

// NaturalSize implements ImageElement.
func (r *ImageRef) NaturalSize() Dimensions {
	return DimensionsOf(r.Image())
}

// Image implements ImageElement. A nil ref holds nothing.
func (r *ImageRef) Image() image.Image {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.img
}

// Canvas is an off-screen RGBA drawing surface backed by a gg context.
//
// Pixels are stored premultiplied by gg; ReadPixels returns straight
// (non-premultiplied) RGBA, matching what a browser canvas hands back.
// Opaque pixels round-trip exactly. Semi-transparent pixels lose colour
// precision in the premultiplied store, and the loss grows as alpha
// approaches zero; near-transparent channels can read back hundreds of
// levels off. Browser canvases lose precision the same way.
type Canvas struct {
	mu sync.Mutex
	dc *gg.Context
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{dc: gg.NewContext(width, height)}
}

// NewCanvasFromImage creates a canvas sized to img with img painted on it.
// This is how a pre-rendered candidate surface is built.
func NewCanvasFromImage(img image.Image) *Canvas {
	d := DimensionsOf(img)
	c := NewCanvas(d.Width, d.Height)
	c.Paint(img)
	return c
}

// Paint draws img with its top-left corner at the canvas origin.
func (c *Canvas) Paint(img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()

	c.mu.Lock()
	c.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	c.mu.Unlock()
}

// Bounds implements Surface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.dc.Width(), c.dc.Height())
}

// ReadPixels implements Surface. It returns a fresh copy of region r as
// RGBA bytes in row-major order, origin top-left. The region must lie
// within the canvas.
func (c *Canvas) ReadPixels(r image.Rectangle) (PixelBuffer, error) {
	if r.Empty() {
		return PixelBuffer{}, nil
	}
	bounds := c.Bounds()
	if !r.In(bounds) {
		return nil, fmt.Errorf("%w: region (%d,%d)-(%d,%d), surface %dx%d",
			ErrOutOfBounds, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Dx(), bounds.Dy())
	}

	c.mu.Lock()
	region := imaging.Crop(c.dc.Image(), r)
	c.mu.Unlock()

	return PixelBuffer(region.Pix), nil
}
