package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
)

// BufferImage wraps buf as an image of size d without copying. buf must have
// length d.BufferLen().
func BufferImage(buf PixelBuffer, d Dimensions) (*image.NRGBA, error) {
	if len(buf) != d.BufferLen() {
		return nil, fmt.Errorf("buffer length %d does not match %dx%d", len(buf), d.Width, d.Height)
	}
	return &image.NRGBA{
		Pix:    buf,
		Stride: d.Width * 4,
		Rect:   d.Rect(),
	}, nil
}

// SaveSnapshot writes buf as a PNG file at path.
func SaveSnapshot(path string, buf PixelBuffer, d Dimensions) error {
	if d.Empty() {
		return fmt.Errorf("cannot snapshot empty %dx%d buffer", d.Width, d.Height)
	}
	img, err := BufferImage(buf, d)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	return nil
}
