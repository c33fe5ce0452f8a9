package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestImageRef_ZeroValue(t *testing.T) {
	var ref ImageRef
	if ref.Image() != nil {
		t.Error("zero ImageRef should hold no image")
	}
	if d := ref.NaturalSize(); d != (Dimensions{}) {
		t.Errorf("NaturalSize: got %+v, want zero", d)
	}
}

func TestImageRef_Set(t *testing.T) {
	ref := NewImageRef(nil)
	img := solidImage(12, 7, color.White)
	ref.Set(img)

	if ref.Image() != img {
		t.Error("Image did not return the image passed to Set")
	}
	if d := ref.NaturalSize(); d != (Dimensions{Width: 12, Height: 7}) {
		t.Errorf("NaturalSize: got %+v, want 12x7", d)
	}
}

func TestImageRef_Nil(t *testing.T) {
	var ref *ImageRef
	if ref.Image() != nil {
		t.Error("nil ImageRef should hold no image")
	}
	if d := ref.NaturalSize(); d != (Dimensions{}) {
		t.Errorf("NaturalSize: got %+v, want zero", d)
	}
}

func TestNewCanvas_Bounds(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"regular", 640, 480, image.Rect(0, 0, 640, 480)},
		{"empty", 0, 0, image.Rectangle{}},
		{"negative clamps to zero", -5, 10, image.Rect(0, 0, 0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(tt.w, tt.h)
			if got := c.Bounds(); got != tt.want {
				t.Errorf("Bounds: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanvas_ReadPixels_Transparent(t *testing.T) {
	c := NewCanvas(3, 2)
	buf, err := c.ReadPixels(c.Bounds())
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	if len(buf) != 3*2*4 {
		t.Fatalf("length: got %d, want %d", len(buf), 3*2*4)
	}
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("byte %d: got %d, want 0 on a fresh canvas", i, v)
		}
	}
}

func TestCanvas_ReadPixels_RowMajorRGBA(t *testing.T) {
	c := NewCanvasFromImage(quadrantImage(2, 2))

	buf, err := c.ReadPixels(image.Rect(0, 0, 2, 2))
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}

	want := []uint8{
		255, 0, 0, 255, // (0,0) red
		0, 255, 0, 255, // (1,0) green
		0, 0, 255, 255, // (0,1) blue
		255, 255, 255, 255, // (1,1) white
	}
	if len(buf) != len(want) {
		t.Fatalf("length: got %d, want %d", len(buf), len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("byte %d: got %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestCanvas_ReadPixels_OffsetRegion(t *testing.T) {
	c := NewCanvasFromImage(quadrantImage(4, 4))

	// Single pixel from the bottom-right (white) quadrant
	buf, err := c.ReadPixels(image.Rect(3, 3, 4, 4))
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	want := []uint8{255, 255, 255, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("byte %d: got %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestCanvas_ReadPixels_EmptyRegion(t *testing.T) {
	c := NewCanvas(10, 10)
	buf, err := c.ReadPixels(image.Rectangle{})
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	if buf == nil || len(buf) != 0 {
		t.Errorf("empty region: got %v, want non-nil empty buffer", buf)
	}
}

func TestCanvas_ReadPixels_OutOfBounds(t *testing.T) {
	c := NewCanvas(100, 100)

	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"too wide", image.Rect(0, 0, 101, 50)},
		{"too tall", image.Rect(0, 0, 50, 101)},
		{"negative origin", image.Rect(-1, -1, 10, 10)},
		{"entirely outside", image.Rect(200, 200, 300, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ReadPixels(tt.r)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("ReadPixels(%v): got %v, want ErrOutOfBounds", tt.r, err)
			}
		})
	}
}

func TestCanvas_ReadPixels_ReturnsCopy(t *testing.T) {
	c := NewCanvasFromImage(solidImage(2, 2, color.RGBA{10, 20, 30, 255}))

	first, err := c.ReadPixels(c.Bounds())
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	for i := range first {
		first[i] = 0
	}

	second, err := c.ReadPixels(c.Bounds())
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	if second[0] != 10 || second[1] != 20 || second[2] != 30 || second[3] != 255 {
		t.Errorf("canvas changed after mutating a read buffer: %v", second[:4])
	}
}

func TestCanvas_PaintSubImage(t *testing.T) {
	// The white bottom-right quadrant, whose bounds do not start at the origin
	sub := quadrantImage(4, 4).SubImage(image.Rect(2, 2, 4, 4))
	c := NewCanvasFromImage(sub)

	if c.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Bounds: got %v, want (0,0)-(2,2)", c.Bounds())
	}
	buf, err := c.ReadPixels(c.Bounds())
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	for i, v := range buf {
		if v != 255 {
			t.Fatalf("byte %d: got %d, want 255 (white)", i, v)
		}
	}
}

func TestCanvas_PaintNil(t *testing.T) {
	c := NewCanvas(2, 2)
	// Should not panic
	c.Paint(nil)
}
