package imaging

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// BufferSummary is a compact description of a pixel buffer, used for
// diagnostics where dumping the buffer itself is impractical.
type BufferSummary struct {
	// Length is the number of bytes in the buffer.
	Length int `json:"length"`

	// Pixels is Length / 4.
	Pixels int `json:"pixels"`

	// MeanColor is the unweighted mean of the RGB channels as "#rrggbb".
	// Empty for an empty buffer.
	MeanColor string `json:"mean_color,omitempty"`

	// MeanAlpha is the mean of the alpha channel (0-255).
	MeanAlpha uint8 `json:"mean_alpha"`
}

// Summarize computes a BufferSummary for buf. Trailing bytes that do not
// make up a whole pixel are counted in Length but otherwise ignored.
func Summarize(buf PixelBuffer) BufferSummary {
	s := BufferSummary{Length: len(buf), Pixels: len(buf) / 4}
	if s.Pixels == 0 {
		return s
	}

	var r, g, b, a uint64
	for i := 0; i+3 < len(buf); i += 4 {
		r += uint64(buf[i])
		g += uint64(buf[i+1])
		b += uint64(buf[i+2])
		a += uint64(buf[i+3])
	}
	n := float64(s.Pixels)

	mean := colorful.Color{
		R: float64(r) / n / 255,
		G: float64(g) / n / 255,
		B: float64(b) / n / 255,
	}
	s.MeanColor = mean.Clamped().Hex()
	s.MeanAlpha = uint8(float64(a)/n + 0.5)

	return s
}
