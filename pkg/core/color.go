package core

import (
	"fmt"
	"math"
)

// Color is an RGB triple with every channel in [0, 1].
// All arithmetic returns an already clamped value.
type Color struct {
	R, G, B float64
}

// Black is the zero color
var Black = Color{}

// White is the full-intensity color
var White = Color{R: 1, G: 1, B: 1}

func clampChannel(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NewColor creates a color, clamping each channel into [0, 1]
func NewColor(r, g, b float64) Color {
	return Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

// Gray returns a color with all channels set to v
func Gray(v float64) Color {
	return NewColor(v, v, v)
}

// ColorFromRGB8 converts 8-bit channels to a normalized color
func ColorFromRGB8(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Add returns the channel-wise sum, clamped
func (c Color) Add(other Color) Color {
	return NewColor(c.R+other.R, c.G+other.G, c.B+other.B)
}

// Multiply returns the channel-wise product
func (c Color) Multiply(other Color) Color {
	return NewColor(c.R*other.R, c.G*other.G, c.B*other.B)
}

// Scale multiplies every channel by s, clamped
func (c Color) Scale(s float64) Color {
	return NewColor(c.R*s, c.G*s, c.B*s)
}

// IsZero reports whether all channels are zero
func (c Color) IsZero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Equals compares two colors channel-wise within Epsilon
func (c Color) Equals(other Color) bool {
	return ApproxEqual(c.R, other.R) && ApproxEqual(c.G, other.G) && ApproxEqual(c.B, other.B)
}

// RGB8 converts the color to 8-bit channels with rounding
func (c Color) RGB8() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clampChannel(v) * 255))
}

// String formats the color for logs and test failures
func (c Color) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", c.R, c.G, c.B)
}
