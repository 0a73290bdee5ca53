package core

import "fmt"

// Color is an RGBA color. Alpha has no role in shading and is reset to 1 by every
// arithmetic operation.
type Color struct {
	R, G, B, A float64
}

var (
	Black = NewColor(0, 0, 0)
	White = NewColor(1, 1, 1)
)

// NewColor creates an opaque color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Add returns the componentwise sum of two colors
func (c Color) Add(other Color) Color {
	return NewColor(c.R+other.R, c.G+other.G, c.B+other.B)
}

// Subtract returns the componentwise difference of two colors
func (c Color) Subtract(other Color) Color {
	return NewColor(c.R-other.R, c.G-other.G, c.B-other.B)
}

// Multiply scales the color by a scalar
func (c Color) Multiply(scalar float64) Color {
	return NewColor(c.R*scalar, c.G*scalar, c.B*scalar)
}

// Blend returns the Hadamard product of two colors
func (c Color) Blend(other Color) Color {
	return NewColor(c.R*other.R, c.G*other.G, c.B*other.B)
}

// Clamp returns a color with components clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return NewColor(
		max(minVal, min(maxVal, c.R)),
		max(minVal, min(maxVal, c.G)),
		max(minVal, min(maxVal, c.B)),
	)
}

// Equals compares the RGB channels within Epsilon
func (c Color) Equals(other Color) bool {
	return ApproxEqual(c.R, other.R) &&
		ApproxEqual(c.G, other.G) &&
		ApproxEqual(c.B, other.B)
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%.5f, %.5f, %.5f)", c.R, c.G, c.B)
}
