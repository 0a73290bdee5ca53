package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Refractive indices of common media
const (
	Vacuum  = 1.0
	Air     = 1.00029
	Water   = 1.333
	Glass   = 1.5
	Diamond = 2.417
)

// Material describes how a surface responds to light under the Phong model,
// plus the reflection and refraction terms used by recursive shading
type Material struct {
	Pattern         Pattern // Surface color
	Ambient         float64 // Fraction of the light's color applied regardless of geometry
	Diffuse         float64 // Lambertian term weight
	Specular        float64 // Highlight weight
	Shininess       float64 // Highlight exponent; larger is tighter
	Reflective      float64 // 0 is matte, 1 is a perfect mirror
	Transparency    float64 // 0 is opaque, 1 transmits all refracted light
	RefractiveIndex float64
}

// Default returns a new white, non-reflective, opaque material
func Default() *Material {
	return &Material{
		Pattern:         NewSolid(core.White),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: Vacuum,
	}
}

// NewGlass returns a clear glass material
func NewGlass() *Material {
	m := Default()
	m.Pattern = NewSolid(core.Black)
	m.Diffuse = 0.1
	m.Specular = 1
	m.Shininess = 300
	m.Reflective = 0.9
	m.Transparency = 1
	m.RefractiveIndex = Glass
	return m
}

// NewMirror returns a dark, almost perfectly reflective material
func NewMirror() *Material {
	m := Default()
	m.Pattern = NewSolid(core.Black)
	m.Diffuse = 0.05
	m.Specular = 1
	m.Shininess = 300
	m.Reflective = 0.95
	return m
}

// WithColor returns a default material with a solid color
func WithColor(c core.Color) *Material {
	m := Default()
	m.Pattern = NewSolid(c)
	return m
}

// Copy returns a shallow copy; the pattern is shared
func (m *Material) Copy() *Material {
	c := *m
	return &c
}

// ColorAt evaluates the material's pattern at a world point on obj
func (m *Material) ColorAt(obj ObjectSpace, worldPoint core.Tuple) core.Color {
	if m.Pattern == nil {
		return core.White
	}
	return ColorAtObject(m.Pattern, obj, worldPoint)
}

// IsReflective reports whether the material contributes a reflected color
func (m *Material) IsReflective() bool {
	return !core.ApproxEqual(m.Reflective, 0)
}

// IsTransparent reports whether the material contributes a refracted color
func (m *Material) IsTransparent() bool {
	return !core.ApproxEqual(m.Transparency, 0)
}
