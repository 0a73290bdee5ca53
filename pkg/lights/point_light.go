package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// PointLight is a light source with no size, emitting equally in all directions
type PointLight struct {
	Position  core.Tuple
	Intensity core.Color
}

// NewPointLight creates a point light at position with the given intensity
func NewPointLight(position core.Tuple, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit vector from point toward the light and the distance to it
func (l PointLight) DirectionFrom(point core.Tuple) (core.Tuple, float64) {
	v := l.Position.Subtract(point)
	distance := v.Magnitude()
	return v.Normalize(), distance
}

func (l PointLight) String() string {
	return fmt.Sprintf("PointLight{%v, %v}", l.Position, l.Intensity)
}

// Lighting evaluates the Phong model at point on obj. eye and normal must be unit vectors.
// Points in shadow receive only the ambient term.
func Lighting(m *material.Material, obj material.ObjectSpace, light PointLight, point, eye, normal core.Tuple, inShadow bool) core.Color {
	effectiveColor := m.ColorAt(obj, point).Blend(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	lightv, _ := light.DirectionFrom(point)

	// A negative cosine means the light is on the other side of the surface
	lightDotNormal := lightv.Dot(normal)
	if lightDotNormal < 0 {
		return ambient
	}
	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectv := lightv.Negate().Reflect(normal)
	if reflectDotEye := reflectv.Dot(eye); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
