package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 20

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS (cube roots)
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS -> linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of shiny spheres colored across hue and
// chroma. The spheres are gathered into one group and divided into a bounding
// volume hierarchy.
func NewSphereGridScene(overrides ...Config) *Scene {
	config := resolveConfig(Config{
		Width:       480,
		Height:      270,
		FieldOfView: math.Pi / 4,
		MaxDepth:    4,
	}, overrides)

	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-10, 20, -10), core.NewColor(1, 0.98, 0.95)))
	w.SetBackground(core.NewColor(0.5, 0.7, 1.0))

	ground := geometry.NewPlane()
	groundMat := material.WithColor(core.NewColor(0.5, 0.5, 0.5))
	groundMat.Specular = 0
	groundMat.Reflective = 0.1
	ground.SetMaterial(groundMat)
	w.AddObject(ground)

	w.AddObject(newSphereGrid(sphereGridSize, 9.0))

	return newScene("spheregrid", w, config, core.Point(0, 8, -9), core.Point(0, 0, 0.5))
}

// newSphereGrid lays out size x size spheres over a square of side extent,
// centered on the origin and resting on y = 0
func newSphereGrid(size int, extent float64) *geometry.Shape {
	spacing := extent / float64(size-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	grid := geometry.NewGroup("spheregrid")
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			x := float64(i)*spacing - extent/2
			z := float64(j)*spacing - extent/2

			// Hue varies along x, chroma along z
			hue := float64(i) / float64(size-1) * 360.0
			chroma := minChroma + float64(j)/float64(size-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			m := material.WithColor(oklchToRGB(lightness, chroma, hue))
			m.Diffuse = 0.7
			m.Specular = 0.6
			m.Shininess = 150
			m.Reflective = 0.2 + 0.1*float64((i+j)%3)/2

			sphere := geometry.NewSphere()
			sphere.SetTransform(core.Chain(core.Scaling(radius, radius, radius), core.Translation(x, radius, z)))
			sphere.SetMaterial(m)
			grid.AddChild(sphere)
		}
	}

	grid.Divide(geometry.DefaultLeafThreshold)
	return grid
}
