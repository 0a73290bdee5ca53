package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// NewDefaultScene renders the default world: a green sphere around a smaller one,
// seen from five units in front
func NewDefaultScene(overrides ...Config) *Scene {
	config := resolveConfig(Config{
		Width:       400,
		Height:      400,
		FieldOfView: math.Pi / 3,
		MaxDepth:    5,
	}, overrides)

	return newScene("default", world.Default(), config, core.Point(0, 0, -5), core.Point(0, 0, 0))
}

// NewSpheresScene creates three patterned spheres resting on a checkered floor
func NewSpheresScene(overrides ...Config) *Scene {
	config := resolveConfig(Config{
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 3,
		MaxDepth:    5,
	}, overrides)

	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))
	w.AddObject(newCheckeredFloor(0))

	// Large striped sphere in the middle
	middle := geometry.NewSphere()
	middle.SetTransform(core.Translation(-0.5, 1, 0.5))
	stripes := material.NewStripe(core.NewColor(0.1, 1, 0.5), core.NewColor(0.05, 0.5, 0.25))
	stripes.SetTransform(core.Chain(core.Scaling(0.2, 0.2, 0.2), core.RotationZ(math.Pi/4)))
	middleMat := material.Default()
	middleMat.Pattern = stripes
	middleMat.Diffuse = 0.7
	middleMat.Specular = 0.3
	middle.SetMaterial(middleMat)

	// Smaller gradient sphere on the right
	right := geometry.NewSphere()
	right.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)))
	gradient := material.NewGradient(core.NewColor(0.5, 1, 0.1), core.NewColor(1, 0.2, 0.1))
	gradient.SetTransform(core.Chain(core.Scaling(2, 1, 1), core.Translation(-1, 0, 0)))
	rightMat := material.Default()
	rightMat.Pattern = gradient
	rightMat.Diffuse = 0.7
	rightMat.Specular = 0.3
	right.SetMaterial(rightMat)

	// Smallest ringed sphere on the left
	left := geometry.NewSphere()
	left.SetTransform(core.Chain(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)))
	rings := material.NewRing(core.NewColor(1, 0.8, 0.1), core.NewColor(0.6, 0.3, 0))
	rings.SetTransform(core.Chain(core.Scaling(0.15, 0.15, 0.15), core.RotationX(math.Pi/3)))
	leftMat := material.Default()
	leftMat.Pattern = rings
	leftMat.Diffuse = 0.7
	leftMat.Specular = 0.3
	left.SetMaterial(leftMat)

	w.AddObject(middle, right, left)

	return newScene("spheres", w, config, core.Point(0, 1.5, -5), core.Point(0, 1, 0))
}

// NewReflectionScene places a mirror sphere and a hollow glass sphere over a
// reflective checkered floor, with Fresnel blending enabled
func NewReflectionScene(overrides ...Config) *Scene {
	config := resolveConfig(Config{
		Width:       400,
		Height:      225,
		FieldOfView: math.Pi / 3,
		MaxDepth:    6,
	}, overrides)

	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-4.9, 4.9, -1), core.White))
	w.SetFresnel(true)
	w.SetBackground(core.NewColor(0.05, 0.05, 0.1))

	floor := newCheckeredFloor(0.3)

	// Striped wall behind the spheres so the glass has something to bend
	wall := geometry.NewPlane()
	wall.SetTransform(core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, 5)))
	wallStripes := material.NewStripe(core.NewColor(0.45, 0.45, 0.45), core.NewColor(0.55, 0.55, 0.55))
	wallStripes.SetTransform(core.Chain(core.Scaling(0.25, 0.25, 0.25), core.RotationY(math.Pi/2)))
	wallMat := material.Default()
	wallMat.Pattern = wallStripes
	wallMat.Ambient = 0
	wallMat.Diffuse = 0.4
	wallMat.Specular = 0
	wallMat.Reflective = 0.3
	wall.SetMaterial(wallMat)

	mirror := geometry.NewSphere()
	mirror.SetTransform(core.Translation(-1.2, 1, 0.8))
	mirrorMat := material.NewMirror()
	mirrorMat.Pattern = material.NewSolid(core.NewColor(0.2, 0.2, 0.25))
	mirror.SetMaterial(mirrorMat)

	glass := geometry.NewGlassSphere()
	glass.SetTransform(core.Translation(1, 1, -0.5))
	glass.SetMaterial(material.NewGlass())

	// Air bubble inside the glass sphere
	bubble := geometry.NewSphere()
	bubble.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1, 1, -0.5)))
	bubbleMat := material.NewGlass()
	bubbleMat.RefractiveIndex = material.Air
	bubbleMat.Reflective = 0.9
	bubble.SetMaterial(bubbleMat)

	red := geometry.NewSphere()
	red.SetTransform(core.Chain(core.Scaling(0.4, 0.4, 0.4), core.Translation(0.2, 0.4, 2)))
	redMat := material.WithColor(core.NewColor(0.9, 0.2, 0.2))
	redMat.Reflective = 0.1
	red.SetMaterial(redMat)

	w.AddObject(floor, wall, mirror, glass, bubble, red)

	return newScene("reflection", w, config, core.Point(0, 1.8, -5), core.Point(0, 1, 0))
}

// newCheckeredFloor creates the xz plane with a black and white checker
func newCheckeredFloor(reflective float64) *geometry.Shape {
	floor := geometry.NewPlane()
	m := material.Default()
	m.Pattern = material.NewChecker(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.1, 0.1, 0.1))
	m.Specular = 0
	m.Reflective = reflective
	floor.SetMaterial(m)
	return floor
}
