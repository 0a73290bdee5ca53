package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// NewPrimitivesScene lines up one of each bounded primitive on a floor: a cube,
// a capped cylinder, an open cylinder, a double cone and a triangle
func NewPrimitivesScene(overrides ...Config) *Scene {
	config := resolveConfig(Config{
		Width:       480,
		Height:      270,
		FieldOfView: math.Pi / 3,
		MaxDepth:    5,
	}, overrides)

	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-6, 8, -8), core.White))
	w.SetBackground(core.NewColor(0.1, 0.1, 0.12))

	floor := geometry.NewPlane()
	floorMat := material.WithColor(core.NewColor(0.6, 0.6, 0.6))
	floorMat.Specular = 0
	floorMat.Reflective = 0.15
	floor.SetMaterial(floorMat)

	// Cube turned to show three faces
	cube := geometry.NewCube()
	cube.SetTransform(core.Chain(
		core.Scaling(0.6, 0.6, 0.6),
		core.RotationY(math.Pi/6),
		core.Translation(-3, 0.6, 0.5),
	))
	cubeMat := material.WithColor(core.NewColor(0.8, 0.25, 0.2))
	cubeMat.Specular = 0.4
	cube.SetMaterial(cubeMat)

	// Closed cylinder, tilted toward the camera so its cap is visible
	capped := geometry.NewCylinder().Truncate(0, 1.5, true)
	capped.SetTransform(core.Chain(
		core.Scaling(0.5, 1, 0.5),
		core.RotationX(-math.Pi/10),
		core.Translation(-1.5, 0, 0.8),
	))
	cappedMat := material.WithColor(core.NewColor(0.2, 0.4, 0.85))
	capped.SetMaterial(cappedMat)

	// Open tube lying on its side; the hollow interior is visible
	tube := geometry.NewCylinder().Truncate(-1, 1, false)
	tube.SetTransform(core.Chain(
		core.Scaling(0.45, 0.6, 0.45),
		core.RotationX(math.Pi/2),
		core.RotationY(-math.Pi/5),
		core.Translation(0, 0.45, 0),
	))
	tubeMat := material.WithColor(core.NewColor(0.85, 0.7, 0.2))
	tubeMat.Reflective = 0.3
	tube.SetMaterial(tubeMat)

	// Hourglass: a cone truncated on both sides of its apex, capped
	cone := geometry.NewCone().Truncate(-1, 1, true)
	cone.SetTransform(core.Chain(
		core.Scaling(0.5, 0.75, 0.5),
		core.Translation(1.5, 0.75, 0.6),
	))
	coneMat := material.WithColor(core.NewColor(0.3, 0.75, 0.35))
	cone.SetMaterial(coneMat)

	triangle := geometry.NewTriangle(core.Point(2.5, 0, 1.5), core.Point(4, 0, 0.5), core.Point(3.2, 1.8, 1))
	triangleMat := material.WithColor(core.NewColor(0.7, 0.3, 0.8))
	triangleMat.Specular = 0.2
	triangle.SetMaterial(triangleMat)

	w.AddObject(floor, cube, capped, tube, cone, triangle)

	return newScene("primitives", w, config, core.Point(0, 3, -6), core.Point(0, 0.6, 0.5))
}
