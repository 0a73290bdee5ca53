package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// NewHexagonScene builds a hexagon out of nested groups: six sides, each a group
// of a corner sphere and an edge cylinder, rotated about the hexagon's axis
func NewHexagonScene(overrides ...Config) *Scene {
	config := resolveConfig(Config{
		Width:       400,
		Height:      300,
		FieldOfView: math.Pi / 3,
		MaxDepth:    5,
	}, overrides)

	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-5, 8, -6), core.White))
	w.AddObject(newCheckeredFloor(0.1))

	hex := NewHexagon()
	hex.SetTransform(core.Chain(core.RotationX(-math.Pi/6), core.Translation(0, 1.2, 0)))
	m := material.WithColor(core.NewColor(0.85, 0.55, 0.2))
	m.Reflective = 0.25
	m.Shininess = 100
	hex.SetMaterial(m)
	w.AddObject(hex)

	return newScene("hexagon", w, config, core.Point(0, 2.5, -4.5), core.Point(0, 1, 0))
}

// NewHexagon returns a unit hexagon group lying in the xz plane
func NewHexagon() *geometry.Shape {
	hex := geometry.NewGroup("hexagon")
	for n := 0; n < 6; n++ {
		side := hexagonSide()
		side.SetTransform(core.RotationY(float64(n) * math.Pi / 3))
		hex.AddChild(side)
	}
	return hex
}

func hexagonSide() *geometry.Shape {
	side := geometry.NewGroup("side")
	side.AddChild(hexagonCorner())
	side.AddChild(hexagonEdge())
	return side
}

func hexagonCorner() *geometry.Shape {
	corner := geometry.NewSphere()
	corner.SetTransform(core.Chain(core.Scaling(0.25, 0.25, 0.25), core.Translation(0, 0, -1)))
	return corner
}

func hexagonEdge() *geometry.Shape {
	edge := geometry.NewCylinder().Truncate(0, 1, false)
	edge.SetTransform(core.Chain(
		core.Scaling(0.25, 1, 0.25),
		core.RotationZ(-math.Pi/2),
		core.RotationY(-math.Pi/6),
		core.Translation(0, 0, -1),
	))
	return edge
}
