package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// NewTriangleMeshScene creates a scene with a box, a pyramid and an icosahedron,
// each built from triangles in a group of its own
func NewTriangleMeshScene(overrides ...Config) *Scene {
	config := resolveConfig(Config{
		Width:       400,
		Height:      225,
		FieldOfView: math.Pi / 3,
		MaxDepth:    5,
	}, overrides)

	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-5, 10, -10), core.White))
	w.SetBackground(core.NewColor(0.5, 0.7, 1.0))

	ground := geometry.NewPlane()
	groundMat := material.WithColor(core.NewColor(0.7, 0.7, 0.7))
	groundMat.Specular = 0
	ground.SetMaterial(groundMat)
	w.AddObject(ground)

	redMetal := material.WithColor(core.NewColor(0.8, 0.2, 0.2))
	redMetal.Reflective = 0.4
	blue := material.WithColor(core.NewColor(0.2, 0.3, 0.8))
	gold := material.WithColor(core.NewColor(0.8, 0.6, 0.2))
	gold.Reflective = 0.5
	gold.Shininess = 300

	// Box turned 30 degrees about y, sitting on the ground
	box := createBoxMesh(core.Vector(1, 1, 1), redMetal)
	box.SetTransform(core.Chain(core.RotationY(math.Pi/6), core.Translation(-2, 0.5, 0)))

	pyramid := createPyramidMesh(1.5, 2.0, blue)
	pyramid.SetTransform(core.Chain(core.RotationY(math.Pi/4), core.Translation(0, 1, 0)))

	icosahedron := createIcosahedronMesh(0.8, gold)
	icosahedron.SetTransform(core.Chain(core.RotationY(math.Pi/3), core.Translation(2, 0.8, 0)))

	w.AddObject(box, pyramid, icosahedron)

	return newScene("trianglemesh", w, config, core.Point(0, 2.5, -6), core.Point(0, 0.8, 0))
}

// newMesh builds a group of triangles from a vertex list and flattened index
// triples, sharing one material
func newMesh(name string, vertices []core.Tuple, faces []int, m *material.Material) *geometry.Shape {
	mesh := geometry.NewGroup(name)
	for i := 0; i+2 < len(faces); i += 3 {
		mesh.AddChild(geometry.NewTriangle(vertices[faces[i]], vertices[faces[i+1]], vertices[faces[i+2]]))
	}
	mesh.SetMaterial(m)
	return mesh
}

// createBoxMesh creates a box of the given size centered on the origin
func createBoxMesh(size core.Tuple, m *material.Material) *geometry.Shape {
	h := size.Multiply(0.5)
	vertices := []core.Tuple{
		core.Point(-h.X, -h.Y, -h.Z), // 0: left-bottom-back
		core.Point(+h.X, -h.Y, -h.Z), // 1: right-bottom-back
		core.Point(+h.X, +h.Y, -h.Z), // 2: right-top-back
		core.Point(-h.X, +h.Y, -h.Z), // 3: left-top-back
		core.Point(-h.X, -h.Y, +h.Z), // 4: left-bottom-front
		core.Point(+h.X, -h.Y, +h.Z), // 5: right-bottom-front
		core.Point(+h.X, +h.Y, +h.Z), // 6: right-top-front
		core.Point(-h.X, +h.Y, +h.Z), // 7: left-top-front
	}

	// 2 triangles per face
	faces := []int{
		0, 1, 2, 0, 2, 3, // z-
		4, 6, 5, 4, 7, 6, // z+
		0, 3, 7, 0, 7, 4, // x-
		1, 5, 6, 1, 6, 2, // x+
		0, 4, 5, 0, 5, 1, // y-
		3, 2, 6, 3, 6, 7, // y+
	}
	return newMesh("box", vertices, faces, m)
}

// createPyramidMesh creates a square pyramid centered on the origin
func createPyramidMesh(baseSize, height float64, m *material.Material) *geometry.Shape {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Tuple{
		core.Point(-halfBase, -halfHeight, -halfBase), // 0: left-back
		core.Point(+halfBase, -halfHeight, -halfBase), // 1: right-back
		core.Point(+halfBase, -halfHeight, +halfBase), // 2: right-front
		core.Point(-halfBase, -halfHeight, +halfBase), // 3: left-front
		core.Point(0, +halfHeight, 0),                 // 4: apex
	}

	faces := []int{
		0, 2, 1, 0, 3, 2, // base
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}
	return newMesh("pyramid", vertices, faces, m)
}

// createIcosahedronMesh creates a 20-sided polyhedron with the given circumradius
func createIcosahedronMesh(radius float64, m *material.Material) *geometry.Shape {
	phi := (1 + math.Sqrt(5)) / 2
	scale := radius / math.Sqrt(1+phi*phi)

	vertices := []core.Tuple{
		core.Point(-1, phi, 0), core.Point(1, phi, 0), core.Point(-1, -phi, 0), core.Point(1, -phi, 0),
		core.Point(0, -1, phi), core.Point(0, 1, phi), core.Point(0, -1, -phi), core.Point(0, 1, -phi),
		core.Point(phi, 0, -1), core.Point(phi, 0, 1), core.Point(-phi, 0, -1), core.Point(-phi, 0, 1),
	}
	for i, v := range vertices {
		vertices[i] = core.Point(v.X*scale, v.Y*scale, v.Z*scale)
	}

	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return newMesh("icosahedron", vertices, faces, m)
}
