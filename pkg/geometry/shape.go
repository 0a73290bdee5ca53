package geometry

import (
	"fmt"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Kind identifies the primitive behind a Shape
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindCube
	KindCylinder
	KindCone
	KindTriangle
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindCube:
		return "cube"
	case KindCylinder:
		return "cylinder"
	case KindCone:
		return "cone"
	case KindTriangle:
		return "triangle"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var nextShapeID atomic.Uint64

// Shape is a node in the scene graph: one of a fixed set of primitives, or a group
// of child shapes. Shapes are built before rendering and only read afterwards.
type Shape struct {
	id   uint64
	kind Kind

	transform        core.Matrix // object space -> parent space
	inverse          core.Matrix
	inverseTranspose core.Matrix

	material *material.Material
	parent   *Shape // non-owning; the parent owns its children

	// Cylinder and cone extents
	minimum, maximum float64
	closed           bool

	triangle *triangleData

	// Group state; bounds is kept current as children change
	name     string
	children []*Shape
	bounds   core.AABB
}

func newShape(kind Kind) *Shape {
	return &Shape{
		id:               nextShapeID.Add(1),
		kind:             kind,
		transform:        core.Identity4(),
		inverse:          core.Identity4(),
		inverseTranspose: core.Identity4(),
		material:         material.Default(),
	}
}

// ID returns the process-unique identifier of the shape
func (s *Shape) ID() uint64 {
	return s.id
}

// Kind returns which primitive the shape is
func (s *Shape) Kind() Kind {
	return s.kind
}

func (s *Shape) String() string {
	if s.kind == KindGroup && s.name != "" {
		return fmt.Sprintf("%s#%d(%s)", s.kind, s.id, s.name)
	}
	return fmt.Sprintf("%s#%d", s.kind, s.id)
}

// Transform returns the object-to-parent transform
func (s *Shape) Transform() core.Matrix {
	return s.transform
}

// InverseTransform returns the parent-to-object transform
func (s *Shape) InverseTransform() core.Matrix {
	return s.inverse
}

// SetTransform replaces the shape's transform. A singular matrix is a scene
// construction bug and panics.
func (s *Shape) SetTransform(m core.Matrix) {
	inv, err := m.Inverse()
	if err != nil {
		panic(fmt.Sprintf("geometry: SetTransform on %v: %v", s, err))
	}
	s.transform = m
	s.inverse = inv
	s.inverseTranspose = inv.Transpose()
	s.boundsChanged()
}

// Material returns the shape's material
func (s *Shape) Material() *material.Material {
	return s.material
}

// SetMaterial replaces the shape's material. Setting a material on a group sets it
// on every descendant.
func (s *Shape) SetMaterial(m *material.Material) {
	s.material = m
	for _, child := range s.children {
		child.SetMaterial(m)
	}
}

// Parent returns the group containing this shape, or nil for a root
func (s *Shape) Parent() *Shape {
	return s.parent
}

// WorldToObject converts a world-space point into this shape's object space,
// walking through every ancestor's transform
func (s *Shape) WorldToObject(point core.Tuple) core.Tuple {
	if s.parent != nil {
		point = s.parent.WorldToObject(point)
	}
	return s.inverse.MultiplyTuple(point)
}

// NormalToWorld converts an object-space normal into a unit world-space normal
func (s *Shape) NormalToWorld(normal core.Tuple) core.Tuple {
	n := s.inverseTranspose.MultiplyTuple(normal)
	n.W = 0
	n = n.Normalize()
	if s.parent != nil {
		n = s.parent.NormalToWorld(n)
	}
	return n
}

// NormalAt returns the unit surface normal at a world-space point
func (s *Shape) NormalAt(worldPoint core.Tuple) core.Tuple {
	localPoint := s.WorldToObject(worldPoint)
	return s.NormalToWorld(s.localNormalAt(localPoint))
}

// Bounds returns the object-space bounding box
func (s *Shape) Bounds() core.AABB {
	switch s.kind {
	case KindSphere, KindCube:
		return core.NewAABB(core.Point(-1, -1, -1), core.Point(1, 1, 1))
	case KindPlane:
		return planeBounds()
	case KindCylinder:
		return cylinderBounds(s)
	case KindCone:
		return coneBounds(s)
	case KindTriangle:
		return s.triangle.bounds
	case KindGroup:
		return s.bounds
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %v", s.kind))
	}
}

// ParentSpaceBounds returns the bounds transformed into the parent's space
func (s *Shape) ParentSpaceBounds() core.AABB {
	return s.Bounds().Transform(s.transform)
}

// Intersect returns every intersection of the ray, given in the parent's space,
// with this shape, sorted by t
func (s *Shape) Intersect(ray core.Ray) Intersections {
	return s.localIntersect(ray.Transform(s.inverse))
}

// onLocalIntersect observes every local intersection test. Tests use it to prove
// that pruned children are never visited.
var onLocalIntersect func(s *Shape, local core.Ray)

func (s *Shape) localIntersect(local core.Ray) Intersections {
	if onLocalIntersect != nil {
		onLocalIntersect(s, local)
	}
	switch s.kind {
	case KindSphere:
		return intersectSphere(s, local)
	case KindPlane:
		return intersectPlane(s, local)
	case KindCube:
		return intersectCube(s, local)
	case KindCylinder:
		return intersectCylinder(s, local)
	case KindCone:
		return intersectCone(s, local)
	case KindTriangle:
		return intersectTriangle(s, local)
	case KindGroup:
		return intersectGroup(s, local)
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %v", s.kind))
	}
}

func (s *Shape) localNormalAt(p core.Tuple) core.Tuple {
	switch s.kind {
	case KindSphere:
		return core.Vector(p.X, p.Y, p.Z)
	case KindPlane:
		return core.Vector(0, 1, 0)
	case KindCube:
		return cubeNormal(p)
	case KindCylinder:
		return cylinderNormal(s, p)
	case KindCone:
		return coneNormal(s, p)
	case KindTriangle:
		return s.triangle.normal
	case KindGroup:
		panic(fmt.Sprintf("geometry: normal requested on %v; groups have no surface", s))
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %v", s.kind))
	}
}

// Includes reports whether other is this shape or one of its descendants
func (s *Shape) Includes(other *Shape) bool {
	if s == other {
		return true
	}
	for _, child := range s.children {
		if child.Includes(other) {
			return true
		}
	}
	return false
}

// boundsChanged refreshes every ancestor's cached bounds after this shape's
// extent or transform changed
func (s *Shape) boundsChanged() {
	for p := s.parent; p != nil; p = p.parent {
		p.recomputeBounds()
	}
}
