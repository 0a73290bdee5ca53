package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// triangleData caches the edge vectors, face normal and bounds of a triangle
type triangleData struct {
	p1, p2, p3 core.Tuple
	e1, e2     core.Tuple
	normal     core.Tuple
	bounds     core.AABB
}

// NewTriangle creates a flat triangle with vertices p1, p2, p3
func NewTriangle(p1, p2, p3 core.Tuple) *Shape {
	s := newShape(KindTriangle)
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	s.triangle = &triangleData{
		p1:     p1,
		p2:     p2,
		p3:     p3,
		e1:     e1,
		e2:     e2,
		normal: e2.Cross(e1).Normalize(),
		bounds: core.NewAABBFromPoints(p1, p2, p3),
	}
	return s
}

func (s *Shape) mustTriangle() *triangleData {
	if s.triangle == nil {
		panic(fmt.Sprintf("geometry: %v is not a triangle", s))
	}
	return s.triangle
}

// P1 returns the first vertex of a triangle
func (s *Shape) P1() core.Tuple { return s.mustTriangle().p1 }

// P2 returns the second vertex of a triangle
func (s *Shape) P2() core.Tuple { return s.mustTriangle().p2 }

// P3 returns the third vertex of a triangle
func (s *Shape) P3() core.Tuple { return s.mustTriangle().p3 }

// E1 returns the edge p2-p1 of a triangle
func (s *Shape) E1() core.Tuple { return s.mustTriangle().e1 }

// E2 returns the edge p3-p1 of a triangle
func (s *Shape) E2() core.Tuple { return s.mustTriangle().e2 }

// FaceNormal returns the object-space normal of a triangle
func (s *Shape) FaceNormal() core.Tuple { return s.mustTriangle().normal }

// intersectTriangle implements the Möller-Trumbore test
func intersectTriangle(s *Shape, ray core.Ray) Intersections {
	tri := s.triangle

	dirCrossE2 := ray.Direction.Cross(tri.e2)
	det := tri.e1.Dot(dirCrossE2)
	if math.Abs(det) < core.Epsilon {
		return nil
	}

	f := 1 / det
	p1ToOrigin := ray.Origin.Subtract(tri.p1)
	u := f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return nil
	}

	originCrossE1 := p1ToOrigin.Cross(tri.e1)
	v := f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return nil
	}

	t := f * tri.e2.Dot(originCrossE1)
	return Intersections{NewIntersection(t, s)}
}
