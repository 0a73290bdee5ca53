package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSphere creates a unit sphere centered at the origin
func NewSphere() *Shape {
	return newShape(KindSphere)
}

// NewGlassSphere creates a unit sphere with a fully transparent material of
// refractive index 1.5
func NewGlassSphere() *Shape {
	s := NewSphere()
	s.material.Transparency = 1
	s.material.RefractiveIndex = material.Glass
	return s
}

func intersectSphere(s *Shape, ray core.Ray) Intersections {
	// Vector from sphere center to ray origin
	sphereToRay := ray.Origin.Subtract(core.Point(0, 0, 0))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	denom := 1 / (2 * a)
	return Intersections{
		NewIntersection((-b-sqrtD)*denom, s),
		NewIntersection((-b+sqrtD)*denom, s),
	}
}
