package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewCylinder creates an open, infinitely long cylinder of radius 1 around the y axis
func NewCylinder() *Shape {
	s := newShape(KindCylinder)
	s.minimum = math.Inf(-1)
	s.maximum = math.Inf(1)
	return s
}

// Truncate limits a cylinder or cone to minimum < y < maximum, optionally capping
// both ends. It returns s for chaining.
func (s *Shape) Truncate(minimum, maximum float64, closed bool) *Shape {
	if s.kind != KindCylinder && s.kind != KindCone {
		panic(fmt.Sprintf("geometry: Truncate on %v", s))
	}
	s.minimum = minimum
	s.maximum = maximum
	s.closed = closed
	s.boundsChanged()
	return s
}

// Minimum returns the lower y extent of a cylinder or cone
func (s *Shape) Minimum() float64 { return s.minimum }

// Maximum returns the upper y extent of a cylinder or cone
func (s *Shape) Maximum() float64 { return s.maximum }

// Closed reports whether a cylinder or cone has end caps
func (s *Shape) Closed() bool { return s.closed }

func cylinderBounds(s *Shape) core.AABB {
	return core.NewAABB(core.Point(-1, s.minimum, -1), core.Point(1, s.maximum, 1))
}

func intersectCylinder(s *Shape, ray core.Ray) Intersections {
	var xs Intersections
	d, o := ray.Direction, ray.Origin

	a := d.X*d.X + d.Z*d.Z

	// Parallel to the y axis: only the caps can be hit
	if core.ApproxEqual(a, 0) {
		return intersectCaps(s, ray, xs, 1, 1)
	}

	b := 2*o.X*d.X + 2*o.Z*d.Z
	c := o.X*o.X + o.Z*o.Z - 1

	xs = intersectWalls(s, ray, xs, a, b, c)
	return intersectCaps(s, ray, xs, 1, 1)
}

// intersectWalls solves the quadratic shared by cylinders and cones and keeps the
// roots that fall strictly between the y extents
func intersectWalls(s *Shape, ray core.Ray, xs Intersections, a, b, c float64) Intersections {
	discriminant := b*b - 4*a*c
	if core.ApproxEqual(discriminant, 0) {
		discriminant = 0
	}
	if discriminant < 0 {
		return xs
	}

	sqrtD := math.Sqrt(discriminant)
	denom := 1 / (2 * a)
	t0 := (-b - sqrtD) * denom
	t1 := (-b + sqrtD) * denom
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if y0 := ray.Origin.Y + t0*ray.Direction.Y; s.minimum < y0 && y0 < s.maximum {
		xs = append(xs, NewIntersection(t0, s))
	}
	if y1 := ray.Origin.Y + t1*ray.Direction.Y; s.minimum < y1 && y1 < s.maximum {
		xs = append(xs, NewIntersection(t1, s))
	}
	return xs
}

// intersectCaps appends hits on the end caps of a closed cylinder or cone. The caps
// have squared radius minRadius at the minimum extent and maxRadius at the maximum.
func intersectCaps(s *Shape, ray core.Ray, xs Intersections, minRadius, maxRadius float64) Intersections {
	if !s.closed || core.ApproxEqual(ray.Direction.Y, 0) {
		return xs
	}

	t := (s.minimum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, minRadius) {
		xs = append(xs, NewIntersection(t, s))
	}

	t = (s.maximum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, maxRadius) {
		xs = append(xs, NewIntersection(t, s))
	}
	return xs
}

// checkCap reports whether the ray at t lies within radius of the y axis
func checkCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	dist := x*x + z*z
	return dist < radius || core.ApproxEqual(dist, radius)
}

func cylinderNormal(s *Shape, p core.Tuple) core.Tuple {
	dist := p.X*p.X + p.Z*p.Z
	if dist < 1 && p.Y >= s.maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < 1 && p.Y <= s.minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}
	return core.Vector(p.X, 0, p.Z)
}
