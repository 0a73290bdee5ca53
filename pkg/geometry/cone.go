package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewCone creates an open double-napped cone around the y axis with its apex at the
// origin, infinitely long in both directions. The radius at height y is |y|.
func NewCone() *Shape {
	s := newShape(KindCone)
	s.minimum = math.Inf(-1)
	s.maximum = math.Inf(1)
	return s
}

func coneBounds(s *Shape) core.AABB {
	limit := math.Max(math.Abs(s.minimum), math.Abs(s.maximum))
	return core.NewAABB(core.Point(-limit, s.minimum, -limit), core.Point(limit, s.maximum, limit))
}

func intersectCone(s *Shape, ray core.Ray) Intersections {
	var xs Intersections
	d, o := ray.Direction, ray.Origin

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	c := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	minRadius := s.minimum * s.minimum
	maxRadius := s.maximum * s.maximum

	if core.ApproxEqual(a, 0) {
		// Parallel to one half of the cone: a single wall hit, if any
		if !core.ApproxEqual(b, 0) {
			t := -c / (2 * b)
			if y := o.Y + t*d.Y; s.minimum < y && y < s.maximum {
				xs = append(xs, NewIntersection(t, s))
			}
		}
		return intersectCaps(s, ray, xs, minRadius, maxRadius)
	}

	xs = intersectWalls(s, ray, xs, a, b, c)
	return intersectCaps(s, ray, xs, minRadius, maxRadius)
}

func coneNormal(s *Shape, p core.Tuple) core.Tuple {
	dist := p.X*p.X + p.Z*p.Z
	if dist < p.Y*p.Y && p.Y >= s.maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < p.Y*p.Y && p.Y <= s.minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if p.Y > 0 && !core.ApproxEqual(p.Y, 0) {
		y = -y
	}
	return core.Vector(p.X, y, p.Z)
}
