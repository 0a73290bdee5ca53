package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewPlane creates the infinite xz plane through the origin
func NewPlane() *Shape {
	return newShape(KindPlane)
}

func planeBounds() core.AABB {
	inf := math.Inf(1)
	return core.NewAABB(core.Point(-inf, 0, -inf), core.Point(inf, 0, inf))
}

func intersectPlane(s *Shape, ray core.Ray) Intersections {
	// Parallel or coplanar rays never hit
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	t := -ray.Origin.Y / ray.Direction.Y
	return Intersections{NewIntersection(t, s)}
}
