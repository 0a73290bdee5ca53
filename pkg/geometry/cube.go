package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewCube creates an axis-aligned cube spanning -1..1 on every axis
func NewCube() *Shape {
	return newShape(KindCube)
}

func intersectCube(s *Shape, ray core.Ray) Intersections {
	xtMin, xtMax := checkAxis(ray.Origin.X, ray.Direction.X, -1, 1)
	ytMin, ytMax := checkAxis(ray.Origin.Y, ray.Direction.Y, -1, 1)
	ztMin, ztMax := checkAxis(ray.Origin.Z, ray.Direction.Z, -1, 1)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))
	if tMin > tMax {
		return nil
	}
	return Intersections{NewIntersection(tMin, s), NewIntersection(tMax, s)}
}

// checkAxis returns where the ray enters and leaves the slab [min, max] on one axis
func checkAxis(origin, direction, min, max float64) (float64, float64) {
	// Parallel to the slab: the whole line is either inside it or outside it
	if math.Abs(direction) < core.Epsilon {
		if origin < min || origin > max {
			return math.Inf(1), math.Inf(-1)
		}
		return math.Inf(-1), math.Inf(1)
	}

	tMin := (min - origin) / direction
	tMax := (max - origin) / direction
	if tMin > tMax {
		return tMax, tMin
	}
	return tMin, tMax
}

func cubeNormal(p core.Tuple) core.Tuple {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	maxc := math.Max(ax, math.Max(ay, az))

	switch maxc {
	case ax:
		return core.Vector(p.X, 0, 0)
	case ay:
		return core.Vector(0, p.Y, 0)
	default:
		return core.Vector(0, 0, p.Z)
	}
}
