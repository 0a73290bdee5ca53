package core

import "math"

// Translation moves points by (x, y, z). Vectors are unaffected.
func Translation(x, y, z float64) Matrix {
	return NewMatrix(4,
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	)
}

// Scaling scales each axis independently
func Scaling(x, y, z float64) Matrix {
	return NewMatrix(4,
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	)
}

// RotationX rotates around the X axis by the given angle in radians
func RotationX(rads float64) Matrix {
	s, c := math.Sincos(rads)
	return NewMatrix(4,
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	)
}

// RotationY rotates around the Y axis by the given angle in radians
func RotationY(rads float64) Matrix {
	s, c := math.Sincos(rads)
	return NewMatrix(4,
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	)
}

// RotationZ rotates around the Z axis by the given angle in radians
func RotationZ(rads float64) Matrix {
	s, c := math.Sincos(rads)
	return NewMatrix(4,
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// Shearing moves each component in proportion to the other two
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	return NewMatrix(4,
		1, xy, xz, 0,
		yx, 1, yz, 0,
		zx, zy, 1, 0,
		0, 0, 0, 1,
	)
}

// ViewTransform orients the world relative to an eye at from looking toward to
func ViewTransform(from, to, up Tuple) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)
	orientation := NewMatrix(4,
		left.X, left.Y, left.Z, 0,
		trueUp.X, trueUp.Y, trueUp.Z, 0,
		-forward.X, -forward.Y, -forward.Z, 0,
		0, 0, 0, 1,
	)
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}

// Chain composes transforms in the order they should be applied, so
// Chain(A, B, C) == C * B * A and A acts on a point first
func Chain(transforms ...Matrix) Matrix {
	result := Identity4()
	for _, t := range transforms {
		result = t.Multiply(result)
	}
	return result
}
