package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance used for every floating point comparison in the tracer
const Epsilon = 1e-4

// ApproxEqual reports whether a and b differ by no more than Epsilon
func ApproxEqual(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Epsilon)
}

// Tuple is a homogeneous 4-component value. Points have W=1, vectors have W=0.
type Tuple struct {
	X, Y, Z, W float64
}

// NewTuple creates a tuple from raw components
func NewTuple(x, y, z, w float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: w}
}

// Point creates a tuple with W=1
func Point(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 1}
}

// Vector creates a tuple with W=0
func Vector(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 0}
}

// IsPoint returns true when the tuple represents a position
func (t Tuple) IsPoint() bool {
	return ApproxEqual(t.W, 1)
}

// IsVector returns true when the tuple represents a direction
func (t Tuple) IsVector() bool {
	return ApproxEqual(t.W, 0)
}

// Add returns the componentwise sum. A point plus a vector is a point.
func (t Tuple) Add(other Tuple) Tuple {
	return Tuple{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Subtract returns the componentwise difference. Point minus point is a vector.
func (t Tuple) Subtract(other Tuple) Tuple {
	return Tuple{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Negate returns the tuple with every component negated
func (t Tuple) Negate() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, -t.W}
}

// Multiply scales every component by a scalar
func (t Tuple) Multiply(scalar float64) Tuple {
	return Tuple{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W * scalar}
}

// Divide divides every component by a scalar
func (t Tuple) Divide(scalar float64) Tuple {
	return Tuple{t.X / scalar, t.Y / scalar, t.Z / scalar, t.W / scalar}
}

// Magnitude returns the length of the tuple
func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize returns a unit tuple in the same direction
func (t Tuple) Normalize() Tuple {
	length := t.Magnitude()
	if length == 0 {
		return t
	}
	return t.Divide(length)
}

// Dot returns the dot product of two tuples
func (t Tuple) Dot(other Tuple) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z + t.W*other.W
}

// Cross returns the cross product of two vectors. The W component is ignored.
func (t Tuple) Cross(other Tuple) Tuple {
	return Vector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	)
}

// Reflect reflects the vector about the normal n
func (t Tuple) Reflect(n Tuple) Tuple {
	return t.Subtract(n.Multiply(2 * t.Dot(n)))
}

// Equals compares tuples componentwise within Epsilon
func (t Tuple) Equals(other Tuple) bool {
	return ApproxEqual(t.X, other.X) &&
		ApproxEqual(t.Y, other.Y) &&
		ApproxEqual(t.Z, other.Z) &&
		ApproxEqual(t.W, other.W)
}

// Get returns the component at index 0..3
func (t Tuple) Get(i int) float64 {
	switch i {
	case 0:
		return t.X
	case 1:
		return t.Y
	case 2:
		return t.Z
	case 3:
		return t.W
	}
	panic(fmt.Sprintf("tuple index %d out of range", i))
}

func (t Tuple) String() string {
	return fmt.Sprintf("(%.5f, %.5f, %.5f, %.0f)", t.X, t.Y, t.Z, t.W)
}
