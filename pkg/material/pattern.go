package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pattern provides spatially-varying colors for materials. Patterns are shared
// between materials and are not modified once a render starts.
type Pattern interface {
	// LocalColorAt returns the color at a point already in pattern space
	LocalColorAt(point core.Tuple) core.Color
	// InverseTransform maps object space into pattern space
	InverseTransform() core.Matrix
}

// ObjectSpace converts world points into a shape's local frame
type ObjectSpace interface {
	WorldToObject(point core.Tuple) core.Tuple
}

// ColorAtObject evaluates a pattern at a world point on the given object,
// mapping world -> object -> pattern space first
func ColorAtObject(p Pattern, obj ObjectSpace, worldPoint core.Tuple) core.Color {
	objectPoint := obj.WorldToObject(worldPoint)
	patternPoint := p.InverseTransform().MultiplyTuple(objectPoint)
	return p.LocalColorAt(patternPoint)
}

// Transformable holds a pattern's own transform and its cached inverse
type Transformable struct {
	transform core.Matrix
	inverse   core.Matrix
}

func identityTransform() Transformable {
	return Transformable{transform: core.Identity4(), inverse: core.Identity4()}
}

// Transform returns the pattern-to-object transform
func (t *Transformable) Transform() core.Matrix {
	return t.transform
}

// InverseTransform returns the object-to-pattern transform
func (t *Transformable) InverseTransform() core.Matrix {
	return t.inverse
}

// SetTransform replaces the pattern transform. The matrix must be invertible.
func (t *Transformable) SetTransform(m core.Matrix) {
	t.transform = m
	t.inverse = m.MustInverse()
}

// Solid returns the same color everywhere
type Solid struct {
	Transformable
	Color core.Color
}

// NewSolid creates a uniform color pattern
func NewSolid(c core.Color) *Solid {
	return &Solid{Transformable: identityTransform(), Color: c}
}

func (s *Solid) LocalColorAt(point core.Tuple) core.Color {
	return s.Color
}

// Stripe alternates between A and B along the x axis
type Stripe struct {
	Transformable
	A, B core.Color
}

func NewStripe(a, b core.Color) *Stripe {
	return &Stripe{Transformable: identityTransform(), A: a, B: b}
}

func (s *Stripe) LocalColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(point.X)) {
		return s.A
	}
	return s.B
}

// Gradient linearly blends from A at x=0 to B at x=1, repeating every unit
type Gradient struct {
	Transformable
	A, B core.Color
}

func NewGradient(a, b core.Color) *Gradient {
	return &Gradient{Transformable: identityTransform(), A: a, B: b}
}

func (g *Gradient) LocalColorAt(point core.Tuple) core.Color {
	distance := g.B.Subtract(g.A)
	fraction := point.X - math.Floor(point.X)
	return g.A.Add(distance.Multiply(fraction))
}

// Ring alternates between A and B in concentric rings around the y axis
type Ring struct {
	Transformable
	A, B core.Color
}

func NewRing(a, b core.Color) *Ring {
	return &Ring{Transformable: identityTransform(), A: a, B: b}
}

func (r *Ring) LocalColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(math.Hypot(point.X, point.Z))) {
		return r.A
	}
	return r.B
}

// Checker alternates between A and B in unit cubes
type Checker struct {
	Transformable
	A, B core.Color
}

func NewChecker(a, b core.Color) *Checker {
	return &Checker{Transformable: identityTransform(), A: a, B: b}
}

func (c *Checker) LocalColorAt(point core.Tuple) core.Color {
	// Points within epsilon below a cell boundary (a plane at y=0) belong to the upper cell
	sum := math.Floor(point.X+core.Epsilon) + math.Floor(point.Y+core.Epsilon) + math.Floor(point.Z+core.Epsilon)
	if isEven(sum) {
		return c.A
	}
	return c.B
}

// RadialGradient blends from A to B with distance from the y axis, repeating every unit
type RadialGradient struct {
	Transformable
	A, B core.Color
}

func NewRadialGradient(a, b core.Color) *RadialGradient {
	return &RadialGradient{Transformable: identityTransform(), A: a, B: b}
}

func (r *RadialGradient) LocalColorAt(point core.Tuple) core.Color {
	distance := math.Hypot(point.X, point.Z)
	fraction := distance - math.Floor(distance)
	return r.A.Add(r.B.Subtract(r.A).Multiply(fraction))
}

func isEven(v float64) bool {
	return math.Mod(v, 2) == 0
}
