package core

import (
	"math"
	"testing"
)

func TestTuple_PointAndVector(t *testing.T) {
	p := Point(4.3, -4.2, 3.1)
	if !p.IsPoint() || p.IsVector() {
		t.Errorf("Expected %v to be a point", p)
	}

	v := Vector(4.3, -4.2, 3.1)
	if !v.IsVector() || v.IsPoint() {
		t.Errorf("Expected %v to be a vector", v)
	}
}

func TestTuple_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Tuple
		expected Tuple
	}{
		{"point plus vector", Point(3, -2, 5).Add(Vector(-2, 3, 1)), Point(1, 1, 6)},
		{"point minus point", Point(3, 2, 1).Subtract(Point(5, 6, 7)), Vector(-2, -4, -6)},
		{"point minus vector", Point(3, 2, 1).Subtract(Vector(5, 6, 7)), Point(-2, -4, -6)},
		{"vector minus vector", Vector(3, 2, 1).Subtract(Vector(5, 6, 7)), Vector(-2, -4, -6)},
		{"negate", NewTuple(1, -2, 3, -4).Negate(), NewTuple(-1, 2, -3, 4)},
		{"scale", NewTuple(1, -2, 3, -4).Multiply(3.5), NewTuple(3.5, -7, 10.5, -14)},
		{"scale by fraction", NewTuple(1, -2, 3, -4).Multiply(0.5), NewTuple(0.5, -1, 1.5, -2)},
		{"divide", NewTuple(1, -2, 3, -4).Divide(2), NewTuple(0.5, -1, 1.5, -2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestTuple_Magnitude(t *testing.T) {
	tests := []struct {
		v        Tuple
		expected float64
	}{
		{Vector(1, 0, 0), 1},
		{Vector(0, 1, 0), 1},
		{Vector(0, 0, 1), 1},
		{Vector(1, 2, 3), math.Sqrt(14)},
		{Vector(-1, -2, -3), math.Sqrt(14)},
	}

	for _, tt := range tests {
		if got := tt.v.Magnitude(); !ApproxEqual(got, tt.expected) {
			t.Errorf("Magnitude(%v) = %f, want %f", tt.v, got, tt.expected)
		}
	}
}

func TestTuple_Normalize(t *testing.T) {
	if got := Vector(4, 0, 0).Normalize(); !got.Equals(Vector(1, 0, 0)) {
		t.Errorf("Expected (1,0,0), got %v", got)
	}

	n := Vector(1, 2, 3).Normalize()
	s := math.Sqrt(14)
	if !n.Equals(Vector(1/s, 2/s, 3/s)) {
		t.Errorf("Unexpected normalized vector %v", n)
	}
	if !ApproxEqual(n.Magnitude(), 1) {
		t.Errorf("Expected unit magnitude, got %f", n.Magnitude())
	}
}

func TestTuple_DotAndCross(t *testing.T) {
	a := Vector(1, 2, 3)
	b := Vector(2, 3, 4)

	if got := a.Dot(b); !ApproxEqual(got, 20) {
		t.Errorf("Expected dot 20, got %f", got)
	}
	if got := a.Cross(b); !got.Equals(Vector(-1, 2, -1)) {
		t.Errorf("Expected a x b = (-1,2,-1), got %v", got)
	}
	if got := b.Cross(a); !got.Equals(Vector(1, -2, 1)) {
		t.Errorf("Expected b x a = (1,-2,1), got %v", got)
	}
}

func TestTuple_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v, n     Tuple
		expected Tuple
	}{
		{"approaching at 45 degrees", Vector(1, -1, 0), Vector(0, 1, 0), Vector(1, 1, 0)},
		{"off a slanted surface", Vector(0, -1, 0), Vector(math.Sqrt2/2, math.Sqrt2/2, 0), Vector(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Reflect(tt.n); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTuple_EqualsTolerance(t *testing.T) {
	a := Point(1, 2, 3)
	if !a.Equals(Point(1+Epsilon/2, 2, 3)) {
		t.Error("Expected tuples within epsilon to be equal")
	}
	if a.Equals(Point(1+Epsilon*2, 2, 3)) {
		t.Error("Expected tuples beyond epsilon to differ")
	}
}

func TestColor_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Color
		expected Color
	}{
		{"add", NewColor(0.9, 0.6, 0.75).Add(NewColor(0.7, 0.1, 0.25)), NewColor(1.6, 0.7, 1.0)},
		{"subtract", NewColor(0.9, 0.6, 0.75).Subtract(NewColor(0.7, 0.1, 0.25)), NewColor(0.2, 0.5, 0.5)},
		{"scale", NewColor(0.2, 0.3, 0.4).Multiply(2), NewColor(0.4, 0.6, 0.8)},
		{"blend", NewColor(1, 0.2, 0.4).Blend(NewColor(0.9, 1, 0.1)), NewColor(0.9, 0.2, 0.04)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
			if tt.got.A != 1 {
				t.Errorf("Expected alpha reset to 1, got %f", tt.got.A)
			}
		})
	}
}
