package core

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMatrix_Construction(t *testing.T) {
	m := NewMatrix(4,
		1, 2, 3, 4,
		5.5, 6.5, 7.5, 8.5,
		9, 10, 11, 12,
		13.5, 14.5, 15.5, 16.5,
	)

	tests := []struct {
		row, col int
		expected float64
	}{
		{0, 0, 1}, {0, 3, 4}, {1, 0, 5.5}, {1, 2, 7.5}, {2, 2, 11}, {3, 0, 13.5}, {3, 2, 15.5},
	}
	for _, tt := range tests {
		if got := m.At(tt.row, tt.col); got != tt.expected {
			t.Errorf("At(%d,%d) = %f, want %f", tt.row, tt.col, got, tt.expected)
		}
	}

	m2 := NewMatrixFromRows([][]float64{{-3, 5}, {1, -2}})
	if m2.At(0, 0) != -3 || m2.At(0, 1) != 5 || m2.At(1, 0) != 1 || m2.At(1, 1) != -2 {
		t.Errorf("Unexpected 2x2 matrix %v", m2)
	}
}

func TestMatrix_Equality(t *testing.T) {
	a := NewMatrix(4, 1, 2, 3, 4, 5, 6, 7, 8, 9, 8, 7, 6, 5, 4, 3, 2)
	b := NewMatrix(4, 1, 2, 3, 4, 5, 6, 7, 8, 9, 8, 7, 6, 5, 4, 3, 2)
	c := NewMatrix(4, 2, 3, 4, 5, 6, 7, 8, 9, 8, 7, 6, 5, 4, 3, 2, 1)

	if !a.Equals(b) {
		t.Error("Expected identical matrices to be equal")
	}
	if a.Equals(c) {
		t.Error("Expected different matrices to differ")
	}
	if Identity(3).Equals(Identity4()) {
		t.Error("Expected matrices of different size to differ")
	}
}

func TestMatrix_Multiply(t *testing.T) {
	a := NewMatrix(4, 1, 2, 3, 4, 5, 6, 7, 8, 9, 8, 7, 6, 5, 4, 3, 2)
	b := NewMatrix(4, -2, 1, 2, 3, 3, 2, 1, -1, 4, 3, 6, 5, 1, 2, 7, 8)
	expected := NewMatrix(4,
		20, 22, 50, 48,
		44, 54, 114, 108,
		40, 58, 110, 102,
		16, 26, 46, 42,
	)

	if got := a.Multiply(b); !got.Equals(expected) {
		t.Errorf("Expected\n%v got\n%v", expected, got)
	}
	if got := a.Multiply(Identity4()); !got.Equals(a) {
		t.Errorf("Multiplying by identity changed the matrix:\n%v", got)
	}
}

func TestMatrix_MultiplyTuple(t *testing.T) {
	a := NewMatrix(4, 1, 2, 3, 4, 2, 4, 4, 2, 8, 6, 4, 1, 0, 0, 0, 1)
	if got := a.MultiplyTuple(NewTuple(1, 2, 3, 1)); !got.Equals(NewTuple(18, 24, 33, 1)) {
		t.Errorf("Expected (18,24,33,1), got %v", got)
	}

	tuple := NewTuple(1, 2, 3, 4)
	if got := Identity4().MultiplyTuple(tuple); !got.Equals(tuple) {
		t.Errorf("Expected identity to preserve %v, got %v", tuple, got)
	}
}

func TestMatrix_Transpose(t *testing.T) {
	a := NewMatrix(4, 0, 9, 3, 0, 9, 8, 0, 8, 1, 8, 5, 3, 0, 0, 5, 8)
	expected := NewMatrix(4, 0, 9, 1, 0, 9, 8, 8, 0, 3, 0, 5, 5, 0, 8, 3, 8)
	if got := a.Transpose(); !got.Equals(expected) {
		t.Errorf("Expected\n%v got\n%v", expected, got)
	}
	if got := Identity4().Transpose(); !got.Equals(Identity4()) {
		t.Error("Expected transposed identity to be identity")
	}
}

func TestMatrix_SubmatrixMinorCofactor(t *testing.T) {
	a3 := NewMatrix(3, 1, 5, 0, -3, 2, 7, 0, 6, -3)
	if got := a3.Submatrix(0, 2); !got.Equals(NewMatrix(2, -3, 2, 0, 6)) {
		t.Errorf("Unexpected 3x3 submatrix\n%v", got)
	}

	a4 := NewMatrix(4, -6, 1, 1, 6, -8, 5, 8, 6, -1, 0, 8, 2, -7, 1, -1, 1)
	if got := a4.Submatrix(2, 1); !got.Equals(NewMatrix(3, -6, 1, 6, -8, 8, 6, -7, -1, 1)) {
		t.Errorf("Unexpected 4x4 submatrix\n%v", got)
	}

	b := NewMatrix(3, 3, 5, 0, 2, -1, -7, 6, -1, 5)
	if got := b.Minor(1, 0); got != 25 {
		t.Errorf("Expected minor 25, got %f", got)
	}

	c := NewMatrix(3, 3, 5, 0, 2, -1, -7, 6, -1, 5)
	if got := c.Cofactor(0, 0); got != -12 {
		t.Errorf("Expected cofactor(0,0) -12, got %f", got)
	}
	if got := c.Cofactor(1, 0); got != -25 {
		t.Errorf("Expected cofactor(1,0) -25, got %f", got)
	}
}

func TestMatrix_Determinant(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix
		expected float64
	}{
		{"2x2", NewMatrix(2, 1, 5, -3, 2), 17},
		{"3x3", NewMatrix(3, 1, 2, 6, -5, 8, -4, 2, 6, 4), -196},
		{"4x4", NewMatrix(4, -2, -8, 3, 5, -3, 1, 7, 3, 1, 2, -9, 6, -6, 7, 7, -9), -4071},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Determinant(); !ApproxEqual(got, tt.expected) {
				t.Errorf("Expected determinant %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestMatrix_Invertibility(t *testing.T) {
	invertible := NewMatrix(4, 6, 4, 4, 4, 5, 5, 7, 6, 4, -9, 3, -7, 9, 1, 7, -6)
	if !invertible.IsInvertible() {
		t.Error("Expected matrix with determinant -2120 to be invertible")
	}

	singular := NewMatrix(4, -4, 2, -2, -3, 9, 6, 2, 6, 0, -5, 1, -5, 0, 0, 0, 0)
	if singular.IsInvertible() {
		t.Error("Expected singular matrix to be reported as not invertible")
	}
	if _, err := singular.Inverse(); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("Expected ErrNotInvertible, got %v", err)
	}
}

func TestMatrix_Inverse(t *testing.T) {
	a := NewMatrix(4, -5, 2, 6, -8, 1, -5, 1, 8, 7, 7, -6, -7, 1, -3, 7, 4)
	inv, err := a.Inverse()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !ApproxEqual(a.Determinant(), 532) {
		t.Errorf("Expected determinant 532, got %f", a.Determinant())
	}
	if !ApproxEqual(a.Cofactor(2, 3), -160) || !ApproxEqual(inv.At(3, 2), -160.0/532) {
		t.Errorf("Cofactor/inverse element mismatch: %f, %f", a.Cofactor(2, 3), inv.At(3, 2))
	}

	expected := NewMatrix(4,
		0.21805, 0.45113, 0.24060, -0.04511,
		-0.80827, -1.45677, -0.44361, 0.52068,
		-0.07895, -0.22368, -0.05263, 0.19737,
		-0.52256, -0.81391, -0.30075, 0.30639,
	)
	if !inv.Equals(expected) {
		t.Errorf("Expected\n%v got\n%v", expected, inv)
	}
}

func TestMatrix_InverseMatchesGonum(t *testing.T) {
	matrices := []Matrix{
		NewMatrix(4, 8, -5, 9, 2, 7, 5, 6, 1, -6, 0, 9, 6, -3, 0, -9, -4),
		NewMatrix(4, 9, 3, 0, 9, -5, -2, -6, -3, -4, 9, 6, 4, -7, 6, 6, 2),
		NewMatrix(3, 1, 2, 6, -5, 8, -4, 2, 6, 4),
		Chain(Scaling(2, 3, 4), RotationY(0.7), Translation(1, -2, 5)),
	}

	for i, m := range matrices {
		n := m.Size()
		data := make([]float64, 0, n*n)
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				data = append(data, m.At(r, c))
			}
		}
		dense := mat.NewDense(n, n, data)

		if got, want := m.Determinant(), mat.Det(dense); !ApproxEqual(got, want) {
			t.Errorf("matrix %d: determinant %f, gonum %f", i, got, want)
		}

		var oracle mat.Dense
		if err := oracle.Inverse(dense); err != nil {
			t.Fatalf("matrix %d: gonum inverse failed: %v", i, err)
		}
		inv := m.MustInverse()
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				if !ApproxEqual(inv.At(r, c), oracle.At(r, c)) {
					t.Errorf("matrix %d: inverse[%d][%d] = %f, gonum %f", i, r, c, inv.At(r, c), oracle.At(r, c))
				}
			}
		}
	}
}

func TestMatrix_ProductTimesInverse(t *testing.T) {
	a := NewMatrix(4, 3, -9, 7, 3, 3, -8, 2, -9, -4, 4, 4, 1, -6, 5, -1, 1)
	b := NewMatrix(4, 8, 2, 2, 2, 3, -1, 7, 0, 7, 0, 5, 4, 6, -2, 0, 5)
	c := a.Multiply(b)

	if got := c.Multiply(b.MustInverse()); !got.Equals(a) {
		t.Errorf("Expected C * inverse(B) == A, got\n%v", got)
	}
}

func TestMatrix_MustInversePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustInverse to panic on a singular matrix")
		}
	}()
	Scaling(0, 1, 1).MustInverse()
}
