package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInvertible is returned when inverting a matrix whose determinant is zero
var ErrNotInvertible = errors.New("matrix is not invertible")

// Matrix is a square N x N matrix stored in row-major order. Matrices are treated
// as immutable values once built; every operation returns a new matrix.
type Matrix struct {
	size int
	data []float64
}

// NewMatrix creates a size x size matrix from row-major values. Missing values are zero.
func NewMatrix(size int, values ...float64) Matrix {
	if size <= 0 {
		panic(fmt.Sprintf("invalid matrix size %d", size))
	}
	if len(values) > size*size {
		panic(fmt.Sprintf("%d values do not fit a %dx%d matrix", len(values), size, size))
	}
	data := make([]float64, size*size)
	copy(data, values)
	return Matrix{size: size, data: data}
}

// NewMatrixFromRows creates a matrix from a slice of equal-length rows
func NewMatrixFromRows(rows [][]float64) Matrix {
	m := NewMatrix(len(rows))
	for r, row := range rows {
		if len(row) != len(rows) {
			panic(fmt.Sprintf("row %d has %d columns, want %d", r, len(row), len(rows)))
		}
		copy(m.data[r*m.size:], row)
	}
	return m
}

// Identity returns the size x size identity matrix
func Identity(size int) Matrix {
	m := NewMatrix(size)
	for i := 0; i < size; i++ {
		m.data[i*size+i] = 1
	}
	return m
}

// Identity4 returns the 4x4 identity matrix
func Identity4() Matrix {
	return Identity(4)
}

// Size returns the number of rows (and columns)
func (m Matrix) Size() int {
	return m.size
}

// At returns the element at the given row and column
func (m Matrix) At(row, col int) float64 {
	return m.data[row*m.size+col]
}

// Equals compares two matrices elementwise within Epsilon
func (m Matrix) Equals(other Matrix) bool {
	if m.size != other.size {
		return false
	}
	for i := range m.data {
		if !ApproxEqual(m.data[i], other.data[i]) {
			return false
		}
	}
	return true
}

// Multiply returns the matrix product m * other
func (m Matrix) Multiply(other Matrix) Matrix {
	if m.size != other.size {
		panic(fmt.Sprintf("cannot multiply %dx%d by %dx%d", m.size, m.size, other.size, other.size))
	}
	n := m.size
	result := NewMatrix(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += m.data[r*n+k] * other.data[k*n+c]
			}
			result.data[r*n+c] = sum
		}
	}
	return result
}

// MultiplyTuple applies a 4x4 matrix to a tuple
func (m Matrix) MultiplyTuple(t Tuple) Tuple {
	if m.size != 4 {
		panic(fmt.Sprintf("cannot apply a %dx%d matrix to a tuple", m.size, m.size))
	}
	d := m.data
	return Tuple{
		X: d[0]*t.X + d[1]*t.Y + d[2]*t.Z + d[3]*t.W,
		Y: d[4]*t.X + d[5]*t.Y + d[6]*t.Z + d[7]*t.W,
		Z: d[8]*t.X + d[9]*t.Y + d[10]*t.Z + d[11]*t.W,
		W: d[12]*t.X + d[13]*t.Y + d[14]*t.Z + d[15]*t.W,
	}
}

// Transpose swaps rows and columns
func (m Matrix) Transpose() Matrix {
	n := m.size
	result := NewMatrix(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			result.data[c*n+r] = m.data[r*n+c]
		}
	}
	return result
}

// Submatrix returns a copy of m with the given row and column removed
func (m Matrix) Submatrix(row, col int) Matrix {
	if m.size < 2 {
		panic("cannot take a submatrix of a 1x1 matrix")
	}
	n := m.size
	result := NewMatrix(n - 1)
	i := 0
	for r := 0; r < n; r++ {
		if r == row {
			continue
		}
		for c := 0; c < n; c++ {
			if c == col {
				continue
			}
			result.data[i] = m.data[r*n+c]
			i++
		}
	}
	return result
}

// Minor is the determinant of the submatrix at (row, col)
func (m Matrix) Minor(row, col int) float64 {
	return m.Submatrix(row, col).Determinant()
}

// Cofactor is the minor at (row, col), negated when row+col is odd
func (m Matrix) Cofactor(row, col int) float64 {
	minor := m.Minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant computes the determinant by cofactor expansion along the first row
func (m Matrix) Determinant() float64 {
	switch m.size {
	case 1:
		return m.data[0]
	case 2:
		return m.data[0]*m.data[3] - m.data[1]*m.data[2]
	}
	det := 0.0
	for c := 0; c < m.size; c++ {
		det += m.data[c] * m.Cofactor(0, c)
	}
	return det
}

// IsInvertible reports whether the determinant is non-zero
func (m Matrix) IsInvertible() bool {
	return m.Determinant() != 0
}

// Inverse returns the cofactor transpose divided by the determinant
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if det == 0 {
		return Matrix{}, ErrNotInvertible
	}
	n := m.size
	result := NewMatrix(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			// storing at [c][r] performs the transpose
			result.data[c*n+r] = m.Cofactor(r, c) / det
		}
	}
	return result, nil
}

// MustInverse is Inverse for matrices that are known to be invertible
func (m Matrix) MustInverse() Matrix {
	inv, err := m.Inverse()
	if err != nil {
		panic(fmt.Sprintf("inverse of %v: %v", m, err))
	}
	return inv
}

func (m Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.size; r++ {
		sb.WriteString("|")
		for c := 0; c < m.size; c++ {
			fmt.Fprintf(&sb, " %9.5f", m.data[r*m.size+c])
		}
		sb.WriteString(" |\n")
	}
	return sb.String()
}
