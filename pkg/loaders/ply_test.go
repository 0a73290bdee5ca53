package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// createTestPLY builds a binary PLY square (two triangles) with optional normals
// and colors
func createTestPLY(order binary.ByteOrder, includeNormals bool, includeColors bool) []byte {
	var buf bytes.Buffer

	format := "binary_little_endian"
	if order == binary.BigEndian {
		format = "binary_big_endian"
	}

	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("comment test square\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")

	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}

	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}

	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := []struct {
		x, y, z    float32
		nx, ny, nz float32
		r, g, b    uint8
	}{
		{0.0, 0.0, 0.0, 0.0, 0.0, 1.0, 255, 0, 0},   // red
		{1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0, 255, 0},   // green
		{1.0, 1.0, 0.0, 0.0, 0.0, 1.0, 0, 0, 255},   // blue
		{0.0, 1.0, 0.0, 0.0, 0.0, 1.0, 255, 255, 0}, // yellow
	}

	for _, v := range vertices {
		binary.Write(&buf, order, v.x)
		binary.Write(&buf, order, v.y)
		binary.Write(&buf, order, v.z)

		if includeNormals {
			binary.Write(&buf, order, v.nx)
			binary.Write(&buf, order, v.ny)
			binary.Write(&buf, order, v.nz)
		}

		if includeColors {
			binary.Write(&buf, order, v.r)
			binary.Write(&buf, order, v.g)
			binary.Write(&buf, order, v.b)
		}
	}

	faces := []struct {
		count      uint8
		v1, v2, v3 int32
	}{
		{3, 0, 1, 2},
		{3, 0, 2, 3},
	}

	for _, f := range faces {
		binary.Write(&buf, order, f.count)
		binary.Write(&buf, order, f.v1)
		binary.Write(&buf, order, f.v2)
		binary.Write(&buf, order, f.v3)
	}

	return buf.Bytes()
}

func assertSquare(t *testing.T, data *PLYData) {
	t.Helper()

	expectedVertices := []core.Tuple{
		core.Point(0, 0, 0), core.Point(1, 0, 0), core.Point(1, 1, 0), core.Point(0, 1, 0),
	}
	if len(data.Vertices) != len(expectedVertices) {
		t.Fatalf("Expected %d vertices, got %d", len(expectedVertices), len(data.Vertices))
	}
	for i, want := range expectedVertices {
		if !data.Vertices[i].Equals(want) {
			t.Errorf("Vertex %d: expected %v, got %v", i, want, data.Vertices[i])
		}
	}

	expectedFaces := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if len(data.Faces) != len(expectedFaces) {
		t.Fatalf("Expected %d faces, got %d", len(expectedFaces), len(data.Faces))
	}
	for i, want := range expectedFaces {
		if data.Faces[i] != want {
			t.Errorf("Face %d: expected %v, got %v", i, want, data.Faces[i])
		}
	}
}

func TestParsePLY_Binary(t *testing.T) {
	tests := []struct {
		name           string
		order          binary.ByteOrder
		includeNormals bool
		includeColors  bool
	}{
		{"little endian", binary.LittleEndian, false, false},
		{"little endian with normals", binary.LittleEndian, true, false},
		{"little endian with normals and colors", binary.LittleEndian, true, true},
		{"big endian with colors", binary.BigEndian, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ParsePLY(bytes.NewReader(createTestPLY(tt.order, tt.includeNormals, tt.includeColors)))
			if err != nil {
				t.Fatalf("ParsePLY failed: %v", err)
			}
			assertSquare(t, data)

			if !tt.includeColors {
				if len(data.Colors) != 0 {
					t.Errorf("Expected no colors, got %d", len(data.Colors))
				}
				return
			}
			if len(data.Colors) != 4 {
				t.Fatalf("Expected 4 colors, got %d", len(data.Colors))
			}
			if !data.Colors[3].Equals(core.NewColor(1, 1, 0)) {
				t.Errorf("Expected yellow, got %v", data.Colors[3])
			}
		})
	}
}

func TestParsePLY_ASCII(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 5
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
-0.5 0.5 0
5 0 1 2 3 4
`
	data, err := ParsePLY(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}

	if len(data.Vertices) != 5 {
		t.Fatalf("Expected 5 vertices, got %d", len(data.Vertices))
	}
	// A pentagon fans into three triangles around its first vertex
	expected := [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}
	if len(data.Faces) != len(expected) {
		t.Fatalf("Expected %d triangles, got %d", len(expected), len(data.Faces))
	}
	for i, want := range expected {
		if data.Faces[i] != want {
			t.Errorf("Triangle %d: expected %v, got %v", i, want, data.Faces[i])
		}
	}
}

func TestParsePLY_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"missing end_header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"unknown format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"bad element count", "ply\nformat ascii 1.0\nelement vertex many\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n1\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0\n3 0 0 7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.src)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadPLY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.ply")
	if err := os.WriteFile(path, createTestPLY(binary.LittleEndian, false, false), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	data, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	assertSquare(t, data)

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestPLYData_ToGroup(t *testing.T) {
	data, err := ParsePLY(bytes.NewReader(createTestPLY(binary.LittleEndian, false, true)))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}

	m := material.Default()
	m.Specular = 0.3
	g := data.ToGroup(m)

	if g.Kind() != geometry.KindGroup || len(g.Children()) != 2 {
		t.Fatalf("Expected a group of two triangles, got %v", g.Children())
	}

	first := g.Children()[0]
	if first.Kind() != geometry.KindTriangle || !first.P3().Equals(core.Point(1, 1, 0)) {
		t.Errorf("Unexpected first triangle %v", first)
	}

	// red, green and blue corners average to a gray third
	got := first.Material().ColorAt(first, core.Point(0.5, 0.2, 0))
	if !got.Equals(core.NewColor(1.0/3, 1.0/3, 1.0/3)) {
		t.Errorf("Expected averaged vertex color, got %v", got)
	}
	if first.Material().Specular != 0.3 || first.Material() == m {
		t.Error("Expected a per-triangle copy of the base material")
	}

	hit := g.Intersect(core.NewRay(core.Point(0.25, 0.75, -1), core.Vector(0, 0, 1))).Hit()
	if !hit.Ok() || hit.Object != g.Children()[1] {
		t.Errorf("Expected the second triangle to be hit, got %v", hit)
	}
}
