package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element declaration ("vertex", "face", ...) and its properties
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the geometry loaded from a PLY file
type PLYData struct {
	Vertices []core.Tuple // Vertex positions
	Faces    [][3]int     // Triangle vertex indices; polygons are fan-triangulated
	Colors   []core.Color // Per-vertex colors in [0,1], empty if not present
}

// LoadPLY loads a PLY file from disk
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParsePLY reads ascii, binary little-endian and binary big-endian PLY data.
// Only the vertex and face elements are kept; other elements are skipped.
func ParsePLY(r io.Reader) (*PLYData, error) {
	br := bufio.NewReaderSize(r, 1<<20)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(br)
		scanner.Split(bufio.ScanWords)
		values = &asciiValues{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValues{reader: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValues{reader: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		if err := readPLYElement(values, element, data); err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}

	for i, face := range data.Faces {
		for _, index := range face {
			if index < 0 || index >= len(data.Vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d", i, index, len(data.Vertices))
			}
		}
	}

	return data, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement

	for lineNum := 1; ; lineNum++ {
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("header ended without end_header: %w", err)
		}
		line = strings.TrimSpace(line)

		if lineNum == 1 {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]
		case "property":
			if current == nil {
				return nil, fmt.Errorf("property before any element: %q", line)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current.Props = append(current.Props, prop)
		}

		if err == io.EOF {
			return nil, fmt.Errorf("header ended without end_header")
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("missing format line")
	}
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	if getTypeSize(prop.Type) == 0 && !prop.IsList {
		return PLYProperty{}, fmt.Errorf("unsupported data type: %s", prop.Type)
	}
	if prop.IsList && (getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0) {
		return PLYProperty{}, fmt.Errorf("unsupported list types: %s %s", prop.ListType, prop.DataType)
	}

	return prop, nil
}

// readPLYElement reads every instance of an element, keeping vertex positions,
// vertex colors and face indices
func readPLYElement(values plyValueReader, element PLYElement, data *PLYData) error {
	hasColor := false
	for _, prop := range element.Props {
		switch prop.Name {
		case "red", "green", "blue", "r", "g", "b":
			hasColor = true
		}
	}

	for i := 0; i < element.Count; i++ {
		var x, y, z float64
		var rgb [3]float64
		var indices []int

		for _, prop := range element.Props {
			if prop.IsList {
				count, err := values.next(prop.ListType)
				if err != nil {
					return fmt.Errorf("%s %d: %w", element.Name, i, err)
				}
				for j := 0; j < int(count); j++ {
					v, err := values.next(prop.DataType)
					if err != nil {
						return fmt.Errorf("%s %d: %w", element.Name, i, err)
					}
					if prop.Name == "vertex_indices" || prop.Name == "vertex_index" {
						indices = append(indices, int(v))
					}
				}
				continue
			}

			v, err := values.next(prop.Type)
			if err != nil {
				return fmt.Errorf("%s %d, property %s: %w", element.Name, i, prop.Name, err)
			}
			switch prop.Name {
			case "x":
				x = v
			case "y":
				y = v
			case "z":
				z = v
			case "red", "r":
				rgb[0] = colorChannel(prop.Type, v)
			case "green", "g":
				rgb[1] = colorChannel(prop.Type, v)
			case "blue", "b":
				rgb[2] = colorChannel(prop.Type, v)
			}
		}

		switch element.Name {
		case "vertex":
			data.Vertices = append(data.Vertices, core.Point(x, y, z))
			if hasColor {
				data.Colors = append(data.Colors, core.NewColor(rgb[0], rgb[1], rgb[2]))
			}
		case "face":
			for k := 1; k+1 < len(indices); k++ {
				data.Faces = append(data.Faces, [3]int{indices[0], indices[k], indices[k+1]})
			}
		}
	}
	return nil
}

// colorChannel maps integer channels from 0-255 to 0-1; float channels are kept
func colorChannel(dataType string, v float64) float64 {
	switch dataType {
	case "float", "float32", "double", "float64":
		return v
	}
	return v / 255.0
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// plyValueReader yields successive scalar values from the PLY body
type plyValueReader interface {
	next(dataType string) (float64, error)
}

type asciiValues struct {
	scanner *bufio.Scanner
}

func (a *asciiValues) next(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, a.scanner.Text())
	}
	return v, nil
}

type binaryValues struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValues) next(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.reader, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "char", "int8":
		return float64(int8(buf[0])), nil
	default:
		return float64(buf[0]), nil
	}
}

// ToGroup builds a group of triangles. With vertex colors present each triangle
// gets a copy of m colored with the average of its corners.
func (d *PLYData) ToGroup(m *material.Material) *geometry.Shape {
	if m == nil {
		m = material.Default()
	}

	g := geometry.NewGroup("ply")
	for _, f := range d.Faces {
		t := geometry.NewTriangle(d.Vertices[f[0]], d.Vertices[f[1]], d.Vertices[f[2]])
		if len(d.Colors) == len(d.Vertices) {
			avg := d.Colors[f[0]].Add(d.Colors[f[1]]).Add(d.Colors[f[2]]).Multiply(1.0 / 3.0)
			tm := m.Copy()
			tm.Pattern = material.NewSolid(avg)
			t.SetMaterial(tm)
		} else {
			t.SetMaterial(m)
		}
		g.AddChild(t)
	}
	return g
}
