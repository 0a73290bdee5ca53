package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/udhos/gwob"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultGroupName names the group holding faces that precede any "g" statement
const DefaultGroupName = "Default"

// leadingGroup names the group opened ahead of the source so gwob does not
// rename the unnamed group to the first "g" it meets
const leadingGroup = "(default)"

// OBJGroup is a run of faces sharing a group name and material
type OBJGroup struct {
	Name      string // Empty for faces outside any named group
	Usemtl    string // Material name from "usemtl", if any
	Triangles []*geometry.Shape
}

// OBJData is a Wavefront OBJ model converted to triangles. Polygons are
// fan-triangulated around their first vertex.
type OBJData struct {
	Name     string
	Vertices []core.Tuple // Distinct vertices referenced by faces
	Groups   []*OBJGroup  // In file order
	Mtllib   string       // Material library named by "mtllib", if any
	Ignored  int          // Lines skipped as unsupported or malformed
}

// objOptions forwards gwob's messages to logger. Each non-fatal line error
// increments rejected when it is non-nil.
func objOptions(logger core.Logger, rejected *int) *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		LogStats:      logger != nil,
		IgnoreNormals: true,
		Logger: func(msg string) {
			if rejected != nil && (strings.HasPrefix(msg, "readLines: ") || strings.HasPrefix(msg, "scanLines: ")) {
				*rejected++
			}
			if strings.Contains(msg, "="+leadingGroup+" ") {
				return
			}
			if logger != nil {
				logger.Printf("%s\n", msg)
			}
		},
	}
}

// normalizeOBJ rewrites OBJ source into the subset gwob reads as intended.
// Faces become triangles fanned around their first vertex, with every vertex
// reference resolved to a plain absolute position index. A leading group keeps
// ungrouped faces apart. Texture and normal data are dropped, as are
// unsupported statements and malformed vertices or faces, which are counted.
func normalizeOBJ(r io.Reader) (string, int, error) {
	var out strings.Builder
	out.WriteString("g " + leadingGroup + "\n")

	ignored, vertices := 0, 0
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", 0, err
		}

		fields := strings.Fields(line)
		keep := true
		switch {
		case len(fields) == 0 || strings.HasPrefix(fields[0], "#"):
			keep = false
		case fields[0] == "vt" || fields[0] == "vn":
			keep = false
		case fields[0] == "v":
			if !validVertex(fields[1:]) {
				ignored++
				keep = false
				break
			}
			vertices++
		case fields[0] == "f":
			refs, ok := resolveFace(fields[1:], vertices)
			if !ok {
				ignored++
				keep = false
				break
			}
			for k := 1; k+1 < len(refs); k++ {
				fmt.Fprintf(&out, "f %d %d %d\n", refs[0], refs[k], refs[k+1])
			}
			keep = false
		case len(fields) == 1:
			ignored++
			keep = false
		case fields[0] == "g", fields[0] == "o", fields[0] == "s", fields[0] == "usemtl", fields[0] == "mtllib":
		default:
			ignored++
			keep = false
		}

		if keep {
			out.WriteString(strings.Join(fields, " ") + "\n")
		}
		if err == io.EOF {
			break
		}
	}
	return out.String(), ignored, nil
}

// validVertex reports whether a "v" statement has three or four numeric fields
func validVertex(fields []string) bool {
	if len(fields) != 3 && len(fields) != 4 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}

// resolveFace returns the 1-based position indices of a face given the number of
// vertices declared so far. Negative references count back from the latest vertex.
func resolveFace(refs []string, vertices int) ([]int, bool) {
	if len(refs) < 3 {
		return nil, false
	}
	indices := make([]int, len(refs))
	for i, ref := range refs {
		position, _, _ := strings.Cut(ref, "/")
		n, err := strconv.Atoi(position)
		if err != nil || n == 0 {
			return nil, false
		}
		if n < 0 {
			n += vertices + 1
		}
		if n < 1 || n > vertices {
			return nil, false
		}
		indices[i] = n
	}
	return indices, true
}

// LoadOBJ loads an OBJ file. A material library named by the file is read from
// the OBJ's directory; a library that cannot be read is logged and skipped.
func LoadOBJ(path string, logger core.Logger) (*OBJData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load OBJ file %s: %w", path, err)
	}
	defer f.Close()

	data, err := ParseOBJ(filepath.Base(path), f, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if data.Mtllib == "" {
		return data, nil
	}

	mtlPath := data.Mtllib
	if !filepath.IsAbs(mtlPath) {
		mtlPath = filepath.Join(filepath.Dir(path), mtlPath)
	}
	mtl, err := os.Open(mtlPath)
	if err != nil {
		if logger != nil {
			logger.Printf("Skipping material library: %v\n", err)
		}
		return data, nil
	}
	defer mtl.Close()

	materials, err := ParseMTL(mtl, logger)
	if err != nil {
		if logger != nil {
			logger.Printf("Skipping material library %s: %v\n", mtlPath, err)
		}
		return data, nil
	}
	data.ApplyMaterials(materials)
	return data, nil
}

// ParseOBJ reads OBJ source from r. name labels the model in messages.
// Unsupported statements and malformed lines are skipped and counted in
// OBJData.Ignored.
func ParseOBJ(name string, r io.Reader, logger core.Logger) (*OBJData, error) {
	src, ignored, err := normalizeOBJ(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OBJ %s: %w", name, err)
	}

	rejected := 0
	obj, err := gwob.NewObjFromReader(name, strings.NewReader(src), objOptions(logger, &rejected))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OBJ %s: %w", name, err)
	}

	data := fromGwob(name, obj)
	data.Ignored = ignored + rejected
	if data.Ignored > 0 && logger != nil {
		logger.Printf("%s: skipped %d unsupported or malformed lines\n", name, data.Ignored)
	}
	return data, nil
}

// fromGwob converts gwob's strided vertex buffer and index ranges to triangles
func fromGwob(name string, obj *gwob.Obj) *OBJData {
	data := &OBJData{Name: name, Mtllib: obj.Mtllib}

	stride := obj.StrideSize / 4
	offset := obj.StrideOffsetPosition / 4

	vertexAt := func(index int) core.Tuple {
		base := stride*index + offset
		return core.Point(obj.Coord64(base), obj.Coord64(base+1), obj.Coord64(base+2))
	}

	if stride > 0 {
		for i := 0; i < len(obj.Coord)/stride; i++ {
			data.Vertices = append(data.Vertices, vertexAt(i))
		}
	}

	for _, g := range obj.Groups {
		if g.IndexCount < 3 {
			continue
		}

		group := &OBJGroup{Name: g.Name, Usemtl: g.Usemtl}
		if group.Name == leadingGroup {
			group.Name = ""
		}
		for f := 0; f < g.IndexCount/3; f++ {
			i := g.IndexBegin + 3*f
			group.Triangles = append(group.Triangles, geometry.NewTriangle(
				vertexAt(obj.Indices[i]),
				vertexAt(obj.Indices[i+1]),
				vertexAt(obj.Indices[i+2]),
			))
		}
		data.Groups = append(data.Groups, group)
	}

	return data
}

// Default returns the triangles that precede any named group
func (d *OBJData) Default() []*geometry.Shape {
	return d.Group("")
}

// Group returns every triangle in groups with the given name
func (d *OBJData) Group(name string) []*geometry.Shape {
	var triangles []*geometry.Shape
	for _, g := range d.Groups {
		if g.Name == name {
			triangles = append(triangles, g.Triangles...)
		}
	}
	return triangles
}

// TriangleCount returns the number of triangles in the model
func (d *OBJData) TriangleCount() int {
	count := 0
	for _, g := range d.Groups {
		count += len(g.Triangles)
	}
	return count
}

// ApplyMaterials assigns materials to groups by their usemtl name. Groups
// without a matching entry keep their current material.
func (d *OBJData) ApplyMaterials(materials map[string]*material.Material) {
	for _, g := range d.Groups {
		m, ok := materials[g.Usemtl]
		if !ok {
			continue
		}
		for _, t := range g.Triangles {
			t.SetMaterial(m)
		}
	}
}

// ToGroup composes the model into a group named "Root" holding one subgroup per
// named group (faces outside any group go in DefaultGroupName). Subgroups with
// the same name are merged.
func (d *OBJData) ToGroup() *geometry.Shape {
	root := geometry.NewGroup("Root")
	byName := make(map[string]*geometry.Shape)

	for _, g := range d.Groups {
		name := g.Name
		if name == "" {
			name = DefaultGroupName
		}
		sub, ok := byName[name]
		if !ok {
			sub = geometry.NewGroup(name)
			byName[name] = sub
			root.AddChild(sub)
		}
		for _, t := range g.Triangles {
			sub.AddChild(t)
		}
	}
	return root
}

// ParseMTL reads a material library. Each entry becomes a Phong material with
// the library's diffuse color, specular weight and exponent.
func ParseMTL(r io.Reader, logger core.Logger) (map[string]*material.Material, error) {
	lib, err := gwob.ReadMaterialLibFromReader(r, objOptions(logger, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to parse material library: %w", err)
	}

	materials := make(map[string]*material.Material, len(lib.Lib))
	for name, mtl := range lib.Lib {
		m := material.WithColor(core.NewColor(float64(mtl.Kd[0]), float64(mtl.Kd[1]), float64(mtl.Kd[2])))
		m.Specular = (float64(mtl.Ks[0]) + float64(mtl.Ks[1]) + float64(mtl.Ks[2])) / 3
		if mtl.Ns > 0 {
			m.Shininess = float64(mtl.Ns)
		}
		materials[name] = m
	}
	return materials, nil
}
