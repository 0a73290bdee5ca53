package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrUnknownScene is returned by Create for names that match no scene
var ErrUnknownScene = errors.New("unknown scene")

type builtinScene struct {
	info  SceneInfo
	build func(overrides ...Config) *Scene
}

var builtins = []builtinScene{
	{SceneInfo{ID: "default", Name: "Default World", Description: "Green sphere enclosing a smaller sphere"}, NewDefaultScene},
	{SceneInfo{ID: "spheres", Name: "Patterned Spheres", Description: "Striped, gradient and ringed spheres on a checkered floor"}, NewSpheresScene},
	{SceneInfo{ID: "reflection", Name: "Reflection and Refraction", Description: "Mirror and hollow glass spheres with Fresnel blending"}, NewReflectionScene},
	{SceneInfo{ID: "primitives", Name: "Primitives", Description: "Cube, cylinders, cone and triangle"}, NewPrimitivesScene},
	{SceneInfo{ID: "hexagon", Name: "Hexagon", Description: "Nested groups of spheres and cylinders"}, NewHexagonScene},
	{SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "Grid of reflective spheres in a bounding volume hierarchy"}, NewSphereGridScene},
	{SceneInfo{ID: "trianglemesh", Name: "Triangle Meshes", Description: "Box, pyramid and icosahedron built from triangles"}, NewTriangleMeshScene},
}

// BuiltinScenes describes the scenes that need no files
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.DisplayName = info.Name
		info.Group = BuiltinGroup
		info.Type = "builtin"
		infos = append(infos, info)
	}
	return infos
}

// Create builds a scene by name: a built-in scene id, a discovered model id such
// as "obj:teapot", or a path to an .obj or .ply file. Positive fields of config
// override the scene's defaults.
func Create(name string, config Config, logger core.Logger) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownScene)
	}

	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(config), nil
		}
	}

	if strings.HasPrefix(name, "obj:") || strings.HasPrefix(name, "ply:") {
		models, err := ListModelScenes()
		if err != nil {
			return nil, err
		}
		for _, m := range models {
			if m.ID == name {
				return NewModelScene(m.FilePath, logger, config)
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".obj", ".ply":
		return NewModelScene(name, logger, config)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
