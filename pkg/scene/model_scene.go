package scene

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// modelSize is the extent of a model's longest side once normalized
const modelSize = 2.0

// errEmptyModel is returned for model files without a single triangle
var errEmptyModel = errors.New("model contains no triangles")

// NewModelScene loads an OBJ or PLY model, scales it to fit a 2-unit box resting
// on a checkered floor and divides it into a bounding volume hierarchy
func NewModelScene(path string, logger core.Logger, overrides ...Config) (*Scene, error) {
	model, err := loadModel(path, logger)
	if err != nil {
		return nil, err
	}
	if err := normalizeModel(model); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	model.Divide(geometry.DefaultLeafThreshold)

	config := resolveConfig(Config{
		Width:       400,
		Height:      300,
		FieldOfView: math.Pi / 3,
		MaxDepth:    4,
	}, overrides)

	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-6, 10, -10), core.White))
	w.SetBackground(core.NewColor(0.2, 0.2, 0.25))
	w.AddObject(newCheckeredFloor(0.1), model)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return newScene(name, w, config, core.Point(0, 2.2, -4.5), core.Point(0, 0.9, 0)), nil
}

// loadModel reads a model file into a group of triangles based on its extension
func loadModel(path string, logger core.Logger) (*geometry.Shape, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		data, err := loaders.LoadOBJ(path, logger)
		if err != nil {
			return nil, err
		}
		if data.TriangleCount() == 0 {
			return nil, fmt.Errorf("%s: %w", path, errEmptyModel)
		}
		root := data.ToGroup()
		if data.Mtllib == "" {
			root.SetMaterial(modelMaterial())
		}
		if logger != nil {
			logger.Printf("Loaded %s: %d triangles in %d groups\n", path, data.TriangleCount(), len(root.Children()))
		}
		return root, nil
	case ".ply":
		data, err := loaders.LoadPLY(path)
		if err != nil {
			return nil, err
		}
		if len(data.Faces) == 0 {
			return nil, fmt.Errorf("%s: %w", path, errEmptyModel)
		}
		if logger != nil {
			logger.Printf("Loaded %s: %d vertices, %d triangles\n", path, len(data.Vertices), len(data.Faces))
		}
		return data.ToGroup(modelMaterial()), nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", path)
	}
}

// modelMaterial is used for models that carry no materials of their own
func modelMaterial() *material.Material {
	m := material.WithColor(core.NewColor(0.75, 0.7, 0.65))
	m.Specular = 0.4
	m.Shininess = 80
	return m
}

// normalizeModel transforms a model so its longest side is modelSize, centered on
// the y axis with its lowest point on y = 0
func normalizeModel(model *geometry.Shape) error {
	bounds := model.Bounds()
	if !bounds.IsValid() {
		return errEmptyModel
	}

	size := bounds.Size()
	longest := math.Max(size.X, math.Max(size.Y, size.Z))
	if longest <= 0 || math.IsInf(longest, 0) {
		return fmt.Errorf("model has degenerate bounds %v", bounds)
	}

	scale := modelSize / longest
	center := bounds.Center()
	model.SetTransform(core.Chain(
		core.Translation(-center.X, -bounds.Min.Y, -center.Z),
		core.Scaling(scale, scale, scale),
	))
	return nil
}
