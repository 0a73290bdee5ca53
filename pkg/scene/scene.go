package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	World  *world.World
	Camera *renderer.Camera
	Config Config
}

// Config holds the per-scene render settings
type Config struct {
	Width       int     // Image width
	Height      int     // Image height
	FieldOfView float64 // Camera field of view in radians
	MaxDepth    int     // Reflection/refraction recursion limit
}

// DefaultConfig returns the settings used when a scene does not choose its own
func DefaultConfig() Config {
	return Config{
		Width:       400,
		Height:      225,
		FieldOfView: math.Pi / 3,
		MaxDepth:    renderer.DefaultConfig().MaxDepth,
	}
}

// MergeConfig returns defaults with every positive field of override applied
func MergeConfig(defaults, override Config) Config {
	result := defaults
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.FieldOfView > 0 {
		result.FieldOfView = override.FieldOfView
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// resolveConfig applies the first override, if any, to a scene's defaults
func resolveConfig(defaults Config, overrides []Config) Config {
	if len(overrides) > 0 {
		return MergeConfig(defaults, overrides[0])
	}
	return defaults
}

// newScene creates a camera for config looking from one point at another with +y up
func newScene(name string, w *world.World, config Config, from, to core.Tuple) *Scene {
	camera := renderer.NewCamera(config.Width, config.Height, config.FieldOfView)
	camera.SetTransform(core.ViewTransform(from, to, core.Vector(0, 1, 0)))

	return &Scene{
		Name:   name,
		World:  w,
		Camera: camera,
		Config: config,
	}
}

// RaytracerConfig returns renderer settings for this scene
func (s *Scene) RaytracerConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.MaxDepth = s.Config.MaxDepth
	return config
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.World.Objects() {
		count += countPrimitives(shape)
	}
	return count
}

// countPrimitives counts the non-group shapes under shape, including itself
func countPrimitives(shape *geometry.Shape) int {
	if shape.Kind() != geometry.KindGroup {
		return 1
	}
	count := 0
	for _, child := range shape.Children() {
		count += countPrimitives(child)
	}
	return count
}
