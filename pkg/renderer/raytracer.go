package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Config contains rendering configuration
type Config struct {
	MaxDepth   int // Reflection/refraction recursion budget per primary ray
	TileSize   int // Edge length of a work unit in pixels
	NumWorkers int // Parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   5,
		TileSize:   32,
		NumWorkers: 0,
	}
}

// TileCompletionResult describes a finished tile for progress callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle
	TileImage *image.RGBA // Image data for just this tile

	TileNumber int // Tiles finished so far, including this one
	TotalTiles int
}

// Raytracer renders a world through a camera using a pool of workers
type Raytracer struct {
	world  *world.World
	camera *Camera
	config Config
	logger core.Logger
}

// NewRaytracer creates a raytracer. A nil logger discards messages.
func NewRaytracer(w *world.World, camera *Camera, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Raytracer{world: w, camera: camera, config: config, logger: logger}
}

// Config returns the raytracer's configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render traces every pixel and returns the finished canvas. tileCallback, if not
// nil, is called from the calling goroutine once per finished tile. A world
// without a light is rejected with world.ErrNoLight; cancelling ctx stops the
// render between tiles and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*canvas.Canvas, RenderStats, error) {
	if err := rt.world.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	width, height := rt.camera.HSize(), rt.camera.VSize()
	tileSize := rt.config.TileSize
	if tileSize <= 0 {
		tileSize = DefaultConfig().TileSize
	}

	img := canvas.New(width, height)
	tiles := NewTileGrid(width, height, tileSize)
	pool := NewWorkerPool(rt.world, rt.camera, rt.config.MaxDepth, img, len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d (%d tiles, %d workers, depth %d)...\n",
		width, height, len(tiles), pool.GetNumWorkers(), rt.config.MaxDepth)

	startTime := time.Now()
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		if tileCallback != nil && renderErr == nil {
			tile := tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / tileSize,
				TileY:      tile.Bounds.Min.Y / tileSize,
				Bounds:     tile.Bounds,
				TileImage:  result.Image,
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}
	pool.Stop()

	if renderErr != nil {
		rt.logger.Printf("Rendering stopped: %v\n", renderErr)
		return nil, RenderStats{}, renderErr
	}

	stats := RenderStats{
		TotalPixels:      width * height,
		TotalTiles:       len(tiles),
		Workers:          pool.GetNumWorkers(),
		Duration:         time.Since(startTime),
		AverageLuminance: CalculateAverageLuminance(img),
	}
	rt.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Duration, stats.PixelsPerSecond())

	return img, stats, nil
}
