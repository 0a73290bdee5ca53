package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Image  *image.RGBA // Just this tile, 8-bit
	Error  error
}

// WorkerPool renders tiles in parallel into a shared canvas. Tiles never
// overlap, so each pixel is written by exactly one worker.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup

	world    *world.World
	camera   *Camera
	maxDepth int
	target   *canvas.Canvas
}

// NewWorkerPool creates a pool for numTasks tiles. numWorkers <= 0 uses the CPU count.
func NewWorkerPool(w *world.World, camera *Camera, maxDepth int, target *canvas.Canvas, numTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, numTasks),
		resultQueue: make(chan TileResult, numTasks),
		numWorkers:  numWorkers,
		world:       w,
		camera:      camera,
		maxDepth:    maxDepth,
		target:      target,
	}
}

// Start begins all workers. Tasks left in the queue after ctx is done are
// answered with ctx.Err() instead of being rendered.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// Stop closes the task queue and waits for the workers to drain it
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if err := ctx.Err(); err != nil {
			wp.resultQueue <- TileResult{TaskID: task.TaskID, Error: err}
			continue
		}
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Image: wp.renderTile(task.Tile.Bounds)}
	}
}

// renderTile traces every pixel in bounds into the shared canvas and returns
// an 8-bit copy of the tile
func (wp *WorkerPool) renderTile(bounds image.Rectangle) *image.RGBA {
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := wp.world.ColorAt(wp.camera.RayForPixel(x, y), wp.maxDepth)
			wp.target.SetPixel(x, y, c)
			tileImage.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, canvas.ToRGBA(c))
		}
	}

	return tileImage
}
