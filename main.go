package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneName := flag.String("scene", "default", "Scene id, model id (obj:<name>, ply:<name>) or path to an .obj/.ply file")
	modelPath := flag.String("model", "", "Path to an .obj or .ply model to render (overrides -scene)")
	width := flag.Int("width", 0, "Image width in pixels (0 uses the scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 uses the scene default)")
	depth := flag.Int("depth", 0, "Maximum reflection/refraction depth (0 uses the scene default)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect)")
	format := flag.String("format", "png", "Output format: 'png' or 'ppm'")
	outDir := flag.String("out", "output", "Directory to write renders to")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if *format != "png" && *format != "ppm" {
		fmt.Printf("Unknown format: %s (expected png or ppm)\n", *format)
		os.Exit(1)
	}

	name := *sceneName
	if *modelPath != "" {
		name = *modelPath
	}

	fmt.Println("Starting Whitted Raytracer...")
	logger := renderer.NewDefaultLogger()

	s, err := createScene(name, scene.Config{Width: *width, Height: *height, MaxDepth: *depth}, logger)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Scene %s: %d primitives, %dx%d\n", s.Name, s.GetPrimitiveCount(), s.Config.Width, s.Config.Height)

	// Stop cleanly on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config := s.RaytracerConfig()
	config.NumWorkers = *workers
	img, stats, err := renderer.NewRaytracer(s.World, s.Camera, config, logger).Render(ctx, nil)
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Average luminance: %.3f\n", stats.AverageLuminance)

	filename := outputPath(*outDir, s.Name, *format, time.Now())
	if err := saveCanvas(img, filename, *format); err != nil {
		fmt.Printf("Error saving render: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene resolves a scene name through the scene registry
func createScene(name string, config scene.Config, logger core.Logger) (*scene.Scene, error) {
	return scene.Create(name, config, logger)
}

// outputPath returns output/<scene>/render_<timestamp>.<format>
func outputPath(outDir, sceneName, format string, t time.Time) string {
	dir := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(sceneName)
	timestamp := t.Format("20060102_150405")
	return filepath.Join(outDir, dir, fmt.Sprintf("render_%s.%s", timestamp, format))
}

// saveCanvas writes the canvas as PNG or PPM, creating the directory if needed
func saveCanvas(c *canvas.Canvas, filename, format string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	switch format {
	case "ppm":
		err = c.WritePPM(file)
	default:
		err = c.WritePNG(file)
	}
	if err != nil {
		return fmt.Errorf("error writing %s: %w", format, err)
	}
	return file.Close()
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()

	scenes, err := scene.ListAllScenes()
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
		return
	}
	for _, group := range scenes.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-16s %s\n", info.ID, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to <out>/<scene>/render_<timestamp>.<format>")
}
