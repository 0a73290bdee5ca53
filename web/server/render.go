package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel position of the tile's top-left corner
	Y          int    `json:"y"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// RenderComplete summarizes a finished render
type RenderComplete struct {
	RenderID         string  `json:"renderId"`
	Scene            string  `json:"scene"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalPixels      int     `json:"totalPixels"`
	TotalTiles       int     `json:"totalTiles"`
	Workers          int     `json:"workers"`
	PixelsPerSecond  float64 `json:"pixelsPerSecond"`
	AverageLuminance float64 `json:"averageLuminance"`
	PrimitiveCount   int     `json:"primitiveCount"`
	ConsoleDropped   int64   `json:"consoleDropped,omitempty"` // Log lines the console queue could not hold
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene, streaming finished tiles and console output via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it so nothing writes after return
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID, consoleChan, webLogger := s.setupConsoleLogging()
	stopConsole := s.startConsoleStreaming(ctx, consoleChan, sseEventChan)
	defer stopConsole()

	sceneObj, err := s.createScene(req, webLogger)
	if err != nil {
		stopConsole()
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	config := sceneObj.RaytracerConfig()
	config.TileSize = DefaultTileSize
	raytracer := renderer.NewRaytracer(sceneObj.World, sceneObj.Camera, config, webLogger)

	startTime := time.Now()
	_, stats, err := raytracer.Render(ctx, func(tile renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, sseEventChan, tile)
	})

	// Flush console output before the final event
	stopConsole()

	if err != nil {
		if ctx.Err() != nil {
			// Client disconnected
			return
		}
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.handleRenderComplete(ctx, sseEventChan, RenderComplete{
		RenderID:         renderID,
		Scene:            req.Scene,
		Width:            sceneObj.Config.Width,
		Height:           sceneObj.Config.Height,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		TotalPixels:      stats.TotalPixels,
		TotalTiles:       stats.TotalTiles,
		Workers:          stats.Workers,
		PixelsPerSecond:  stats.PixelsPerSecond(),
		AverageLuminance: stats.AverageLuminance,
		PrimitiveCount:   sceneObj.GetPrimitiveCount(),
		ConsoleDropped:   webLogger.Dropped(),
	})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates a render id, a console channel and a web logger for a render
func (s *Server) setupConsoleLogging() (string, chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := "render-" + uuid.New().String()
	webLogger := NewWebLogger(renderID, consoleChan)
	return renderID, consoleChan, webLogger
}

// startConsoleStreaming forwards console messages as SSE events until the
// returned stop function is called. stop drains pending messages first and may
// be called more than once.
func (s *Server) startConsoleStreaming(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) func() {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.streamConsoleMessages(ctx, stop, consoleChan, sseEventChan)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				// Channel closed
				return
			}

			// Check if client is still connected before writing
			select {
			case <-ctx.Done():
				return
			default:
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until stop is closed, then
// forwards whatever is still buffered
func (s *Server) streamConsoleMessages(ctx context.Context, stop <-chan struct{}, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			s.sendConsoleMessage(ctx, consoleMsg, sseEventChan)

		case <-stop:
			for {
				select {
				case consoleMsg := <-consoleChan:
					s.sendConsoleMessage(ctx, consoleMsg, sseEventChan)
				default:
					return
				}
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

func (s *Server) sendConsoleMessage(ctx context.Context, consoleMsg ConsoleMessage, sseEventChan chan SSEEvent) {
	data, err := json.Marshal(consoleMsg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
	case <-ctx.Done():
	default:
		// Channel full, skip message to avoid blocking
	}
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, tileResult renderer.TileCompletionResult) {
	// Check if client is still connected
	select {
	case <-ctx.Done():
		return
	default:
	}

	tileData, err := s.imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	update := TileUpdate{
		TileX:      tileResult.TileX,
		TileY:      tileResult.TileY,
		X:          tileResult.Bounds.Min.X,
		Y:          tileResult.Bounds.Min.Y,
		ImageData:  tileData,
		TileNumber: tileResult.TileNumber,
		TotalTiles: tileResult.TotalTiles,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleRenderComplete sends the final summary event
func (s *Server) handleRenderComplete(ctx context.Context, sseEventChan chan SSEEvent, summary RenderComplete) {
	data, err := json.Marshal(summary)
	if err != nil {
		log.Printf("Error marshaling render summary: %v", err)
		data = []byte(`{}`)
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 1920*1080 && req.MaxDepth > 10 {
		log.Printf("Render warning: Large image with deep recursion may render slowly")
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
