package server

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage is one line of render output streamed to the browser
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning" or "error"
}

// WebLogger is the core.Logger handed to scene loading and rendering for one
// web render. Lines are echoed to the server's stdout tagged with the render id
// and queued for the browser console; when the queue is full they are dropped
// rather than stalling the render.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	dropped     atomic.Int64
}

// NewWebLogger creates the logger for a render. consoleChan may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

var _ core.Logger = (*WebLogger)(nil)

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Printf("[%s] %s", wl.renderID, message)

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     consoleLevel(message),
	}:
	default:
		wl.dropped.Add(1)
	}
}

// Dropped returns how many lines did not fit in the console queue
func (wl *WebLogger) Dropped() int64 {
	return wl.dropped.Load()
}

// consoleLevel classifies a log line by the wording the loaders and the
// raytracer use for problems
func consoleLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "failed") || strings.Contains(lower, "stopped"):
		return "error"
	case strings.Contains(lower, "skipping") || strings.Contains(lower, "skipped"):
		return "warning"
	default:
		return "info"
	}
}
