package sampler

import (
	"errors"
	"image"

	"bosswatch/pkg/window"
)

// ErrCaptureFailed is the cause chained into every failed capture so callers
// can classify a transient capture error without knowing the backend.
var ErrCaptureFailed = errors.New("capture failed")

// Sampler captures a rectangular region of the screen as raw pixels.
// Implementations have no persistent state beyond their display connection;
// each returned frame belongs solely to the tick that requested it.
type Sampler interface {
	// Capture reads the pixels inside rect, given in absolute desktop
	// coordinates. Returns an error wrapping ErrCaptureFailed when the
	// region cannot be read.
	Capture(rect window.Rect) (*image.RGBA, error)

	// Close releases the display connection.
	Close() error
}
