package window

import "errors"

var (
	// ErrWindowNotFound means no window on the display carries the target title.
	ErrWindowNotFound = errors.New("window not found")

	// ErrWindowGone means a previously resolved handle no longer refers to a
	// live window. Callers should re-resolve by title on the next tick.
	ErrWindowGone = errors.New("window gone")

	// ErrWindowMinimized means the window exists but is iconified. Its pixels
	// cannot be sampled while it stays minimized.
	ErrWindowMinimized = errors.New("window minimized")
)
