package window

import "image"

// Ref is an opaque handle to a target window. It is only meaningful to the
// Locator that produced it and must be revalidated every tick, since windows
// can close, move, or be iconified at any time.
type Ref uint32

// Rect is a rectangle in absolute desktop coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bounds converts the rectangle to an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Intersect clips the rectangle against another and returns the overlap.
func (r Rect) Intersect(other Rect) Rect {
	b := r.Bounds().Intersect(other.Bounds())
	if b.Empty() {
		return Rect{}
	}
	return Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
}

// Info describes a located window at one instant. Rect is derived fresh on
// every call and must never be cached across ticks.
type Info struct {
	Ref       Ref
	Title     string
	Rect      Rect
	Minimized bool
	Backend   string // "x11"
}

// Locator resolves a window title to a live window handle and reports its
// current geometry and visibility.
type Locator interface {
	// Find resolves an exact title match to a window handle.
	// Returns ErrWindowNotFound when no window carries the title.
	Find(title string) (Ref, error)

	// Info returns fresh title, geometry, and minimized state for a handle.
	// Returns ErrWindowGone when the handle no longer refers to a live window.
	Info(ref Ref) (*Info, error)

	// Backend returns the display backend this locator talks to.
	Backend() string

	// Close releases the display connection.
	Close() error
}
