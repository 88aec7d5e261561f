package window

import (
	"image"
	"testing"
)

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"positive area", Rect{X: 10, Y: 10, Width: 5, Height: 30}, false},
		{"zero value", Rect{}, true},
		{"zero width", Rect{X: 10, Y: 10, Width: 0, Height: 30}, true},
		{"negative height", Rect{X: 10, Y: 10, Width: 5, Height: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectBounds(t *testing.T) {
	r := Rect{X: 120, Y: 345, Width: 5, Height: 30}
	want := image.Rect(120, 345, 125, 375)
	if got := r.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestRectIntersect(t *testing.T) {
	win := Rect{X: 100, Y: 200, Width: 800, Height: 600}

	tests := []struct {
		name string
		roi  Rect
		want Rect
	}{
		{"fully inside", Rect{X: 120, Y: 345, Width: 5, Height: 30}, Rect{X: 120, Y: 345, Width: 5, Height: 30}},
		{"clipped at bottom", Rect{X: 120, Y: 790, Width: 5, Height: 30}, Rect{X: 120, Y: 790, Width: 5, Height: 10}},
		{"fully outside", Rect{X: 120, Y: 900, Width: 5, Height: 30}, Rect{}},
		{"clipped at left edge", Rect{X: 90, Y: 300, Width: 20, Height: 10}, Rect{X: 100, Y: 300, Width: 10, Height: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.roi.Intersect(win); got != tt.want {
				t.Errorf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}
