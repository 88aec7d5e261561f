package screen

import (
	"os"
	"testing"
)

func TestDetectDisplayServer(t *testing.T) {
	tests := []struct {
		name           string
		sessionType    string
		waylandDisplay string
		x11Display     string
		want           string
	}{
		{"Wayland session", "wayland", "wayland-0", "", "wayland"},
		{"X11 session", "x11", "", ":0", "x11"},
		{"Unknown session", "", "", "", "unknown"},
		{"Wayland display set", "", "wayland-1", "", "wayland"},
		{"X11 display set", "", "", ":1", "x11"},
		{"XWayland prefers wayland label", "wayland", "wayland-0", ":0", "wayland"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_SESSION_TYPE", tt.sessionType)
			t.Setenv("WAYLAND_DISPLAY", tt.waylandDisplay)
			t.Setenv("DISPLAY", tt.x11Display)

			if got := DetectDisplayServer(); got != tt.want {
				t.Errorf("DetectDisplayServer() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewLocatorWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("XDG_SESSION_TYPE", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	if _, err := NewLocator(); err == nil {
		t.Error("NewLocator() succeeded without a display")
	}
}

func TestNewLocator(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X11 display available")
	}

	loc, err := NewLocator()
	if err != nil {
		t.Skipf("X server not reachable: %v", err)
	}
	defer loc.Close()

	if loc.Backend() != "x11" {
		t.Errorf("Backend() = %s, want x11", loc.Backend())
	}
}

func TestNewSamplerWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")

	smp, err := NewSampler()
	if err != nil {
		t.Fatalf("NewSampler() error: %v", err)
	}
	defer smp.Close()
}
