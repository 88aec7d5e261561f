// Package screen wires locator and sampler backends to the current session.
package screen

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"bosswatch/pkg/integrations/desktop"
	"bosswatch/pkg/integrations/x11"
	"bosswatch/pkg/sampler"
	"bosswatch/pkg/window"
)

// NewLocator returns the window locator for the current display session.
// Only X11 (including XWayland) exposes window titles and geometry in a way
// the watcher can use; a pure Wayland session without XWayland is rejected.
func NewLocator() (window.Locator, error) {
	if os.Getenv("DISPLAY") == "" {
		return nil, errors.Errorf("no X11 display available (DISPLAY unset, session=%s)", DetectDisplayServer())
	}
	return x11.NewClient()
}

// NewSampler returns a frame sampler, preferring the direct X11 backend and
// falling back to the portable screenshot library.
func NewSampler() (sampler.Sampler, error) {
	if os.Getenv("DISPLAY") != "" {
		c, err := x11.NewClient()
		if err == nil {
			return c, nil
		}
		log.Printf("X11 sampler unavailable, falling back to portable capture: %v", err)
	}
	return desktop.NewSampler(), nil
}

// DetectDisplayServer reports which display server the session runs on.
func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
