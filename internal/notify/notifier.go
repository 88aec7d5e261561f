// Package notify delivers desktop notifications. Delivery is best effort:
// failures are reported to the caller for logging but must never influence
// the tracked state.
package notify

import (
	"os"
	"runtime"

	"github.com/gen2brain/beeep"
)

// Notifier displays a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop sends notifications through the platform notification service.
type Desktop struct {
	icon string
}

// NewDesktop returns a desktop notifier. icon is an optional path to an icon
// file shown with each notification; empty uses the platform default.
func NewDesktop(icon string) *Desktop {
	return &Desktop{icon: icon}
}

// Notify shows a desktop notification. On a headless Linux session (no
// DISPLAY or WAYLAND_DISPLAY) it silently does nothing, since there is no
// notification daemon to talk to and the error would only be noise.
func (d *Desktop) Notify(title, message string) error {
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return nil
	}
	return beeep.Notify(title, message, d.icon)
}
