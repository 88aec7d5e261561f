// Package desktop captures screen regions through the portable screenshot
// library. It is the fallback backend for sessions where a direct X
// connection is unavailable (XWayland, remote displays).
package desktop

import (
	"image"

	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"

	"bosswatch/pkg/sampler"
	"bosswatch/pkg/window"
)

// Sampler captures desktop regions via github.com/kbinani/screenshot.
type Sampler struct{}

// NewSampler returns a portable desktop sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Capture reads the pixels inside rect from the desktop.
func (s *Sampler) Capture(rect window.Rect) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, errors.Wrap(sampler.ErrCaptureFailed, "zero-area capture rectangle")
	}

	img, err := screenshot.CaptureRect(rect.Bounds())
	if err != nil {
		return nil, errors.Wrap(sampler.ErrCaptureFailed, err.Error())
	}

	return img, nil
}

// Close is a no-op; the screenshot library holds no persistent handles.
func (s *Sampler) Close() error {
	return nil
}
