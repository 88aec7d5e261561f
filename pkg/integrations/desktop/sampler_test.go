package desktop

import (
	"os"
	"testing"

	"github.com/pkg/errors"

	"bosswatch/pkg/sampler"
	"bosswatch/pkg/window"
)

func TestCaptureRejectsEmptyRect(t *testing.T) {
	s := NewSampler()
	defer s.Close()

	_, err := s.Capture(window.Rect{})
	if !errors.Is(err, sampler.ErrCaptureFailed) {
		t.Errorf("Capture of empty rect returned %v, want ErrCaptureFailed cause", err)
	}
}

func TestCaptureAgainstLiveDisplay(t *testing.T) {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		t.Skip("no display available")
	}

	s := NewSampler()
	defer s.Close()

	frame, err := s.Capture(window.Rect{X: 0, Y: 0, Width: 5, Height: 30})
	if err != nil {
		t.Skipf("capture not possible on this display: %v", err)
	}

	bounds := frame.Bounds()
	if bounds.Dx() != 5 || bounds.Dy() != 30 {
		t.Errorf("frame is %dx%d, want 5x30", bounds.Dx(), bounds.Dy())
	}
}
