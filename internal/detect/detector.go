// Package detect classifies captured frames against a color signature.
// Classification is a pure function: no side effects, deterministic for
// identical pixel bytes.
package detect

import "image"

// Signature describes the visual marker to look for: a target luminance with
// a tolerance, and the fraction of region pixels that must match. The boss
// health bar renders as a flat red strip whose Rec. 709 luminance sits at
// 93.425 on a default-scale window; both thresholds are configuration because
// they are empirically tuned, not derived.
type Signature struct {
	Luminance     float64
	Tolerance     float64
	MinMatchRatio float64
}

// Result is the outcome of classifying one frame. Matched and Total are
// diagnostics for logging; Present is what the state tracker consumes.
type Result struct {
	Present bool
	Matched int
	Total   int
}

// Matches reports whether a single pixel's luminance falls inside the
// signature's tolerance band.
func (s Signature) Matches(r, g, b uint8) bool {
	lum := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	diff := lum - s.Luminance
	if diff < 0 {
		diff = -diff
	}
	return diff < s.Tolerance
}

// Classify scans every pixel of the frame and counts signature matches.
// Present is true iff the matched fraction reaches MinMatchRatio, which
// rejects both a handful of stray matching pixels and a single stray
// non-matching one. A nil or zero-area frame classifies as absent, never as
// an error: no frame means no signal.
func Classify(frame *image.RGBA, sig Signature) Result {
	if frame == nil {
		return Result{}
	}

	bounds := frame.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total <= 0 {
		return Result{}
	}

	matched := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := frame.Pix[frame.PixOffset(bounds.Min.X, y):frame.PixOffset(bounds.Max.X, y)]
		for i := 0; i+4 <= len(row); i += 4 {
			if sig.Matches(row[i], row[i+1], row[i+2]) {
				matched++
			}
		}
	}

	return Result{
		Present: matched > 0 && float64(matched) >= sig.MinMatchRatio*float64(total),
		Matched: matched,
		Total:   total,
	}
}
