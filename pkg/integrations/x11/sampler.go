package x11

import (
	"image"

	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"bosswatch/pkg/sampler"
	"bosswatch/pkg/window"
)

// Capture reads a region of the root window with GetImage and converts the
// ZPixmap reply to RGBA. Reading the root drawable means the sample is taken
// from whatever is visually topmost; an occluded health bar simply reads as
// absent, which is the conservative answer the detector wants.
func (c *Client) Capture(rect window.Rect) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, errors.Wrap(sampler.ErrCaptureFailed, "zero-area capture rectangle")
	}

	reply, err := xproto.GetImage(c.conn, xproto.ImageFormatZPixmap,
		xproto.Drawable(c.root),
		int16(rect.X), int16(rect.Y),
		uint16(rect.Width), uint16(rect.Height),
		0xffffffff).Reply()
	if err != nil {
		return nil, errors.Wrap(sampler.ErrCaptureFailed, err.Error())
	}

	if reply.Depth != 24 && reply.Depth != 32 {
		return nil, errors.Wrapf(sampler.ErrCaptureFailed, "unsupported pixel depth %d", reply.Depth)
	}
	if len(reply.Data) < rect.Width*rect.Height*4 {
		return nil, errors.Wrapf(sampler.ErrCaptureFailed, "short pixel buffer: %d bytes for %dx%d", len(reply.Data), rect.Width, rect.Height)
	}

	// ZPixmap at depth 24/32 packs one pixel per 32-bit word in BGRX order.
	img := image.NewRGBA(image.Rect(0, 0, rect.Width, rect.Height))
	for i, j := 0, 0; j < len(img.Pix); i, j = i+4, j+4 {
		img.Pix[j+0] = reply.Data[i+2]
		img.Pix[j+1] = reply.Data[i+1]
		img.Pix[j+2] = reply.Data[i+0]
		img.Pix[j+3] = 0xff
	}

	return img, nil
}
