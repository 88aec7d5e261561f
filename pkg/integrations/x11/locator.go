package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"bosswatch/pkg/window"
)

// Find resolves an exact window-title match to a handle. It walks the WM's
// _NET_CLIENT_LIST first and falls back to a one-level QueryTree walk for
// window managers that do not publish a client list.
func (c *Client) Find(title string) (window.Ref, error) {
	for _, win := range c.clientList() {
		if c.windowName(win) == title {
			return window.Ref(win), nil
		}
	}

	reply, err := xproto.QueryTree(c.conn, c.root).Reply()
	if err != nil {
		return 0, errors.Wrap(err, "failed to query window tree")
	}
	for _, win := range reply.Children {
		if c.windowName(win) == title {
			return window.Ref(win), nil
		}
	}

	return 0, errors.Wrapf(window.ErrWindowNotFound, "no window titled %q", title)
}

// Info returns fresh title, geometry, and minimized state for a handle.
// Geometry is translated to root coordinates on every call so a moved window
// is always sampled at its current position.
func (c *Client) Info(ref window.Ref) (*window.Info, error) {
	win := xproto.Window(ref)

	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return nil, errors.Wrap(window.ErrWindowGone, err.Error())
	}

	trans, err := xproto.TranslateCoordinates(c.conn, win, c.root, 0, 0).Reply()
	if err != nil {
		return nil, errors.Wrap(window.ErrWindowGone, err.Error())
	}

	return &window.Info{
		Ref:   ref,
		Title: c.windowName(win),
		Rect: window.Rect{
			X:      int(trans.DstX),
			Y:      int(trans.DstY),
			Width:  int(geom.Width),
			Height: int(geom.Height),
		},
		Minimized: c.isMinimized(win),
		Backend:   "x11",
	}, nil
}
