// Package x11 talks to the X server directly over the wire protocol, without
// shelling out to xdotool or wmctrl. It provides both halves of the capture
// pipeline: locating a window by title and reading raw pixels off the screen.
package x11

import (
	"encoding/binary"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// Client wraps an X connection plus the interned atoms the locator and
// sampler need. A single Client is shared by both and is not goroutine-safe;
// the watch loop is single-threaded so this never matters in practice.
type Client struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

var atomNames = []string{
	"_NET_CLIENT_LIST",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_HIDDEN",
	"WM_NAME",
	"WM_STATE",
	"UTF8_STRING",
}

// NewClient connects to the display named by $DISPLAY and interns the atoms
// used for title lookup and minimized-state checks.
func NewClient() (*Client, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	c := &Client{
		conn:  conn,
		root:  root,
		atoms: make(map[string]xproto.Atom, len(atomNames)),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to intern atom %s", name)
		}
		c.atoms[name] = reply.Atom
	}

	return c, nil
}

// Backend returns "x11".
func (c *Client) Backend() string {
	return "x11"
}

// Close shuts down the X connection.
func (c *Client) Close() error {
	c.conn.Close()
	return nil
}

func (c *Client) getProperty(win xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(c.conn, false, win, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// windowName reads _NET_WM_NAME, falling back to the legacy WM_NAME.
func (c *Client) windowName(win xproto.Window) string {
	data, err := c.getProperty(win, c.atoms["_NET_WM_NAME"], c.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return trimNul(string(data))
	}

	data, err = c.getProperty(win, c.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return trimNul(string(data))
	}

	return ""
}

// clientList returns the window manager's top-level client windows from
// _NET_CLIENT_LIST on the root window. Empty when the WM does not publish it.
func (c *Client) clientList() []xproto.Window {
	data, err := c.getProperty(c.root, c.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow, 1024)
	if err != nil || len(data) < 4 {
		return nil
	}

	wins := make([]xproto.Window, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		wins = append(wins, xproto.Window(binary.LittleEndian.Uint32(data[i:])))
	}
	return wins
}

// isMinimized reports whether a window is iconified, checking the EWMH hidden
// state first and the ICCCM WM_STATE iconic value as a fallback.
func (c *Client) isMinimized(win xproto.Window) bool {
	data, err := c.getProperty(win, c.atoms["_NET_WM_STATE"], xproto.AtomAtom, 32)
	if err == nil {
		hidden := c.atoms["_NET_WM_STATE_HIDDEN"]
		for i := 0; i+4 <= len(data); i += 4 {
			if xproto.Atom(binary.LittleEndian.Uint32(data[i:])) == hidden {
				return true
			}
		}
	}

	// ICCCM: WM_STATE state field, 3 = IconicState.
	data, err = c.getProperty(win, c.atoms["WM_STATE"], c.atoms["WM_STATE"], 2)
	if err == nil && len(data) >= 4 {
		return binary.LittleEndian.Uint32(data) == 3
	}

	return false
}

func trimNul(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return s[:i]
		}
	}
	return s
}
