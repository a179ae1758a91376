package metrics

import (
	"encoding/binary"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/pkg/errors"
)

// x11Client is a thin wrapper over one X connection for reading the focused
// window's title.
type x11Client struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

func newX11Client() (*x11Client, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	client := &x11Client{
		conn:  conn,
		root:  root,
		atoms: make(map[string]xproto.Atom),
	}

	atomNames := []string{
		"_NET_ACTIVE_WINDOW",
		"_NET_WM_NAME",
		"WM_NAME",
		"UTF8_STRING",
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to intern atom %s", name)
		}
		client.atoms[name] = reply.Atom
	}

	return client, nil
}

func (c *x11Client) Close() {
	c.conn.Close()
}

func (c *x11Client) getProperty(window xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(c.conn, false, window, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (c *x11Client) activeWindow() (xproto.Window, error) {
	data, err := c.getProperty(c.root, c.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil {
		return 0, err
	}
	if len(data) < 4 {
		return 0, errors.New("no active window property")
	}
	window := xproto.Window(binary.LittleEndian.Uint32(data))
	if window == 0 {
		return 0, errors.New("no active window")
	}
	return window, nil
}

// ActiveWindowTitle returns the focused window's title, preferring the EWMH
// UTF-8 name over the legacy WM_NAME.
func (c *x11Client) ActiveWindowTitle() (string, error) {
	window, err := c.activeWindow()
	if err != nil {
		return "", err
	}

	data, err := c.getProperty(window, c.atoms["_NET_WM_NAME"], c.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00"), nil
	}

	data, err = c.getProperty(window, c.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00"), nil
	}

	return "", nil
}
