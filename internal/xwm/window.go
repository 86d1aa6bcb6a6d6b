package xwm

import (
	"github.com/ItsNotGoodName/x-splitmon/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type Window struct {
	WID    xproto.Window
	Width  uint16
	Height uint16
}

// CreateWindow creates and maps the panel window. The window manager treats
// it as a normal fixed size window that stays above other clients.
func CreateWindow(conn *xgb.Conn, atoms Atoms, title string, width, height uint16) (Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)

	cursor, err := xcursor.CreateCursor(conn, xcursor.LeftPtr)
	if err != nil {
		return Window{}, err
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return Window{}, err
	}

	if err := xproto.CreateWindowChecked(conn, screen.RootDepth,
		wid, screen.Root,
		0, 0, width, height, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask|xproto.CwCursor, // 1, 2, 3
		[]uint32{
			screen.WhitePixel, // 1
			xproto.EventMaskExposure | xproto.EventMaskStructureNotify | xproto.EventMaskKeyPress | xproto.EventMaskButtonPress, // 2
			uint32(cursor), // 3
		}).Check(); err != nil {
		return Window{}, err
	}

	if err := SetTitle(conn, atoms, wid, title); err != nil {
		return Window{}, err
	}

	if err := setProtocols(conn, atoms, wid); err != nil {
		return Window{}, err
	}

	if err := setSizeHintsFixed(conn, wid, width, height); err != nil {
		return Window{}, err
	}

	// _NET_WM_STATE must be set before the window is mapped for the window
	// manager to pick it up.
	data := make([]byte, 4)
	xgb.Put32(data, uint32(atoms.NetWMStateAbove))
	if err := xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
		atoms.NetWMState, xproto.AtomAtom, 32, 1, data).Check(); err != nil {
		return Window{}, err
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		return Window{}, err
	}

	return Window{
		WID:    wid,
		Width:  width,
		Height: height,
	}, nil
}

func SetTitle(conn *xgb.Conn, atoms Atoms, wid xproto.Window, title string) error {
	if err := xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title)).Check(); err != nil {
		return err
	}

	return xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
		atoms.NetWMName, atoms.UTF8String, 8, uint32(len(title)), []byte(title)).Check()
}

// setProtocols opts in to WM_DELETE_WINDOW so closing the window arrives as a
// ClientMessage instead of the window manager killing the connection.
func setProtocols(conn *xgb.Conn, atoms Atoms, wid xproto.Window) error {
	data := make([]byte, 4)
	xgb.Put32(data, uint32(atoms.WMDeleteWindow))

	return xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
		atoms.WMProtocols, xproto.AtomAtom, 32, 1, data).Check()
}

// setSizeHintsFixed pins min and max size to the same value so the window
// manager disables resizing.
func setSizeHintsFixed(conn *xgb.Conn, wid xproto.Window, width, height uint16) error {
	// WM_SIZE_HINTS: flags, 4 legacy fields, min w/h, max w/h, then
	// increment, aspect and base fields left zero.
	hints := make([]uint32, 18)
	hints[0] = 16 | 32 // PMinSize | PMaxSize
	hints[5] = uint32(width)
	hints[6] = uint32(height)
	hints[7] = uint32(width)
	hints[8] = uint32(height)

	data := make([]byte, len(hints)*4)
	for i, hint := range hints {
		xgb.Put32(data[i*4:], hint)
	}

	return xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
		xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 32, uint32(len(hints)), data).Check()
}

// IconifyWindow asks the window manager to minimize the window by sending a
// WM_CHANGE_STATE client message to the root window.
func IconifyWindow(conn *xgb.Conn, atoms Atoms, root, wid xproto.Window) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: wid,
		Type:   atoms.WMChangeState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{3, 0, 0, 0, 0}), // IconicState
	}

	return xproto.SendEventChecked(conn, false, root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes())).Check()
}

func RaiseWindow(conn *xgb.Conn, wid xproto.Window) error {
	return xproto.ConfigureWindowChecked(conn, wid,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check()
}

// SetOpacity sets _NET_WM_WINDOW_OPACITY which compositing window managers
// apply to the whole window. Opacity is 0 to 1.
func SetOpacity(conn *xgb.Conn, atoms Atoms, wid xproto.Window, opacity float64) error {
	data := make([]byte, 4)
	xgb.Put32(data, uint32(opacity*0xffffffff))

	return xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
		atoms.NetWMWindowOpacity, xproto.AtomCardinal, 32, 1, data).Check()
}
