package xwm

import (
	"github.com/ItsNotGoodName/x-splitmon/internal/mosaic"
	"github.com/ItsNotGoodName/x-splitmon/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	rubberbandFill        = 0x8080ff
	rubberbandBorder      = 0x000000
	rubberbandBorderWidth = 3
)

// CaptureSurface is the fullscreen overlay the user drags a region on. It is
// override redirect so it covers everything including panels and docks, and
// it is created on demand and destroyed when the capture finishes.
type CaptureSurface struct {
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	atoms   Atoms
	panel   xproto.Window
	opacity float64

	wid      xproto.Window
	fillGC   xproto.Gcontext
	borderGC xproto.Gcontext
}

func NewCaptureSurface(conn *xgb.Conn, screen *xproto.ScreenInfo, atoms Atoms, panel xproto.Window, opacity float64) *CaptureSurface {
	return &CaptureSurface{
		conn:    conn,
		screen:  screen,
		atoms:   atoms,
		panel:   panel,
		opacity: opacity,
	}
}

// SetOpacity changes the overlay opacity used by the next Open.
func (s *CaptureSurface) SetOpacity(opacity float64) {
	s.opacity = opacity
}

// Window is the overlay window, or 0 when no capture is running.
func (s *CaptureSurface) Window() xproto.Window {
	return s.wid
}

// Open maps the overlay across the whole screen, grabs the keyboard and
// minimizes the panel so it cannot sit on top of the capture.
func (s *CaptureSurface) Open() error {
	cursor, err := xcursor.CreateCursor(s.conn, xcursor.Crosshair)
	if err != nil {
		return err
	}

	wid, err := xproto.NewWindowId(s.conn)
	if err != nil {
		return err
	}

	if err := xproto.CreateWindowChecked(s.conn, s.screen.RootDepth,
		wid, s.screen.Root,
		0, 0, s.screen.WidthInPixels, s.screen.HeightInPixels, 0,
		xproto.WindowClassInputOutput, s.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask|xproto.CwCursor, // 1, 2, 3, 4
		[]uint32{
			s.screen.WhitePixel, // 1
			1,                   // 2
			xproto.EventMaskExposure | xproto.EventMaskKeyPress | xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion, // 3
			uint32(cursor), // 4
		}).Check(); err != nil {
		return err
	}
	s.wid = wid

	// The compositor dims the overlay instead of blanking the screen.
	if err := SetOpacity(s.conn, s.atoms, wid, s.opacity); err != nil {
		s.Close()
		return err
	}

	fillGC, err := xproto.NewGcontextId(s.conn)
	if err != nil {
		s.Close()
		return err
	}
	if err := xproto.CreateGCChecked(s.conn, fillGC, xproto.Drawable(wid),
		xproto.GcForeground, []uint32{rubberbandFill}).Check(); err != nil {
		s.Close()
		return err
	}
	s.fillGC = fillGC

	borderGC, err := xproto.NewGcontextId(s.conn)
	if err != nil {
		s.Close()
		return err
	}
	if err := xproto.CreateGCChecked(s.conn, borderGC, xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcLineWidth, []uint32{rubberbandBorder, rubberbandBorderWidth}).Check(); err != nil {
		s.Close()
		return err
	}
	s.borderGC = borderGC

	if err := xproto.MapWindowChecked(s.conn, wid).Check(); err != nil {
		s.Close()
		return err
	}

	if err := RaiseWindow(s.conn, wid); err != nil {
		s.Close()
		return err
	}

	xproto.SetInputFocus(s.conn, xproto.InputFocusPointerRoot, wid, xproto.TimeCurrentTime)

	// Override redirect windows never get window manager focus, so grab the
	// keyboard for the duration of the capture to make Escape work.
	if _, err := xproto.GrabKeyboard(s.conn, false, wid, xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Reply(); err != nil {
		s.Close()
		return err
	}

	if err := IconifyWindow(s.conn, s.atoms, s.screen.Root, s.panel); err != nil {
		s.Close()
		return err
	}

	return nil
}

// Rubberband redraws the drag feedback rectangle. The overlay is cleared
// first so shrinking drags do not leave trails behind.
func (s *CaptureSurface) Rubberband(rect mosaic.Rect) error {
	if err := xproto.ClearAreaChecked(s.conn, false, s.wid, 0, 0, 0, 0).Check(); err != nil {
		return err
	}

	if rect.Empty() {
		return nil
	}

	r := []xproto.Rectangle{{
		X:      int16(rect.X),
		Y:      int16(rect.Y),
		Width:  uint16(rect.W),
		Height: uint16(rect.H),
	}}
	if err := xproto.PolyFillRectangleChecked(s.conn, xproto.Drawable(s.wid), s.fillGC, r).Check(); err != nil {
		return err
	}

	return xproto.PolyRectangleChecked(s.conn, xproto.Drawable(s.wid), s.borderGC, r).Check()
}

// Close tears down the overlay and restores the panel. Safe to call when the
// overlay is already gone.
func (s *CaptureSurface) Close() {
	if s.wid == 0 {
		return
	}

	xproto.UngrabKeyboard(s.conn, xproto.TimeCurrentTime)
	if s.fillGC != 0 {
		xproto.FreeGC(s.conn, s.fillGC)
	}
	if s.borderGC != 0 {
		xproto.FreeGC(s.conn, s.borderGC)
	}
	xproto.DestroyWindow(s.conn, s.wid)
	xproto.MapWindow(s.conn, s.panel)

	s.wid, s.fillGC, s.borderGC = 0, 0, 0
}
