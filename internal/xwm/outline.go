package xwm

import (
	"github.com/ItsNotGoodName/x-splitmon/internal/mosaic"
	"github.com/ItsNotGoodName/x-splitmon/internal/region"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xproto"
)

// OutlineStyle controls how outline frames are drawn.
type OutlineStyle struct {
	Pixel uint32 // color as 0xRRGGBB
	Width int    // border thickness in pixels
}

// OutlineSet owns one colored frame window per enabled region. Frames are
// override redirect so the window manager never decorates or moves them, and
// their interior is cut out with the SHAPE extension so only a thin ring of
// the window is left on screen.
type OutlineSet struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	style  OutlineStyle
	frames map[region.Region]outlineFrame
}

type outlineFrame struct {
	wid  xproto.Window
	rect mosaic.Rect
}

func NewOutlineSet(conn *xgb.Conn, screen *xproto.ScreenInfo, style OutlineStyle) *OutlineSet {
	return &OutlineSet{
		conn:   conn,
		screen: screen,
		style:  style,
		frames: make(map[region.Region]outlineFrame),
	}
}

// Show maps a frame around rect. An existing frame for the region is
// destroyed first so geometry changes take effect.
func (o *OutlineSet) Show(r region.Region, rect mosaic.Rect) error {
	if err := o.Hide(r); err != nil {
		return err
	}

	wid, err := xproto.NewWindowId(o.conn)
	if err != nil {
		return err
	}

	if err := xproto.CreateWindowChecked(o.conn, o.screen.RootDepth,
		wid, o.screen.Root,
		int16(rect.X), int16(rect.Y), uint16(rect.W), uint16(rect.H), 0,
		xproto.WindowClassInputOutput, o.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect, // 1, 2
		[]uint32{
			o.style.Pixel, // 1
			1,             // 2
		}).Check(); err != nil {
		return err
	}

	if err := o.applyShape(wid, rect); err != nil {
		xproto.DestroyWindow(o.conn, wid)
		return err
	}

	if err := xproto.MapWindowChecked(o.conn, wid).Check(); err != nil {
		xproto.DestroyWindow(o.conn, wid)
		return err
	}

	o.frames[r] = outlineFrame{wid: wid, rect: rect}
	return nil
}

// Hide destroys the frame for the region if one is mapped.
func (o *OutlineSet) Hide(r region.Region) error {
	frame, ok := o.frames[r]
	if !ok {
		return nil
	}
	delete(o.frames, r)

	return xproto.DestroyWindowChecked(o.conn, frame.wid).Check()
}

// Restyle applies a new color and thickness to every mapped frame.
func (o *OutlineSet) Restyle(style OutlineStyle) error {
	o.style = style

	for _, frame := range o.frames {
		if err := xproto.ChangeWindowAttributesChecked(o.conn, frame.wid,
			xproto.CwBackPixel, []uint32{style.Pixel}).Check(); err != nil {
			return err
		}

		if err := o.applyShape(frame.wid, frame.rect); err != nil {
			return err
		}

		// Repaint with the new background pixel.
		if err := xproto.ClearAreaChecked(o.conn, false, frame.wid, 0, 0, 0, 0).Check(); err != nil {
			return err
		}
	}

	return nil
}

// applyShape cuts the frame down to a ring: the bounding shape is the full
// rectangle minus the interior inset by the border width. The input shape is
// emptied so the ring never takes clicks away from the windows below it.
func (o *OutlineSet) applyShape(wid xproto.Window, rect mosaic.Rect) error {
	outer := []xproto.Rectangle{{Width: uint16(rect.W), Height: uint16(rect.H)}}
	if err := shape.RectanglesChecked(o.conn, shape.SoSet, shape.SkBounding, 0,
		wid, 0, 0, outer).Check(); err != nil {
		return err
	}

	// Frames smaller than twice the border width stay solid.
	if w, h := rect.W-2*o.style.Width, rect.H-2*o.style.Width; w > 0 && h > 0 {
		inner := []xproto.Rectangle{{
			X:      int16(o.style.Width),
			Y:      int16(o.style.Width),
			Width:  uint16(w),
			Height: uint16(h),
		}}
		if err := shape.RectanglesChecked(o.conn, shape.SoSubtract, shape.SkBounding, 0,
			wid, 0, 0, inner).Check(); err != nil {
			return err
		}
	}

	return shape.RectanglesChecked(o.conn, shape.SoSet, shape.SkInput, 0,
		wid, 0, 0, nil).Check()
}
