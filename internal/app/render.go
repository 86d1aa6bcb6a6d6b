package app

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	colorButton       = 0xd9d9d9
	colorButtonBorder = 0x666666
	colorText         = 0x000000
)

// Grid cells carry no text, their place in the mini map already names them.
var buttonLabels = map[string]string{
	"select_region": "Select region",
	"full_screen":   "Full screen",
}

// renderPanel redraws the whole panel: section headers, the two text buttons
// and one cell per grid region, with enabled regions filled in the outline
// color.
func (m *Model) renderPanel() error {
	if err := xproto.ClearAreaChecked(m.conn, false, m.panel.WID, 0, 0, 0, 0).Check(); err != nil {
		return err
	}

	drawable := xproto.Drawable(m.panel.WID)

	for _, b := range m.layout.Buttons {
		fill := uint32(colorButton)
		if m.states.Enabled(b.Region) {
			fill = m.accent
		}

		rect := []xproto.Rectangle{{
			X:      int16(b.Rect.X),
			Y:      int16(b.Rect.Y),
			Width:  uint16(b.Rect.W),
			Height: uint16(b.Rect.H),
		}}

		if err := xproto.ChangeGCChecked(m.conn, m.gc, xproto.GcForeground, []uint32{fill}).Check(); err != nil {
			return err
		}
		if err := xproto.PolyFillRectangleChecked(m.conn, drawable, m.gc, rect).Check(); err != nil {
			return err
		}

		if err := xproto.ChangeGCChecked(m.conn, m.gc, xproto.GcForeground, []uint32{colorButtonBorder}).Check(); err != nil {
			return err
		}
		if err := xproto.PolyRectangleChecked(m.conn, drawable, m.gc, rect).Check(); err != nil {
			return err
		}

		if label, ok := buttonLabels[b.Region.String()]; ok {
			x := int16(b.Rect.X + 10)
			y := int16(b.Rect.Y + (b.Rect.H+8)/2)
			if err := xproto.ImageText8Checked(m.conn, byte(len(label)), drawable, m.fontGC,
				x, y, label).Check(); err != nil {
				return err
			}
		}
	}

	for _, h := range m.layout.Headers {
		if err := xproto.ImageText8Checked(m.conn, byte(len(h.Text)), drawable, m.fontGC,
			int16(h.X), int16(h.Y+12), h.Text).Check(); err != nil {
			return err
		}
	}

	return nil
}

// createPanelGCs makes the two graphics contexts panel drawing needs: one
// whose foreground is swapped per fill and one bound to the "fixed" font.
func createPanelGCs(conn *xgb.Conn, screen *xproto.ScreenInfo, wid xproto.Window) (xproto.Gcontext, xproto.Gcontext, error) {
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return 0, 0, err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(wid),
		xproto.GcForeground, []uint32{colorButton}).Check(); err != nil {
		return 0, 0, err
	}

	font, err := xproto.NewFontId(conn)
	if err != nil {
		return 0, 0, err
	}
	if err := xproto.OpenFontChecked(conn, font, uint16(len("fixed")), "fixed").Check(); err != nil {
		return 0, 0, err
	}

	fontGC, err := xproto.NewGcontextId(conn)
	if err != nil {
		return 0, 0, err
	}
	if err := xproto.CreateGCChecked(conn, fontGC, xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont, // 1, 2, 3
		[]uint32{
			colorText,         // 1
			screen.WhitePixel, // 2
			uint32(font),      // 3
		}).Check(); err != nil {
		return 0, 0, err
	}

	// The GC keeps its own reference to the font.
	xproto.CloseFont(conn, font)

	return gc, fontGC, nil
}
