package app

import (
	"github.com/ItsNotGoodName/x-splitmon/internal/mosaic"
	"github.com/ItsNotGoodName/x-splitmon/internal/region"
)

// Panel layout constants in pixels.
const (
	panelWidth   = 320
	panelMargin  = 12
	panelGutter  = 8
	buttonHeight = 32
	headerHeight = 18
	cellInset    = 2
)

// Button is a clickable area on the panel that toggles one region.
type Button struct {
	Region region.Region
	Rect   mosaic.Rect
}

// Header is a section label on the panel.
type Header struct {
	Text string
	X    int
	Y    int
}

// Panel is the static layout of the control window: two text buttons on top
// and one section per grid size below. Sections are laid out with the same
// partition math that sizes the real monitors, so the panel doubles as a map
// of the screen.
type Panel struct {
	Width   int
	Height  int
	Buttons []Button
	Headers []Header
}

func NewPanel() Panel {
	p := Panel{Width: panelWidth}
	inner := panelWidth - 2*panelMargin
	y := panelMargin

	y = p.button(region.SelectRegion, y)
	y = p.button(region.FullScreen, y)

	// Section heights keep cells at the 16:9 aspect of a typical screen.
	sections := []struct {
		text   string
		parts  int
		height int
	}{
		{"Halves", 2, 84},
		{"Thirds", 3, 56},
		{"Quarters", 4, 168},
		{"Sixths", 6, 112},
	}
	for _, section := range sections {
		p.Headers = append(p.Headers, Header{Text: section.text, X: panelMargin, Y: y})
		y += headerHeight

		cells, err := mosaic.Partition(inner, section.height, section.parts)
		if err != nil {
			panic(err)
		}

		for i, cell := range cells {
			r, ok := region.ForCell(section.parts, i)
			if !ok {
				continue
			}

			p.Buttons = append(p.Buttons, Button{
				Region: r,
				Rect: mosaic.Rect{
					X: panelMargin + cell.X + cellInset,
					Y: y + cell.Y + cellInset,
					W: cell.W - 2*cellInset,
					H: cell.H - 2*cellInset,
				},
			})
		}

		y += section.height + panelGutter
	}

	p.Height = y - panelGutter + panelMargin
	return p
}

func (p *Panel) button(r region.Region, y int) int {
	p.Buttons = append(p.Buttons, Button{
		Region: r,
		Rect:   mosaic.Rect{X: panelMargin, Y: y, W: p.Width - 2*panelMargin, H: buttonHeight},
	})

	return y + buttonHeight + panelGutter
}

// HitTest resolves a click position to the button under it.
func (p *Panel) HitTest(x, y int) (Button, bool) {
	for _, b := range p.Buttons {
		if b.Rect.Contains(x, y) {
			return b, true
		}
	}

	return Button{}, false
}
